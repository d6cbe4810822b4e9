package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func testAOI() orb.Polygon {
	return orb.Polygon{{{75, 25}, {80, 25}, {80, 20}, {75, 20}, {75, 25}}}
}

func TestClient_Analyze_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/perform_analysis" {
			t.Errorf("expected path /perform_analysis, got %s", r.URL.Path)
		}

		// Verify the AOI ring arrives in the nested-array wire shape
		var req struct {
			AOICoordinates [][][]float64 `json:"aoi_coordinates"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if len(req.AOICoordinates) != 1 || len(req.AOICoordinates[0]) != 5 {
			t.Errorf("unexpected AOI shape: %v", req.AOICoordinates)
		}
		if req.AOICoordinates[0][0][0] != 75 || req.AOICoordinates[0][0][1] != 25 {
			t.Errorf("unexpected first point: %v", req.AOICoordinates[0][0])
		}

		response := Result{
			Status:             StatusSuccess,
			ElevationMin:       100,
			ElevationMax:       250,
			SlopeMin:           1.25,
			SlopeMax:           8.4,
			PowerGenerationMWh: 523.456,
			NumPanels:          1200,
			ChartData: []ChartRecord{
				{Suitability: ClassMostSuitable, Area: 12.3},
				{Suitability: ClassMediumSuitable, Area: 8.1},
				{Suitability: ClassLessSuitable, Area: 4.7},
				{Suitability: ClassNotSuitable, Area: 2.2},
			},
			SuitabilityTileURL: "https://earthengine.example/suit/{z}/{x}/{y}",
			SolarTileURL:       "https://earthengine.example/solar/{z}/{x}/{y}",
			MapCenter:          []float64{22.5, 77.5},
			MapZoom:            8,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	result, err := client.Analyze(context.Background(), testAOI())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.ElevationMin != 100 || result.ElevationMax != 250 {
		t.Errorf("unexpected elevation: %g - %g", result.ElevationMin, result.ElevationMax)
	}
	if result.PowerGenerationMWh != 523.456 {
		t.Errorf("unexpected power generation: %g", result.PowerGenerationMWh)
	}
	if len(result.ChartData) != 4 {
		t.Fatalf("expected 4 chart records, got %d", len(result.ChartData))
	}
	if result.ChartData[0].Suitability != ClassMostSuitable {
		t.Errorf("unexpected first class: %s", result.ChartData[0].Suitability)
	}
}

func TestClient_Analyze_HTTPErrorWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Earth Engine quota exceeded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	_, err := client.Analyze(context.Background(), testAOI())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BackendError, got %T", err)
	}
	if be.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", be.StatusCode)
	}
	if be.Message != "Earth Engine quota exceeded" {
		t.Errorf("expected backend error message, got %q", be.Message)
	}
	if be.UserMessage() != "Earth Engine quota exceeded" {
		t.Errorf("user message should carry the backend error, got %q", be.UserMessage())
	}
}

func TestClient_Analyze_HTTPErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	_, err := client.Analyze(context.Background(), testAOI())
	if err == nil {
		t.Fatal("expected error for 502 response")
	}

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BackendError, got %T", err)
	}
	if be.Message != "" {
		t.Errorf("expected empty message, got %q", be.Message)
	}
	if be.UserMessage() == "" {
		t.Error("expected a generic user message")
	}
}

func TestClient_Analyze_ApplicationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with an application-level failure indicator
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "error",
			"error":  "Failed to perform analysis: invalid geometry",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	_, err := client.Analyze(context.Background(), testAOI())
	if err == nil {
		t.Fatal("expected error for failure status")
	}

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BackendError, got %T", err)
	}
	if be.Message != "Failed to perform analysis: invalid geometry" {
		t.Errorf("unexpected message: %q", be.Message)
	}
}

func TestClient_Analyze_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	_, err := client.Analyze(context.Background(), testAOI())
	if err == nil {
		t.Fatal("expected error for invalid JSON response")
	}

	var be *BackendError
	if errors.As(err, &be) {
		t.Error("decode failures should not be backend errors")
	}
}

func TestClient_Analyze_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Analyze(ctx, testAOI()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
