package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oalhaj/salescast-backend/internal/predictor"
)

type stubModelService struct {
	info  *predictor.Info
	names []string
	err   error
}

func (s *stubModelService) ModelInfo(ctx context.Context) (*predictor.Info, error) {
	return s.info, s.err
}

func (s *stubModelService) FeatureNames(ctx context.Context) []string {
	return s.names
}

func TestModelInfoSuccess(t *testing.T) {
	stub := &stubModelService{info: &predictor.Info{
		ModelType:     "randomforest",
		FeaturesCount: 45,
	}}
	handler := ModelInfo(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/model/info", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data predictor.Info `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ModelType != "randomforest" || envelope.Data.FeaturesCount != 45 {
		t.Fatalf("info = %+v", envelope.Data)
	}
}

func TestFeatureList(t *testing.T) {
	stub := &stubModelService{names: []string{"year", "month", "sales_lag_1"}}
	handler := FeatureList(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/features", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Features []string `json:"features"`
			Count    int      `json:"count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 3 || len(envelope.Data.Features) != 3 {
		t.Fatalf("features = %+v", envelope.Data)
	}
}
