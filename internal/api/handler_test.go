package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/rs/zerolog"
)

type stubEvaluator struct {
	record models.VerdictRecord
	err    error

	gotInput models.EvaluationInput
	gotCfg   models.DetectionConfig
}

func (s *stubEvaluator) Evaluate(ctx context.Context, input models.EvaluationInput, cfg models.DetectionConfig) (models.VerdictRecord, error) {
	s.gotInput = input
	s.gotCfg = cfg
	if s.err != nil {
		return models.VerdictRecord{}, s.err
	}
	return s.record, nil
}

func newTestServer(local, remote *stubEvaluator) *httptest.Server {
	logger := zerolog.Nop()
	handler := NewHandler(local, remote, models.DefaultDetectionConfig(), &logger)

	container := restful.NewContainer()
	RegisterRoutes(container, handler)

	return httptest.NewServer(container)
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	return resp
}

func TestHandler_Detect(t *testing.T) {
	local := &stubEvaluator{
		record: models.VerdictRecord{
			Verdict:         models.VerdictFactual,
			SimilarityScore: 0.91,
			Reasoning:       "similarity 0.91 meets threshold 0.75",
		},
	}
	server := newTestServer(local, &stubEvaluator{})
	defer server.Close()

	resp := postJSON(t, server.URL+"/api/v1/detect",
		`{"event_id":"evt-1","context":"The sky is blue.","response":"The sky appears blue."}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result models.DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.EventID != "evt-1" {
		t.Errorf("EventID = %q, want evt-1", result.EventID)
	}
	if result.Record.Verdict != models.VerdictFactual {
		t.Errorf("Verdict = %s, want FACTUAL", result.Record.Verdict)
	}
	if local.gotInput.Context != "The sky is blue." {
		t.Errorf("handler did not pass through the context")
	}
	if local.gotCfg != models.DefaultDetectionConfig() {
		t.Errorf("expected default config snapshot, got %+v", local.gotCfg)
	}
}

func TestHandler_Detect_ConfigOverride(t *testing.T) {
	local := &stubEvaluator{record: models.VerdictRecord{Verdict: models.VerdictUncertain}}
	server := newTestServer(local, &stubEvaluator{})
	defer server.Close()

	resp := postJSON(t, server.URL+"/api/v1/detect",
		`{"event_id":"evt-2","context":"c","response":"r","config":{"similarity_threshold":0.5,"strict_rules":false,"use_vector_search":false}}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	want := models.DetectionConfig{SimilarityThreshold: 0.5}
	if local.gotCfg != want {
		t.Errorf("config override not applied: got %+v", local.gotCfg)
	}
}

func TestHandler_Judge(t *testing.T) {
	remote := &stubEvaluator{
		record: models.VerdictRecord{
			Verdict:            models.VerdictHallucination,
			SimilarityScore:    0.2,
			ContradictionFound: true,
			Reasoning:          "直接矛盾。",
		},
	}
	server := newTestServer(&stubEvaluator{}, remote)
	defer server.Close()

	resp := postJSON(t, server.URL+"/api/v1/judge",
		`{"event_id":"evt-3","context":"Water boils at 100C.","response":"Water freezes at 100C."}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result models.DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Record.ContradictionFound {
		t.Error("ContradictionFound not carried through")
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "input error",
			err:        models.ErrEmptyContext,
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "config error",
			err:        models.ErrInvalidThreshold,
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "upstream failure",
			err:        &models.UpstreamError{Op: "embedding provider", Err: context.DeadlineExceeded},
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_failure",
		},
		{
			name:       "schema violation",
			err:        &models.SchemaError{Reason: "missing verdict"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "invalid_upstream_response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(&stubEvaluator{err: tt.err}, &stubEvaluator{})
			defer server.Close()

			resp := postJSON(t, server.URL+"/api/v1/detect", `{"context":"c","response":"r"}`)
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var errResp struct {
				Code string `json:"code"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if errResp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", errResp.Code, tt.wantCode)
			}
		})
	}
}

func TestHandler_Health(t *testing.T) {
	server := newTestServer(&stubEvaluator{}, &stubEvaluator{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
