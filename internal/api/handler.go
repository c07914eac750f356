package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/groundcheck/hallucination-agent/internal/api/middleware"
	"github.com/groundcheck/hallucination-agent/internal/detector"
	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	detector detector.Evaluator
	judge    detector.Evaluator
	defaults models.DetectionConfig
	logger   *zerolog.Logger
}

func NewHandler(local detector.Evaluator, remote detector.Evaluator, defaults models.DetectionConfig, logger *zerolog.Logger) *Handler {
	return &Handler{
		detector: local,
		judge:    remote,
		defaults: defaults,
		logger:   logger,
	}
}

// POST /api/v1/detect
// Body: DetectionRequest
// Returns: DetectionResult
func (h *Handler) Detect(req *restful.Request, resp *restful.Response) {
	h.evaluate(req, resp, h.detector, "local")
}

// POST /api/v1/judge
// Body: DetectionRequest
// Returns: DetectionResult
func (h *Handler) Judge(req *restful.Request, resp *restful.Response) {
	h.evaluate(req, resp, h.judge, "remote")
}

func (h *Handler) evaluate(req *restful.Request, resp *restful.Response, evaluator detector.Evaluator, path string) {
	var detectRequest models.DetectionRequest
	if err := req.ReadEntity(&detectRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	cfg := h.defaults
	if detectRequest.Config != nil {
		cfg = *detectRequest.Config
	}

	h.logger.Info().
		Str("event_id", detectRequest.EventID).
		Str("path", path).
		Msg("Start evaluation")

	record, err := evaluator.Evaluate(req.Request.Context(), detectRequest.Input(), cfg)
	if err != nil {
		h.writeEvaluationError(resp, err)
		return
	}

	h.logger.Info().
		Str("event_id", detectRequest.EventID).
		Str("path", path).
		Str("verdict", string(record.Verdict)).
		Float64("score", record.SimilarityScore).
		Msg("Evaluation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, models.DetectionResult{
		EventID: detectRequest.EventID,
		Record:  record,
	})
}

// writeEvaluationError maps the error taxonomy onto HTTP statuses. A
// failed analysis must stay distinguishable from an UNCERTAIN verdict,
// so failures never produce a verdict body.
func (h *Handler) writeEvaluationError(resp *restful.Response, err error) {
	var schemaErr *models.SchemaError
	var upstreamErr *models.UpstreamError

	switch {
	case errors.Is(err, models.ErrEmptyContext),
		errors.Is(err, models.ErrEmptyResponse),
		errors.Is(err, models.ErrInvalidThreshold),
		errors.Is(err, models.ErrMissingCredentials):
		middleware.HandleError(resp, err, http.StatusBadRequest)
	case errors.As(err, &schemaErr):
		middleware.HandleErrorWithCode(resp, err, http.StatusBadGateway, "invalid_upstream_response")
	case errors.As(err, &upstreamErr):
		middleware.HandleError(resp, err, http.StatusBadGateway)
	default:
		middleware.HandleError(resp, err, http.StatusInternalServerError)
	}

	h.logger.Error().Err(err).Msg("Evaluation failed")
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
