package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/groundcheck/hallucination-agent/internal/api/middleware"
	"github.com/groundcheck/hallucination-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/detect").
			To(handler.Detect).
			Doc("Classify a response against its context with the local detector (rules + embedding similarity)").
			Metadata(restfulspec.KeyOpenAPITags, []string{"detect"}).
			Reads(models.DetectionRequest{}).
			Writes(models.DetectionResult{}).
			Returns(200, "OK", models.DetectionResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Upstream Failure", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/judge").
			To(handler.Judge).
			Doc("Classify a response against its context with the remote structured judge (explanation-bearing, higher latency)").
			Metadata(restfulspec.KeyOpenAPITags, []string{"detect"}).
			Reads(models.DetectionRequest{}).
			Writes(models.DetectionResult{}).
			Returns(200, "OK", models.DetectionResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Upstream Failure", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
