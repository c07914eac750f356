package middleware

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var statusCodes = map[int]string{
	http.StatusBadRequest:          "bad_request",
	http.StatusNotFound:            "not_found",
	http.StatusBadGateway:          "upstream_failure",
	http.StatusInternalServerError: "internal_error",
}

// HandleError writes an error entity with the given HTTP status.
func HandleError(resp *restful.Response, err error, status int) {
	code, ok := statusCodes[status]
	if !ok {
		code = "error"
	}

	resp.WriteHeaderAndEntity(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

// HandleErrorWithCode writes an error entity with an explicit code,
// used where two failures share a status but must stay distinguishable.
func HandleErrorWithCode(resp *restful.Response, err error, status int, code string) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
