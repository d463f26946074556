package responses

import (
	"errors"

	"github.com/gin-gonic/gin"

	"opsagent/internal/utils/platformerrors"
)

// ErrorResponse is the uniform error payload for every endpoint.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps a classified error to its HTTP status and aborts the
// request. Unclassified errors become 500s with the fallback message; the
// wrapped cause is never serialized.
func HandleError(reqCtx *gin.Context, err error, fallback string) {
	errType := platformerrors.TypeOf(err)

	message := fallback
	var pe *platformerrors.PlatformError
	if errors.As(err, &pe) && pe.Message != "" {
		message = pe.Message
	}

	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(errType), ErrorResponse{
		Code:      string(errType),
		Message:   message,
		RequestID: requestID(reqCtx),
	})
}

// HandleNewError aborts with a freshly classified error at the handler layer.
func HandleNewError(reqCtx *gin.Context, errType platformerrors.ErrorType, message string) {
	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(errType), ErrorResponse{
		Code:      string(errType),
		Message:   message,
		RequestID: requestID(reqCtx),
	})
}

// The request id middleware sets the response header before handlers run,
// so it can be read back without importing the middleware package.
func requestID(reqCtx *gin.Context) string {
	return reqCtx.Writer.Header().Get("X-Request-Id")
}
