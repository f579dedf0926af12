package utils

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/modgate/internal/shared/biztime"
	"github.com/orris-inc/modgate/internal/shared/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Status            string     `json:"status"`
	Data              any        `json:"data,omitempty"`
	Error             *ErrorInfo `json:"error,omitempty"`
	Timestamp         string     `json:"timestamp"`
	RetryAfterSeconds int        `json:"retry_after_seconds,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewSuccessEnvelope builds a success envelope stamped with ts.
func NewSuccessEnvelope(data any, ts time.Time) APIResponse {
	return APIResponse{
		Status:    StatusSuccess,
		Data:      data,
		Timestamp: biztime.FormatTimestamp(ts),
	}
}

// NewErrorEnvelope builds an error envelope for err and returns the HTTP status
// that goes with it. Errors that are not AppErrors are reported as a generic
// internal error so implementation details never leak to clients.
func NewErrorEnvelope(err error, ts time.Time) (int, APIResponse) {
	response := APIResponse{
		Status:    StatusError,
		Timestamp: biztime.FormatTimestamp(ts),
	}

	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.Error = &ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		}
		return http.StatusInternalServerError, response
	}

	response.Error = &ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	}
	if appErr.Type == errors.ErrorTypeInternal {
		response.Error.Details = ""
	}
	if appErr.RetryAfter > 0 {
		response.RetryAfterSeconds = RetryAfterSeconds(appErr.RetryAfter)
	}
	return appErr.Code, response
}

// RetryAfterSeconds rounds d up to whole seconds, never below one.
func RetryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, NewSuccessEnvelope(data, biztime.NowUTC()))
}

// ErrorResponseWithError sends an error response based on error type.
// Rate limit errors also set the Retry-After header.
func ErrorResponseWithError(c *gin.Context, err error) {
	statusCode, response := NewErrorEnvelope(err, biztime.NowUTC())
	if response.RetryAfterSeconds > 0 {
		c.Header("Retry-After", strconv.Itoa(response.RetryAfterSeconds))
	}
	c.JSON(statusCode, response)
}
