package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/sangkips/yardops-api/pkg/pagination"
)

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta identifies the response for log correlation
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// OK sends a 200 envelope carrying data
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// SuccessWithPagination sends a page of results with its pagination block
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.PaginatedResult[T]) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    result,
		Meta:    newMeta(c),
	})
}

// Error maps err to its status. Errors that are not AppErrors become an opaque 500.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	fail(c, appErr.Code, appErr.Message, appErr.Errors)
}

func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message, nil)
}

func fail(c *gin.Context, statusCode int, message string, fieldErrors []apperror.FieldError) {
	resp := APIResponse{
		Success: false,
		Message: message,
		Meta:    newMeta(c),
	}
	if len(fieldErrors) > 0 {
		resp.Errors = fieldErrors
	}
	c.JSON(statusCode, resp)
}

// Attachment streams a generated file as a download
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
