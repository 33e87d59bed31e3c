package pkg

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/cinecms/backend/internal/domain"
)

// requestIDContextKey mirrors the key the RequestID middleware stores under.
const requestIDContextKey = "request_id"

// Response is the standard JSON envelope for API responses. Every response
// carries the correlation id of the triggering request and a server timestamp.
type Response struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// ValidationErrorResponse is the JSON envelope for validation and conflict
// error responses, with per-field details.
type ValidationErrorResponse struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id"`
	Timestamp string            `json:"timestamp"`
	Errors    map[string]string `json:"errors"`
}

// NewResponse builds the envelope for the given request context.
func NewResponse(c *gin.Context, status int, message string, data any) Response {
	return Response{
		Status:    status,
		Message:   message,
		RequestID: c.GetString(requestIDContextKey),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}
}

// Success sends a 200 JSON response with the given data.
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, NewResponse(c, http.StatusOK, message, data))
}

// Created sends a 201 JSON response with the given data.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, NewResponse(c, http.StatusCreated, message, data))
}

// List sends a 200 JSON response intended for paginated list results.
// result should typically be a domain.PageResult[T].
func List(c *gin.Context, message string, result any) {
	c.JSON(http.StatusOK, NewResponse(c, http.StatusOK, message, result))
}

// Error sends a JSON error response. If err is a *domain.AppError, its code is
// mapped to the appropriate HTTP status; otherwise 500 is returned. Conflict
// errors include their per-field details.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	var appErr *domain.AppError
	msg := "internal error"
	if errors.As(err, &appErr) {
		msg = appErr.Message
		if len(appErr.Fields) > 0 {
			c.JSON(status, ValidationErrorResponse{
				Status:    status,
				Message:   msg,
				RequestID: c.GetString(requestIDContextKey),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Errors:    appErr.Fields,
			})
			return
		}
	}

	c.JSON(status, NewResponse(c, status, msg, nil))
}

// BindAndValidate binds the request body to obj and validates it.
// On failure it automatically sends a ValidationError response listing every
// violated field and returns false. Because obj is available, JSON struct tags
// are used for field names when possible.
// Usage in handlers:
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		validationErrorWithType(c, err, obj)
		return false
	}
	return true
}

// validationErrorWithType sends a 400 validation error response.
// When obj is non-nil, it reflects on the struct to prefer JSON tag names.
func validationErrorWithType(c *gin.Context, err error, obj any) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Not a validation error; send a generic bad request.
		c.JSON(http.StatusBadRequest, NewResponse(c, http.StatusBadRequest, err.Error(), nil))
		return
	}

	// Build a struct-field → json-tag map when the concrete type is available.
	jsonTags := buildJSONTagMap(obj)

	fieldErrors := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if tag, ok := jsonTags[fe.StructField()]; ok {
			name = tag
		} else {
			name = strings.ToLower(name)
		}
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		fieldErrors[name] = msg
	}

	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Status:    http.StatusBadRequest,
		Message:   "validation error",
		RequestID: c.GetString(requestIDContextKey),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Errors:    fieldErrors,
	})
}

// buildJSONTagMap returns a map from struct field name to its JSON tag name.
// If obj is nil or not a struct (pointer), it returns an empty map.
func buildJSONTagMap(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if name := parseJSONTagName(tag); name != "" {
			m[f.Name] = name
		}
	}
	return m
}

// parseJSONTagName extracts the field name from a JSON struct tag value.
func parseJSONTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}
