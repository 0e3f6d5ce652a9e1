// AngelaMos | 2026
// response.go

package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type errorDetailKey struct{}

// WithErrorDetail marks ctx so that 500 responses carry the underlying
// error text. The server sets it outside production.
func WithErrorDetail(ctx context.Context, expose bool) context.Context {
	return context.WithValue(ctx, errorDetailKey{}, expose)
}

func ErrorDetailExposed(ctx context.Context) bool {
	expose, _ := ctx.Value(errorDetailKey{}).(bool)
	return expose
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Text writes a plain text body, used for the "Entry saved." style
// acknowledgements of the entries API.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write([]byte(body))
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewAppError(
			err,
			"internal server error",
			http.StatusInternalServerError,
			"INTERNAL_ERROR",
		)
	}

	JSON(w, appErr.StatusCode, ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, ValidationError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

// InternalServerError logs err with the request-scoped logger and answers
// 500. The error text only reaches the caller when exposure is enabled.
func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	LoggerFrom(r.Context()).Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
	)
	SetSpanError(r.Context(), err)

	body := ErrorBody{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	}
	if err != nil && ErrorDetailExposed(r.Context()) {
		body.Detail = err.Error()
	}

	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   body,
	})
}
