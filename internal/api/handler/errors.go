package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/teamsplit/internal/api/apierr"
	"github.com/mcoot/teamsplit/internal/middleware"
)

// WriteError writes an error response to the response writer. Server errors
// are logged with the request id first, since the response body hides the cause.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if logger != nil && apierr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// pathVar returns a decoded route variable. The router matches on the
// escaped path so names may contain "/".
func pathVar(r *http.Request, name string) (string, error) {
	raw := mux.Vars(r)[name]
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", NewInvalidRequestError("invalid " + name + " in path")
	}
	return v, nil
}
