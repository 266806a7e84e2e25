package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/texforge/pkg/errors"
)

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Output  string      `json:"output,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCommand,
		errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeCompilation:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeToolNotFound:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)

	resp := errorResponse{Code: code, Message: errors.UserMessage(err)}
	var cerr *errors.CompilationError
	if stderrors.As(err, &cerr) {
		resp.Output = cerr.Output
	}

	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("Request failed", "id", middleware.GetReqID(r.Context()), "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Debug("Request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}
