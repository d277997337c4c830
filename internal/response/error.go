package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		// Use context logger if encoding fails
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		notFound   *errs.NotFoundError
		exists     *errs.AlreadyExistsError
		validation *errs.ValidationError
		tokenErr   *errs.TokenUnavailableError
		upstream   *errs.UpstreamError
		database   *errs.DatabaseError
		external   *errs.ExternalServiceError
		encryption *errs.EncryptionError
		syntaxErr  *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &notFound):
		log.Warn("resource not found", "error", notFound.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", notFound.Message)

	case errors.As(err, &exists):
		log.Warn("resource already exists", "error", exists.Message)
		h.WriteError(w, r, http.StatusConflict, "already_exists", exists.Message)

	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	case errors.As(err, &tokenErr):
		// never retryable: the client must sign in again
		log.Info("google fit token unavailable")
		h.WriteError(w, r, http.StatusUnauthorized, "fit_permission_required", tokenErr.Message)

	case errors.As(err, &upstream):
		status := http.StatusBadGateway
		level := slog.LevelError
		if upstream.Retryable() {
			status = http.StatusServiceUnavailable
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "google fit error",
			"status", upstream.Status,
			"parse_failure", upstream.ParseFailure,
			"error", upstream.Error())
		h.WriteError(w, r, status, "upstream_error", "Failed to load step data")

	case errors.As(err, &database):
		log.Error("database error",
			"operation", database.Operation,
			"error", database.Message,
			"cause", database.Err)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	case errors.As(err, &external):
		level := slog.LevelError
		if external.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", external.Service,
			"transient", external.Transient,
			"error", external.Message,
			"cause", external.Err)

		status := http.StatusBadGateway
		if external.Transient {
			status = http.StatusServiceUnavailable
		}
		h.WriteError(w, r, status, "service_unavailable",
			"Service temporarily unavailable")

	// a bare json error that no layer classified; wrapped ones matched above
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		log.Warn("malformed request body", "error", err)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", "Malformed request body")

	case errors.As(err, &encryption):
		log.Error("encryption error", "error", encryption.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
