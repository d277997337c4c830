package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("nope"), http.StatusNotFound, "not_found"},
		{"exists", errs.NewAlreadyExistsError("dupe"), http.StatusConflict, "already_exists"},
		{"validation", errs.NewValidationError("bad goal"), http.StatusBadRequest, "invalid_input"},
		{"token", errs.NewTokenUnavailableError(), http.StatusUnauthorized, "fit_permission_required"},
		{"wrapped token", fmt.Errorf("month: %w", errs.NewTokenUnavailableError()), http.StatusUnauthorized, "fit_permission_required"},
		{"upstream 403", errs.NewUpstreamStatusError(403), http.StatusBadGateway, "upstream_error"},
		{"upstream 503", errs.NewUpstreamStatusError(503), http.StatusServiceUnavailable, "upstream_error"},
		{"upstream 429", errs.NewUpstreamStatusError(429), http.StatusServiceUnavailable, "upstream_error"},
		{"upstream parse", errs.NewUpstreamParseError("missing bucket list", nil), http.StatusBadGateway, "upstream_error"},
		{"database", errs.NewDatabaseError("read", "failed", errors.New("x")), http.StatusInternalServerError, "internal_error"},
		{"transient", errs.NewExternalServiceError("redis", "down", true, nil), http.StatusServiceUnavailable, "service_unavailable"},
		{"permanent", errs.NewExternalServiceError("redis", "down", false, nil), http.StatusBadGateway, "service_unavailable"},
		{"encryption", errs.NewEncryptionError("kms", nil), http.StatusInternalServerError, "internal_error"},
		{"json", &json.SyntaxError{}, http.StatusBadRequest, "invalid_input"},
		{"dropped connection", errs.NewExternalServiceError("google_fit", "google fit request failed", true, &url.Error{Op: "Post", URL: "https://fitness.googleapis.com", Err: io.EOF}), http.StatusServiceUnavailable, "service_unavailable"},
		{"redis eof", errs.NewExternalServiceError("redis", "session read failed", true, io.EOF), http.StatusServiceUnavailable, "service_unavailable"},
		{"bare eof", io.EOF, http.StatusInternalServerError, "internal_error"},
		{"upstream bad json", errs.NewUpstreamParseError("decode aggregate", &json.SyntaxError{}), http.StatusBadGateway, "upstream_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	h := New(logger.New("", logger.NewTestHandler))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			h.HandleError(rr, req, c.err)

			if rr.Code != c.status {
				t.Fatalf("status = %d, want %d", rr.Code, c.status)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Code != c.code {
				t.Fatalf("code = %s, want %s", body.Code, c.code)
			}
		})
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.WriteSuccess(rr, req, http.StatusCreated, map[string]int{"steps": 42})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	var env struct {
		Success bool
		Data    map[string]int
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !env.Success || env.Data["steps"] != 42 {
		t.Fatalf("envelope = %+v", env)
	}
}
