package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/steps-backend/internal/errs"
)

// decodeJSON reads the request body into v. Any decode failure, including an
// empty or truncated body, is the client's fault and becomes a ValidationError.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewValidationError("malformed request body")
	}
	return nil
}
