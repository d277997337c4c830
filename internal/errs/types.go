package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// TokenUnavailableError means no usable Google Fit token exists for the
// session. Only a new sign-in can fix it, so it is never retryable.
type TokenUnavailableError struct {
	ErrorMessage
}

// DatabaseError wraps a Firestore failure with the operation that hit it.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// UpstreamError is a failed Google Fit call: either a non-success status or
// a body that did not have the expected shape.
type UpstreamError struct {
	ErrorMessage
	Status       int
	ParseFailure bool
	Err          error
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Retryable reports whether the same request may succeed later.
func (e *UpstreamError) Retryable() bool {
	if e.ParseFailure {
		return false
	}
	return e.Status == 429 || e.Status >= 500
}

type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

type EncryptionError struct {
	ErrorMessage
	Err error
}

func (e *EncryptionError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewTokenUnavailableError() *TokenUnavailableError {
	return &TokenUnavailableError{
		ErrorMessage: ErrorMessage{Message: "Google Fit access token not available, sign in again to grant Google Fit permissions"},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewUpstreamStatusError(status int) *UpstreamError {
	return &UpstreamError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("google fit api error: %d", status)},
		Status:       status,
	}
}

func NewUpstreamParseError(message string, err error) *UpstreamError {
	return &UpstreamError{
		ErrorMessage: ErrorMessage{Message: "google fit response malformed: " + message},
		ParseFailure: true,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}

func NewEncryptionError(message string, err error) *EncryptionError {
	return &EncryptionError{
		ErrorMessage: ErrorMessage{Message: message},
		Err:          err,
	}
}
