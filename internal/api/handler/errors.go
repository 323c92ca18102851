package handler

import (
	"net/http"

	"github.com/mcoot/blockdrop/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidCommand     = apierr.CodeInvalidCommand
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeNotGameOwner       = apierr.CodeNotGameOwner
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeGameNotFound       = apierr.CodeGameNotFound
	CodeGameEnded          = apierr.CodeGameEnded
	CodeTooManyGames       = apierr.CodeTooManyGames
	CodeShuttingDown       = apierr.CodeShuttingDown
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidUsername    = apierr.CodeInvalidUsername
	CodePasswordTooShort   = apierr.CodePasswordTooShort
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}
