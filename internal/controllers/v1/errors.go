package v1

import (
	"errors"
	"net/http"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// providerStatus returns the appropriate HTTP status for an error from a
// synchronous provider import.
func providerStatus(err error) int {
	if errors.Is(err, provider.ErrReauthRequired) || errors.Is(err, provider.ErrInstitutionDown) || errors.Is(err, provider.ErrRateLimited) {
		return http.StatusBadGateway
	}

	return status(err)
}

// Import errors
var (
	errNoFilePost            = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix       = errors.New("this endpoint only supports .csv files")
	errAccountIDParameter    = errors.New("the accountId parameter must be set")
	errProviderNotConfigured = errors.New("no bank-data provider is configured on this server")
)
