package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/importer"
	"github.com/pocketledger/backend/internal/provider"
)

// Engine executes imports for all handlers in this package. It is set
// by main before the router starts serving requests.
var Engine *importer.Orchestrator

// Provider is the bank-data client used for account synchronization.
// A nil Provider disables the sync endpoints.
var Provider provider.Client

// parseID parses an ID string as a UUID and returns an HTTP 400 to the
// client if it is invalid.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return uuid.Nil, false
	}

	return id, true
}
