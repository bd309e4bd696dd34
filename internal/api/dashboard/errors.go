package dashboard

import (
	"net/http"

	"github.com/posadahq/backoffice/internal/api/apiutil"
)

var errNotInitialized = apiutil.HandlerError{
	Status:  http.StatusBadGateway,
	Message: "dashboard handlers not initialized",
}
