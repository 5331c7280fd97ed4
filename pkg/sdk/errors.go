package livesearch

import "github.com/kailas-cloud/livesearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrTransport            = domain.ErrTransport
	ErrMalformedResponse    = domain.ErrMalformedResponse
	ErrConfigurationMissing = domain.ErrConfigurationMissing
	ErrInvalidRequest       = domain.ErrInvalidRequest
)

// TransportError carries the failing operation and upstream HTTP status.
// Use errors.As() to inspect it.
type TransportError = domain.TransportError
