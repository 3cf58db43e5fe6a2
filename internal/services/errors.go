package services

import "errors"

// Error taxonomy. Every error crossing the HTTP boundary is classified as one
// of these sentinels (wrapped with detail); the router maps them to statuses.
var (
	ErrValidation         = errors.New("validation failed")          // client-correctable, 400
	ErrConfiguration      = errors.New("server configuration error") // operator-correctable, 500
	ErrStorageUnavailable = errors.New("storage unavailable")        // transient, 500
	ErrForbidden          = errors.New("forbidden")                  // 403
)
