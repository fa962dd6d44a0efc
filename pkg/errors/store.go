package errors

import "errors"

var (
	ErrMalformedStoreAddress = errors.New("malformed store address")
	ErrUnknownStoreScheme    = errors.New("unknown store address scheme")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrReadOnlyStore         = errors.New("store is read-only")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrInvalidDocumentKey    = errors.New("invalid document key")
)
