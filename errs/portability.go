package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Portability error families. Structural envelope problems abort an import;
// storage problems surface from the backup orchestrator; everything per-row
// stays inside an ImportResult and never becomes an error value.
var (
	ErrMalformedEnvelope  = errors.New("malformed envelope")
	ErrVersionMismatch    = errors.New("unsupported envelope version")
	ErrStorageUnavailable = errors.New("object storage unavailable")
)

// NewMalformedEnvelopeError reports an envelope that cannot be imported at
// all: not an object, or structurally missing its version field.
func NewMalformedEnvelopeError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedEnvelope,
		Details:    reason,
		Field:      "envelope",
	}
}

// NewVersionMismatchError reports an envelope whose declared format version
// this build does not understand.
func NewVersionMismatchError(got, want int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrVersionMismatch,
		Details:    fmt.Sprintf("envelope declares version %d, this build understands %d", got, want),
		Field:      "version",
	}
}

// NewStorageError wraps an object storage failure during backup or pruning.
func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageUnavailable,
		Details:    fmt.Sprintf("object storage %s failed", operation),
		Cause:      cause,
	}
}

func IsMalformedEnvelope(err error) bool {
	return errors.Is(err, ErrMalformedEnvelope)
}

func IsVersionMismatch(err error) bool {
	return errors.Is(err, ErrVersionMismatch)
}

func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
