package extmem

import "github.com/cockroachdb/errors"

var (
	// ErrResourceExhausted marks failures that mean no further case can succeed against this
	// device, such as there being no host-visible memory type compatible with a resource
	ErrResourceExhausted = errors.New("device resources exhausted")
	// ErrHarnessFatal marks failures of the harness itself, such as being unable to map memory
	// to write or read the payload
	ErrHarnessFatal = errors.New("harness failure")
	// ErrUnsupported marks device calls that failed because the backend cannot carry out the
	// operation at all, as opposed to attempting it and failing
	ErrUnsupported = errors.New("operation not supported by device")
	// ErrHandleConsumed is returned when a single-use external handle is imported a second time
	ErrHandleConsumed = errors.New("external handle has already been imported")
)

// IsFatal reports whether err should abort the remainder of a run
func IsFatal(err error) bool {
	return errors.Is(err, ErrResourceExhausted) || errors.Is(err, ErrHarnessFatal)
}
