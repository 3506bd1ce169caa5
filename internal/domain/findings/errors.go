package findings

import "errors"

var (
	// ErrMissingInput is returned when a collect request lacks query or tool.
	ErrMissingInput = errors.New("Missing query or tool")
	// ErrMissingID is returned when a delete request has no id.
	ErrMissingID = errors.New("Missing id")
	// ErrInvalidTool is returned for tool names outside the supported set.
	ErrInvalidTool = errors.New("Invalid tool specified")
	// ErrNotFound is returned when deleting an id that is not stored.
	ErrNotFound = errors.New("not_found")
	// ErrDuplicate signals a (type, value, source) unique constraint hit.
	ErrDuplicate = errors.New("duplicate finding")
)

// InfraError wraps storage and renderer failures.
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *InfraError) Unwrap() error { return e.Err }

// Infra wraps err as an InfraError, passing nil and already-wrapped errors through.
func Infra(op string, err error) error {
	if err == nil {
		return nil
	}
	var ie *InfraError
	if errors.As(err, &ie) {
		return err
	}
	return &InfraError{Op: op, Err: err}
}

// IsValidation reports whether err should be answered with 400.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingInput) || errors.Is(err, ErrMissingID) || errors.Is(err, ErrInvalidTool)
}
