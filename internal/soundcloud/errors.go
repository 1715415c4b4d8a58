package soundcloud

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks ordinary request failures: network errors,
	// non-success statuses, and empty or malformed bodies.
	ErrUnavailable = errors.New("soundcloud: resource unavailable")

	// ErrContract marks a successful response that lacks a field the
	// operation cannot do without.
	ErrContract = errors.New("soundcloud: response violates contract")

	// ErrTrackMismatch is returned when batch track results cannot be
	// matched to the requested IDs.
	ErrTrackMismatch = errors.New("soundcloud: track batch mismatch")
)

// ContractError reports a missing or unusable response field.
type ContractError struct {
	Op    string
	Field string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: response has no usable %q field", e.Op, e.Field)
}

// Is lets errors.Is match ErrContract.
func (e *ContractError) Is(target error) bool {
	return target == ErrContract
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
