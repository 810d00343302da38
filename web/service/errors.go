package service

import (
	"errors"
	"strings"

	"github.com/Bayrii/drivelog/logger"
)

var (
	// ErrExperienceNotFound covers both a missing record and a record owned
	// by someone else. The two cases are deliberately indistinguishable so
	// that responses never disclose whether another user's record exists.
	ErrExperienceNotFound = errors.New("experience not found")

	// ErrInvalidReference means a supplied code does not resolve in the
	// current session.
	ErrInvalidReference = errors.New("invalid or expired record reference")

	// ErrStore is the only error surfaced for persistence failures. The
	// underlying detail is logged, never returned to the client.
	ErrStore = errors.New("storage failure")
)

// ValidationError carries every violated rule of a submission, not just the
// first one encountered.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// storeFailure logs the real persistence error and returns the generic one.
func storeFailure(op string, err error) error {
	logger.Errorf("%s: %v", op, err)
	return ErrStore
}
