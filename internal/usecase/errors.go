package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrRosterUnavailable     = errors.New("competition roster unavailable")
	ErrStoreMissing          = errors.New("canonical store missing")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
