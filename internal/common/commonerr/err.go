package commonerr

import "errors"

var (
	// ErrUnknownDriver is returned when the configured database driver is not supported.
	ErrUnknownDriver = errors.New("unknown database driver")
	// ErrBadDateOfBirth marks a date_of_birth that does not parse as YYYY-MM-DD.
	ErrBadDateOfBirth = errors.New("malformed date of birth")
)

// Error is the JSON body returned by the transport on failures.
type Error struct {
	Err string `json:"err"`
}

func New(msg string) Error {
	return Error{Err: msg}
}
