package productform

import "errors"

var (
	// ErrInvalid is returned by Submit when any field fails validation.
	// Field messages are available from Form.Errors.
	ErrInvalid = errors.New("productform: form is invalid")

	// ErrBusy is returned when an effect is already in flight.
	ErrBusy = errors.New("productform: an operation is already in progress")

	// ErrNotMounted is returned when the delete flow is used before mount.
	ErrNotMounted = errors.New("productform: not mounted")

	// ErrNoResource is returned for delete requests in create mode.
	ErrNoResource = errors.New("productform: no existing product")
)

// ErrNotConfirming is returned by Confirm when no delete is awaiting
// confirmation.
var ErrNotConfirming = errors.New("productform: no delete awaiting confirmation")
