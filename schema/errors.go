package schema

import "errors"

var (
	// ErrInvalidCommand indicates a command spec that cannot be registered.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrReservedCommand indicates a name owned by the dispatcher itself.
	ErrReservedCommand = errors.New("reserved command name")
	// ErrDuplicateCommand indicates a second registration for an existing name.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrUnknownCommand indicates a dispatched name with no registration.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrEmptyCommand indicates a blank command line.
	ErrEmptyCommand = errors.New("empty command")
	// ErrCommandPanicked indicates a handler panicked and was recovered.
	ErrCommandPanicked = errors.New("command panicked")
	// ErrMissingContext indicates a nil context was passed to a blocking call.
	ErrMissingContext = errors.New("missing context")
)
