package emucore

import "errors"

// Sentinel errors returned by the wrapper and its environment.
var (
	ErrUnknownCommand     = errors.New("unknown environment command")
	ErrCommandRejected    = errors.New("environment command rejected")
	ErrInvalidPhase       = errors.New("not allowed in current phase")
	ErrNilPayload         = errors.New("nil payload")
	ErrNoEnvironment      = errors.New("no environment callback")
	ErrUnsupported        = errors.New("not supported by core")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNoContent          = errors.New("no content")
)
