package wrapper

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	emucore "github.com/user-none/eblitcore/api"
)

// policy says what happens when a set command is issued again.
type policy int

const (
	// query commands only read from the host.
	query policy = iota

	// renegotiable commands overwrite the previous value.
	renegotiable

	// latched commands accept only a repeat of the first accepted payload.
	latched
)

// command is one entry of the dispatch table.
type command struct {
	name   string
	phases phaseSet
	policy policy

	// payload is false for commands that carry no data. optional allows a
	// nil payload for commands that take one.
	payload  bool
	optional bool
	align    uintptr

	check  func(s *State, data unsafe.Pointer) error
	key    func(data unsafe.Pointer) string
	record func(s *State, data unsafe.Pointer)
}

// hooks are the typed parts of a command. Unset phases default to every
// live phase.
type hooks[T any] struct {
	phases   phaseSet
	optional bool
	check    func(s *State, v *T) error
	key      func(v *T) string
	record   func(s *State, v *T)
}

// get declares a command that reads a T from the host.
func get[T any](name string, h hooks[T]) command {
	return typed(name, query, h)
}

// set declares a command that hands a T to the host.
func set[T any](name string, p policy, h hooks[T]) command {
	return typed(name, p, h)
}

// signal declares a command without payload.
func signal(name string, record func(s *State)) command {
	return command{
		name:   name,
		phases: anyLive,
		policy: query,
		record: func(s *State, _ unsafe.Pointer) { record(s) },
	}
}

func typed[T any](name string, p policy, h hooks[T]) command {
	c := command{
		name:     name,
		phases:   h.phases,
		policy:   p,
		payload:  true,
		optional: h.optional,
		align:    unsafe.Alignof(*new(T)),
	}
	if c.phases == 0 {
		c.phases = anyLive
	}
	if h.check != nil {
		c.check = func(s *State, data unsafe.Pointer) error { return h.check(s, (*T)(data)) }
	}
	if h.key != nil {
		c.key = func(data unsafe.Pointer) string { return h.key((*T)(data)) }
	}
	if h.record != nil {
		c.record = func(s *State, data unsafe.Pointer) { h.record(s, (*T)(data)) }
	}
	return c
}

// Dispatch issues an environment command on behalf of the core. It returns
// false for unknown commands, commands not allowed now, and commands the
// host rejected.
func (s *State) Dispatch(code uint32, data unsafe.Pointer) bool {
	if err := s.dispatch(code, data); err != nil {
		s.log.Debug("Environment command failed",
			zap.Uint32("cmd", code),
			zap.Error(err),
		)
		return false
	}
	return true
}

// dispatch validates a command against the table and the current phase,
// forwards it to the host and records the negotiated result. Unknown codes
// leave the payload and the state untouched.
func (s *State) dispatch(code uint32, data unsafe.Pointer) error {
	cmd, ok := commands[code]
	if !ok {
		return fmt.Errorf("%w: %d", emucore.ErrUnknownCommand, code)
	}
	if !cmd.phases.has(s.phase) {
		return fmt.Errorf("%s in %s: %w", cmd.name, s.phase, emucore.ErrInvalidPhase)
	}
	if cmd.payload {
		if data == nil && !cmd.optional {
			return fmt.Errorf("%s: %w", cmd.name, emucore.ErrNilPayload)
		}
		if data != nil && uintptr(data)%cmd.align != 0 {
			return fmt.Errorf("%s: misaligned payload: %w", cmd.name, emucore.ErrCommandRejected)
		}
	}
	if cmd.check != nil {
		if err := cmd.check(s, data); err != nil {
			return fmt.Errorf("%s: %w", cmd.name, err)
		}
	}

	var key string
	if cmd.policy == latched {
		if cmd.key != nil && data != nil {
			key = cmd.key(data)
		}
		if prev, ok := s.latches[code]; ok {
			if prev == key {
				return nil
			}
			return fmt.Errorf("%s: already negotiated: %w", cmd.name, emucore.ErrCommandRejected)
		}
	}

	if s.env == nil {
		return fmt.Errorf("%s: %w", cmd.name, emucore.ErrNoEnvironment)
	}
	if !s.env(code, data) {
		return fmt.Errorf("%s: %w", cmd.name, emucore.ErrCommandRejected)
	}

	if cmd.policy == latched {
		s.latches[code] = key
	}
	if cmd.record != nil {
		cmd.record(s, data)
	}
	return nil
}
