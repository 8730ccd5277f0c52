// Package wrapper holds the process-wide state behind the libretro entry
// points: the lifecycle state machine, the environment command dispatcher
// and the host callback registry.
//
// The host calls entry points on one thread and never concurrently. Every
// entry point still holds the Wrapper mutex for its full duration.
package wrapper

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
	"github.com/user-none/eblitcore/rdb"
)

var (
	// ErrNoCore is returned when an entry point runs before a core factory
	// was registered.
	ErrNoCore = errors.New("no core registered")

	// ErrNoCallbacks is returned by Run before the host registered the
	// video, input and audio callbacks.
	ErrNoCallbacks = errors.New("frame callbacks not registered")
)

// Wrapper owns at most one State. The exported libretro entry points use
// the Default wrapper.
type Wrapper struct {
	mu      sync.Mutex
	inEntry atomic.Bool

	factory emucore.CoreFactory
	bridge  Bridge
	config  *Config
	state   *State
	dbCache *rdb.Cache

	// System info handed to the host. The host may keep the pointers for
	// the life of the module, so the strings stay pinned.
	info      abi.SystemInfo
	infoPins  abi.Pins
	infoReady bool
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithBridge sets the native bridge used to call host function pointers.
func WithBridge(b Bridge) Option {
	return func(w *Wrapper) { w.bridge = b }
}

// WithConfig uses cfg instead of reading the environment.
func WithConfig(cfg Config) Option {
	return func(w *Wrapper) { w.config = &cfg }
}

// New returns a Wrapper that creates its core with factory.
func New(factory emucore.CoreFactory, opts ...Option) *Wrapper {
	w := &Wrapper{
		factory: factory,
		bridge:  nopBridge{},
		dbCache: rdb.NewCache(2),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var defaultWrapper = New(nil)

// Default returns the wrapper behind the exported entry points.
func Default() *Wrapper {
	return defaultWrapper
}

// RegisterCore sets the core factory of the default wrapper. Call it from
// an init function of the core's main package.
func RegisterCore(factory emucore.CoreFactory) {
	defaultWrapper.SetFactory(factory)
}

// SetFactory replaces the core factory. It takes effect the next time a
// state is created.
func (w *Wrapper) SetFactory(factory emucore.CoreFactory) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.factory = factory
	w.infoPins.Unpin()
	w.infoReady = false
}

// SetBridge replaces the native bridge.
func (w *Wrapper) SetBridge(b Bridge) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if b == nil {
		b = nopBridge{}
	}
	w.bridge = b
	if w.state != nil {
		w.state.bridge = b
	}
}

// Phase returns the current lifecycle phase.
func (w *Wrapper) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == nil {
		return Uninitialized
	}
	return w.state.phase
}

// acquire returns the live state, creating it on first use or after
// Deinit. Callers hold w.mu.
func (w *Wrapper) acquire() (*State, error) {
	if w.state != nil && w.state.phase != Deinitialized {
		return w.state, nil
	}
	if w.factory == nil {
		return nil, ErrNoCore
	}
	core := w.factory()
	if core == nil {
		return nil, ErrNoCore
	}

	var cfg Config
	if w.config != nil {
		cfg = *w.config
	} else {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			Logger().Warn("Ignoring invalid configuration", zap.Error(err))
			cfg = DefaultConfig()
		}
	}

	w.state = newState(core, cfg, w.bridge, w.dbCache)
	return w.state, nil
}

// enter runs fn for an entry point with the lock held, the state acquired
// and panics contained.
func (w *Wrapper) enter(name string, fn func(s *State)) {
	call(w, name, struct{}{}, func(s *State) struct{} {
		fn(s)
		return struct{}{}
	})
}

// call is enter for entry points with a result. fallback is returned when
// the state cannot be acquired or fn panics.
func call[T any](w *Wrapper, name string, fallback T, fn func(s *State) T) T {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inEntry.Store(true)
	defer w.inEntry.Store(false)

	return protect(name, fallback, func() T {
		s, err := w.acquire()
		if err != nil {
			Logger().Error("Entry point ignored", zap.String("entry", name), zap.Error(err))
			return fallback
		}
		return fn(s)
	})
}

// nested runs a host callback that may arrive while an entry point is
// already executing on the host thread, such as keyboard events delivered
// during input polling. Outside an entry point it behaves like enter.
func (w *Wrapper) nested(name string, fn func(s *State)) {
	if !w.inEntry.Load() {
		w.enter(name, fn)
		return
	}
	s := w.state
	if s == nil || s.phase == Deinitialized {
		return
	}
	protect(name, struct{}{}, func() struct{} {
		fn(s)
		return struct{}{}
	})
}
