package emucore

import "time"

// Core is the interface every libretro core built on this module must
// implement. All methods are called from inside a host entry point, on the
// host's thread, never concurrently.
type Core interface {
	// SystemInfo returns static metadata about the core. It may be called
	// before Init.
	SystemInfo() SystemInfo

	// Init is called once after the host has supplied its environment.
	Init(env Environment) error

	// Deinit releases everything acquired in Init.
	Deinit()

	// LoadGame loads content. game is nil when the core negotiated support
	// for running without content and the host started it that way.
	LoadGame(game *GameInfo, env Environment) error

	// AVInfo returns timing and geometry for the loaded content.
	AVInfo() AVInfo

	// Run executes one frame.
	Run(frame Frame)

	// Reset performs a soft reset of the loaded content.
	Reset()

	// UnloadGame releases content-bound resources.
	UnloadGame()

	// Region returns the video region of the loaded content.
	Region() Region
}

// CoreFactory creates the single core instance for the module.
type CoreFactory func() Core

// SaveStater enables save states, rewind and run-ahead.
type SaveStater interface {
	// SerializeSize returns an upper bound for the length of Serialize's
	// result.
	SerializeSize() int

	// Serialize captures the complete core state.
	Serialize() ([]byte, error)

	// Deserialize restores state previously produced by Serialize.
	Deserialize(data []byte) error
}

// Cheater accepts cheat codes from the host.
type Cheater interface {
	CheatReset()
	CheatSet(index uint, enabled bool, code string)
}

// Memory region IDs for MemoryMapper.
const (
	MemorySaveRAM   MemoryID = 0
	MemoryRTC       MemoryID = 1
	MemorySystemRAM MemoryID = 2
	MemoryVideoRAM  MemoryID = 3
)

// MemoryID identifies a memory region exposed to the host.
type MemoryID uint

// MemoryMapper exposes live core memory to the host for battery saves,
// cheats and achievements.
type MemoryMapper interface {
	// MemoryRegion returns the backing slice of the region, or nil if the
	// core has no such region. The slice must stay valid and must not be
	// reallocated until UnloadGame.
	MemoryRegion(id MemoryID) []byte
}

// SpecialLoader loads multi-part or subsystem content.
type SpecialLoader interface {
	LoadGameSpecial(gameType uint, games []*GameInfo, env Environment) error
}

// ControllerListener is told when the host plugs a device into a port.
type ControllerListener interface {
	SetControllerPortDevice(port uint, device Device)
}

// OptionsDefiner declares the core's options. Keys are given without the
// core's option prefix.
type OptionsDefiner interface {
	CoreOptions() []CoreOption
}

// OptionsListener is called when the host reports changed option values,
// and once before content is loaded.
type OptionsListener interface {
	OptionsChanged(env Environment)
}

// KeyboardListener receives keyboard events from the host.
type KeyboardListener interface {
	KeyEvent(ev KeyEvent)
}

// FrameTimer asks the host for the real time elapsed between frames.
// Frame.Delta reports the value during Run.
type FrameTimer interface {
	// FrameTimeReference is the ideal duration of one frame, reported by
	// the host when the core runs faster or slower than real time.
	FrameTimeReference() time.Duration
}

// AudioCallbacker produces audio when the host asks for it instead of
// during Run. The host may call AudioWrite from its own audio thread; calls
// are serialized with every other entry point.
type AudioCallbacker interface {
	// AudioWrite writes the samples the host is ready to take.
	AudioWrite(out AudioWriter)

	// AudioSetState reports whether the host is currently pulling audio.
	AudioSetState(enabled bool)
}

// EnvironmentListener is called every time the host sets the environment
// callback. initial is true on the first call.
type EnvironmentListener interface {
	SetEnvironment(env Environment, initial bool)
}

// KeyEvent is a keyboard event delivered by the host.
type KeyEvent struct {
	Down      bool
	Keycode   uint
	Character rune
	Modifiers uint16
}
