package emucore

import (
	"time"
	"unsafe"

	"go.uber.org/zap"
)

// Environment is the core's view of the host's environment callback. Getters
// return ok=false when the host does not support the query or it is not
// legal in the current phase. Setters return an error matching one of the
// sentinel errors in this package.
//
// An Environment is only usable from inside a call the wrapper made into
// the core.
type Environment interface {
	// Logger returns a logger that forwards to the host's log interface
	// when one was provided.
	Logger() *zap.Logger

	// Dispatch issues a raw environment command. It returns false for
	// commands this build does not support.
	Dispatch(cmd uint32, data unsafe.Pointer) bool

	SetRotation(quarterTurns uint) error
	Overscan() (bool, bool)
	CanDupe() bool
	SetMessage(msg string, frames uint) error
	SetMessageExt(msg MessageExt) error
	MessageInterfaceVersion() (uint, bool)
	Shutdown() error
	SetPerformanceLevel(level uint) error

	SystemDirectory() (string, bool)
	CoreAssetsDirectory() (string, bool)
	SaveDirectory() (string, bool)
	LibretroPath() (string, bool)
	Username() (string, bool)
	Language() (uint, bool)

	SetPixelFormat(format PixelFormat) error
	SetInputDescriptors(descs []InputDescriptor) error
	SetControllerInfo(ports [][]ControllerDescription) error
	InputDeviceCapabilities() (uint64, bool)
	InputMaxUsers() (uint, bool)
	SetSupportNoGame(supported bool) error
	SetSupportAchievements(supported bool) error
	SetSerializationQuirks(quirks uint64) (uint64, error)
	SetMinimumAudioLatency(ms uint) error

	// Variable returns the host's value for a core option. key is given
	// without the option prefix.
	Variable(key string) (string, bool)
	VariablesUpdated() bool
	SetVariable(key, value string) error
	SetOptionVisible(key string, visible bool) error

	SetSystemAVInfo(av AVInfo) error
	SetGeometry(g Geometry) error

	AudioVideoEnable() (AVEnable, bool)
	FastForwarding() bool
	TargetRefreshRate() (float64, bool)
	ThrottleState() (ThrottleState, bool)
	SavestateContext() (SavestateContext, bool)

	// Rumble sets the strength of a rumble motor. It is a no-op when the
	// host has no rumble interface.
	Rumble(port uint, effect RumbleEffect, strength uint16) bool

	// TimeUsec returns the host's clock in microseconds, or 0.
	TimeUsec() int64

	// PerfStart and PerfStop time a named section with the host's
	// performance counters. Counters are registered on first use.
	PerfStart(name string)
	PerfStop(name string)
}

// Frame is handed to Core.Run. Video and audio written through it are
// delivered to the host after Run returns: exactly one video frame, then
// the audio in the order it was written.
type Frame interface {
	Environment() Environment

	// Delta is the time since the previous frame as reported by the host's
	// frame time callback, or 0 when the core did not request one.
	Delta() time.Duration

	// InputState returns the state of one input.
	InputState(port uint, device Device, index, id uint) int16

	// Joypad returns the pressed buttons of a joypad as a bitmask indexed
	// by the JOYPAD button IDs.
	Joypad(port uint) uint16

	// DrawFrame sets the frame to deliver. The last call wins. data must
	// stay untouched until Run returns.
	DrawFrame(data []byte, width, height, pitch uint)

	// DupeFrame asks the host to show the previous frame again.
	DupeFrame()

	// AudioWriter queues audio until Run returns.
	AudioWriter
}

// AudioWriter accepts interleaved stereo samples.
type AudioWriter interface {
	WriteAudio(samples []int16)
	WriteAudioSample(left, right int16)
}

// InputDescriptor names one input for the host's remapping UI.
type InputDescriptor struct {
	Port        uint
	Device      Device
	Index       uint
	ID          uint
	Description string
}

// ControllerDescription names a device type a port accepts.
type ControllerDescription struct {
	Description string
	Device      Device
}

// MessageExt is an on-screen or log message.
type MessageExt struct {
	Msg      string
	Duration time.Duration
	Priority uint
	Level    int
	Target   int
	Type     int
	Progress int8 // -1 for indeterminate
}

// AVEnable reports which outputs the host will use.
type AVEnable int

// Video reports whether the host displays video this frame.
func (a AVEnable) Video() bool { return a&1 != 0 }

// Audio reports whether the host plays audio this frame.
func (a AVEnable) Audio() bool { return a&2 != 0 }

// ThrottleState is the host's current pacing mode.
type ThrottleState struct {
	Mode uint
	Rate float64
}

// SavestateContext is why the host is taking a save state.
type SavestateContext int

// RumbleEffect selects a rumble motor.
type RumbleEffect uint

const (
	RumbleStrong RumbleEffect = 0
	RumbleWeak   RumbleEffect = 1
)
