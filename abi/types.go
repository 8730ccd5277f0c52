package abi

import "unsafe"

// Struct mirrors below are layout-compatible with their libretro.h
// counterparts on the platforms cgo targets. Fields holding host function
// pointers are uintptr; string fields point at NUL-terminated bytes.

// SystemInfo mirrors struct retro_system_info.
type SystemInfo struct {
	LibraryName     *byte
	LibraryVersion  *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry mirrors struct retro_game_geometry.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// SystemTiming mirrors struct retro_system_timing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo mirrors struct retro_system_av_info.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo mirrors struct retro_game_info.
type GameInfo struct {
	Path *byte
	Data unsafe.Pointer
	Size uintptr
	Meta *byte
}

// Variable mirrors struct retro_variable.
type Variable struct {
	Key   *byte
	Value *byte
}

// InputDescriptor mirrors struct retro_input_descriptor.
type InputDescriptor struct {
	Port        uint32
	Device      uint32
	Index       uint32
	ID          uint32
	Description *byte
}

// Message mirrors struct retro_message.
type Message struct {
	Msg    *byte
	Frames uint32
}

// MessageExt mirrors struct retro_message_ext.
type MessageExt struct {
	Msg      *byte
	Duration uint32
	Priority uint32
	Level    int32
	Target   int32
	Type     int32
	Progress int8
}

// LogCallback mirrors struct retro_log_callback.
type LogCallback struct {
	Log uintptr
}

// PerfCounter mirrors struct retro_perf_counter. The host keeps a pointer
// to a registered counter, so instances must stay pinned.
type PerfCounter struct {
	Ident      *byte
	Start      uint64
	Total      uint64
	CallCount  uint64
	Registered bool
}

// PerfCallback mirrors struct retro_perf_callback.
type PerfCallback struct {
	GetTimeUsec    uintptr
	GetCPUFeatures uintptr
	GetPerfCounter uintptr
	PerfRegister   uintptr
	PerfStart      uintptr
	PerfStop       uintptr
	PerfLog        uintptr
}

// KeyboardCallback mirrors struct retro_keyboard_callback.
type KeyboardCallback struct {
	Callback uintptr
}

// FrameTimeCallback mirrors struct retro_frame_time_callback.
type FrameTimeCallback struct {
	Callback  uintptr
	Reference int64
}

// AudioCallback mirrors struct retro_audio_callback.
type AudioCallback struct {
	Callback uintptr
	SetState uintptr
}

// ControllerDescription mirrors struct retro_controller_description.
type ControllerDescription struct {
	Desc *byte
	ID   uint32
}

// ControllerInfo mirrors struct retro_controller_info.
type ControllerInfo struct {
	Types    *ControllerDescription
	NumTypes uint32
}

// RumbleInterface mirrors struct retro_rumble_interface.
type RumbleInterface struct {
	SetRumbleState uintptr
}

// CoreOptionDisplay mirrors struct retro_core_option_display.
type CoreOptionDisplay struct {
	Key     *byte
	Visible bool
}

// CoreOptionValue mirrors struct retro_core_option_value.
type CoreOptionValue struct {
	Value *byte
	Label *byte
}

// CoreOptionDefinition mirrors struct retro_core_option_definition.
type CoreOptionDefinition struct {
	Key          *byte
	Desc         *byte
	Info         *byte
	Values       [NumCoreOptionValuesMax]CoreOptionValue
	DefaultValue *byte
}

// ThrottleState mirrors struct retro_throttle_state.
type ThrottleState struct {
	Mode uint32
	Rate float32
}
