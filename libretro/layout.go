package libretro

/*
#include "libretro.h"
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/user-none/eblitcore/abi"
)

// structSize pairs a C struct size with its Go mirror.
type structSize struct {
	name string
	c    uintptr
	goSz uintptr
}

func structSizes() []structSize {
	return []structSize{
		{"retro_system_info", uintptr(C.sizeof_struct_retro_system_info), unsafe.Sizeof(abi.SystemInfo{})},
		{"retro_game_geometry", uintptr(C.sizeof_struct_retro_game_geometry), unsafe.Sizeof(abi.GameGeometry{})},
		{"retro_system_timing", uintptr(C.sizeof_struct_retro_system_timing), unsafe.Sizeof(abi.SystemTiming{})},
		{"retro_system_av_info", uintptr(C.sizeof_struct_retro_system_av_info), unsafe.Sizeof(abi.SystemAVInfo{})},
		{"retro_game_info", uintptr(C.sizeof_struct_retro_game_info), unsafe.Sizeof(abi.GameInfo{})},
		{"retro_variable", uintptr(C.sizeof_struct_retro_variable), unsafe.Sizeof(abi.Variable{})},
		{"retro_input_descriptor", uintptr(C.sizeof_struct_retro_input_descriptor), unsafe.Sizeof(abi.InputDescriptor{})},
		{"retro_message", uintptr(C.sizeof_struct_retro_message), unsafe.Sizeof(abi.Message{})},
		{"retro_message_ext", uintptr(C.sizeof_struct_retro_message_ext), unsafe.Sizeof(abi.MessageExt{})},
		{"retro_log_callback", uintptr(C.sizeof_struct_retro_log_callback), unsafe.Sizeof(abi.LogCallback{})},
		{"retro_perf_counter", uintptr(C.sizeof_struct_retro_perf_counter), unsafe.Sizeof(abi.PerfCounter{})},
		{"retro_perf_callback", uintptr(C.sizeof_struct_retro_perf_callback), unsafe.Sizeof(abi.PerfCallback{})},
		{"retro_keyboard_callback", uintptr(C.sizeof_struct_retro_keyboard_callback), unsafe.Sizeof(abi.KeyboardCallback{})},
		{"retro_frame_time_callback", uintptr(C.sizeof_struct_retro_frame_time_callback), unsafe.Sizeof(abi.FrameTimeCallback{})},
		{"retro_audio_callback", uintptr(C.sizeof_struct_retro_audio_callback), unsafe.Sizeof(abi.AudioCallback{})},
		{"retro_controller_description", uintptr(C.sizeof_struct_retro_controller_description), unsafe.Sizeof(abi.ControllerDescription{})},
		{"retro_controller_info", uintptr(C.sizeof_struct_retro_controller_info), unsafe.Sizeof(abi.ControllerInfo{})},
		{"retro_rumble_interface", uintptr(C.sizeof_struct_retro_rumble_interface), unsafe.Sizeof(abi.RumbleInterface{})},
		{"retro_core_option_display", uintptr(C.sizeof_struct_retro_core_option_display), unsafe.Sizeof(abi.CoreOptionDisplay{})},
		{"retro_core_option_value", uintptr(C.sizeof_struct_retro_core_option_value), unsafe.Sizeof(abi.CoreOptionValue{})},
		{"retro_core_option_definition", uintptr(C.sizeof_struct_retro_core_option_definition), unsafe.Sizeof(abi.CoreOptionDefinition{})},
		{"retro_throttle_state", uintptr(C.sizeof_struct_retro_throttle_state), unsafe.Sizeof(abi.ThrottleState{})},
	}
}

// headerConstant pairs a value from libretro.h with its abi counterpart.
type headerConstant struct {
	name string
	c    int64
	goV  int64
}

func headerConstants() []headerConstant {
	return []headerConstant{
		{"RETRO_API_VERSION", int64(C.RETRO_API_VERSION), int64(abi.APIVersion)},
		{"RETRO_DEVICE_MASK", int64(C.RETRO_DEVICE_MASK), int64(abi.DeviceMask)},
		{"RETRO_DEVICE_JOYPAD", int64(C.RETRO_DEVICE_JOYPAD), int64(abi.DeviceJoypad)},
		{"RETRO_DEVICE_POINTER", int64(C.RETRO_DEVICE_POINTER), int64(abi.DevicePointer)},
		{"RETRO_DEVICE_ID_JOYPAD_R3", int64(C.RETRO_DEVICE_ID_JOYPAD_R3), int64(abi.JoypadR3)},
		{"RETRO_DEVICE_ID_JOYPAD_MASK", int64(C.RETRO_DEVICE_ID_JOYPAD_MASK), int64(abi.JoypadMask)},
		{"RETRO_REGION_PAL", int64(C.RETRO_REGION_PAL), int64(abi.RegionPAL)},
		{"RETRO_MEMORY_VIDEO_RAM", int64(C.RETRO_MEMORY_VIDEO_RAM), int64(abi.MemoryVideoRAM)},
		{"RETRO_ENVIRONMENT_SET_ROTATION", int64(C.RETRO_ENVIRONMENT_SET_ROTATION), int64(abi.EnvSetRotation)},
		{"RETRO_ENVIRONMENT_GET_CAN_DUPE", int64(C.RETRO_ENVIRONMENT_GET_CAN_DUPE), int64(abi.EnvGetCanDupe)},
		{"RETRO_ENVIRONMENT_SET_PIXEL_FORMAT", int64(C.RETRO_ENVIRONMENT_SET_PIXEL_FORMAT), int64(abi.EnvSetPixelFormat)},
		{"RETRO_ENVIRONMENT_SET_KEYBOARD_CALLBACK", int64(C.RETRO_ENVIRONMENT_SET_KEYBOARD_CALLBACK), int64(abi.EnvSetKeyboardCallback)},
		{"RETRO_ENVIRONMENT_GET_VARIABLE", int64(C.RETRO_ENVIRONMENT_GET_VARIABLE), int64(abi.EnvGetVariable)},
		{"RETRO_ENVIRONMENT_SET_VARIABLES", int64(C.RETRO_ENVIRONMENT_SET_VARIABLES), int64(abi.EnvSetVariables)},
		{"RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE", int64(C.RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE), int64(abi.EnvGetVariableUpdate)},
		{"RETRO_ENVIRONMENT_SET_SUPPORT_NO_GAME", int64(C.RETRO_ENVIRONMENT_SET_SUPPORT_NO_GAME), int64(abi.EnvSetSupportNoGame)},
		{"RETRO_ENVIRONMENT_SET_FRAME_TIME_CALLBACK", int64(C.RETRO_ENVIRONMENT_SET_FRAME_TIME_CALLBACK), int64(abi.EnvSetFrameTimeCallback)},
		{"RETRO_ENVIRONMENT_SET_AUDIO_CALLBACK", int64(C.RETRO_ENVIRONMENT_SET_AUDIO_CALLBACK), int64(abi.EnvSetAudioCallback)},
		{"RETRO_ENVIRONMENT_GET_LOG_INTERFACE", int64(C.RETRO_ENVIRONMENT_GET_LOG_INTERFACE), int64(abi.EnvGetLogInterface)},
		{"RETRO_ENVIRONMENT_GET_PERF_INTERFACE", int64(C.RETRO_ENVIRONMENT_GET_PERF_INTERFACE), int64(abi.EnvGetPerfInterface)},
		{"RETRO_ENVIRONMENT_SET_SYSTEM_AV_INFO", int64(C.RETRO_ENVIRONMENT_SET_SYSTEM_AV_INFO), int64(abi.EnvSetSystemAVInfo)},
		{"RETRO_ENVIRONMENT_SET_GEOMETRY", int64(C.RETRO_ENVIRONMENT_SET_GEOMETRY), int64(abi.EnvSetGeometry)},
		{"RETRO_ENVIRONMENT_GET_INPUT_BITMASKS", int64(C.RETRO_ENVIRONMENT_GET_INPUT_BITMASKS), int64(abi.EnvGetInputBitmasks)},
		{"RETRO_ENVIRONMENT_GET_CORE_OPTIONS_VERSION", int64(C.RETRO_ENVIRONMENT_GET_CORE_OPTIONS_VERSION), int64(abi.EnvGetCoreOptionsVersion)},
		{"RETRO_ENVIRONMENT_SET_CORE_OPTIONS", int64(C.RETRO_ENVIRONMENT_SET_CORE_OPTIONS), int64(abi.EnvSetCoreOptions)},
		{"RETRO_NUM_CORE_OPTION_VALUES_MAX", int64(C.RETRO_NUM_CORE_OPTION_VALUES_MAX), int64(abi.NumCoreOptionValuesMax)},
		{"RETRO_PIXEL_FORMAT_RGB565", int64(C.RETRO_PIXEL_FORMAT_RGB565), int64(abi.PixelFormatRGB565)},
		{"RETRO_LOG_ERROR", int64(C.RETRO_LOG_ERROR), int64(abi.LogError)},
		{"RETRO_RUMBLE_WEAK", int64(C.RETRO_RUMBLE_WEAK), int64(abi.RumbleWeak)},
	}
}

// checkLayout reports the first mismatch between libretro.h and the abi
// mirrors.
func checkLayout() error {
	for _, s := range structSizes() {
		if s.c != s.goSz {
			return fmt.Errorf("struct %s: C size %d, Go size %d", s.name, s.c, s.goSz)
		}
	}
	for _, k := range headerConstants() {
		if k.c != k.goV {
			return fmt.Errorf("%s: C value %d, Go value %d", k.name, k.c, k.goV)
		}
	}
	return nil
}
