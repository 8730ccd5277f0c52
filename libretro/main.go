// Package libretro exports the retro_* entry points of a libretro core.
// Link it into a c-shared main package that registers its core with
// wrapper.RegisterCore.
package libretro

/*
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	"github.com/user-none/eblitcore/wrapper"
)

func init() {
	if err := checkLayout(); err != nil {
		wrapper.Logger().Error("libretro.h does not match the Go mirrors", zap.Error(err))
	}
	wrapper.Default().SetBridge(cBridge{})
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	var fn wrapper.EnvironmentFunc
	if cb != nil {
		fn = func(cmd uint32, data unsafe.Pointer) bool {
			return bool(C.call_environment(cb, C.uint(cmd), data))
		}
	}
	wrapper.Default().SetEnvironment(fn)
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	var fn wrapper.VideoRefreshFunc
	if cb != nil {
		fn = func(data []byte, width, height uint, pitch uintptr) {
			var p unsafe.Pointer
			if len(data) > 0 {
				p = unsafe.Pointer(&data[0])
			}
			C.call_video_refresh(cb, p, C.uint(width), C.uint(height), C.size_t(pitch))
		}
	}
	wrapper.Default().SetVideoRefresh(fn)
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	var fn wrapper.AudioSampleFunc
	if cb != nil {
		fn = func(left, right int16) {
			C.call_audio_sample(cb, C.int16_t(left), C.int16_t(right))
		}
	}
	wrapper.Default().SetAudioSample(fn)
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	var fn wrapper.AudioSampleBatchFunc
	if cb != nil {
		fn = func(samples []int16) uint {
			if len(samples) < 2 {
				return 0
			}
			frames := C.size_t(len(samples) / 2)
			return uint(C.call_audio_sample_batch(cb, (*C.int16_t)(unsafe.Pointer(&samples[0])), frames))
		}
	}
	wrapper.Default().SetAudioSampleBatch(fn)
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	var fn wrapper.InputPollFunc
	if cb != nil {
		fn = func() {
			C.call_input_poll(cb)
		}
	}
	wrapper.Default().SetInputPoll(fn)
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	var fn wrapper.InputStateFunc
	if cb != nil {
		fn = func(port, device, index, id uint) int16 {
			return int16(C.call_input_state(cb, C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
		}
	}
	wrapper.Default().SetInputState(fn)
}

//export retro_init
func retro_init() {
	wrapper.Default().Init()
}

//export retro_deinit
func retro_deinit() {
	wrapper.Default().Deinit()
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.uint(wrapper.Default().APIVersion())
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	wrapper.Default().GetSystemInfo((*abi.SystemInfo)(unsafe.Pointer(info)))
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	wrapper.Default().GetSystemAVInfo((*abi.SystemAVInfo)(unsafe.Pointer(info)))
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
	wrapper.Default().SetControllerPortDevice(uint(port), uint(device))
}

//export retro_reset
func retro_reset() {
	wrapper.Default().Reset()
}

//export retro_run
func retro_run() {
	wrapper.Default().Run()
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	return C.size_t(wrapper.Default().SerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	if data == nil {
		return C.bool(false)
	}
	dst := unsafe.Slice((*byte)(data), int(size))
	return C.bool(wrapper.Default().Serialize(dst))
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	if data == nil {
		return C.bool(false)
	}
	src := unsafe.Slice((*byte)(data), int(size))
	return C.bool(wrapper.Default().Unserialize(src))
}

//export retro_cheat_reset
func retro_cheat_reset() {
	wrapper.Default().CheatReset()
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
	var s string
	if code != nil {
		s = C.GoString(code)
	}
	wrapper.Default().CheatSet(uint(index), bool(enabled), s)
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	return C.bool(wrapper.Default().LoadGame((*abi.GameInfo)(unsafe.Pointer(game))))
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, numInfo C.size_t) C.bool {
	var infos []abi.GameInfo
	if info != nil && numInfo > 0 {
		infos = unsafe.Slice((*abi.GameInfo)(unsafe.Pointer(info)), int(numInfo))
	}
	return C.bool(wrapper.Default().LoadGameSpecial(uint(gameType), infos))
}

//export retro_unload_game
func retro_unload_game() {
	wrapper.Default().UnloadGame()
}

//export retro_get_region
func retro_get_region() C.uint {
	return C.uint(wrapper.Default().GetRegion())
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	return wrapper.Default().GetMemoryData(uint(id))
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	return C.size_t(wrapper.Default().GetMemorySize(uint(id)))
}
