package libretro

/*
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	"github.com/user-none/eblitcore/abi"
	"github.com/user-none/eblitcore/wrapper"
)

//export goKeyboardEvent
func goKeyboardEvent(down C.bool, keycode C.uint, character C.uint32_t, modifiers C.uint16_t) {
	wrapper.Default().KeyboardEvent(bool(down), uint(keycode), uint32(character), uint16(modifiers))
}

//export goFrameTime
func goFrameTime(usec C.int64_t) {
	wrapper.Default().FrameTime(int64(usec))
}

//export goAudioCallback
func goAudioCallback() {
	wrapper.Default().AudioCallback()
}

//export goAudioSetState
func goAudioSetState(enabled C.bool) {
	wrapper.Default().AudioSetState(bool(enabled))
}

// cBridge calls host function pointers through the helpers in cfuncs.c.
type cBridge struct{}

func (cBridge) LogPrintf(fn uintptr, level int, msg string) {
	cs := C.CString(msg)
	defer C.free(unsafe.Pointer(cs))
	C.call_log_printf(C.uintptr_t(fn), C.int(level), cs)
}

func (cBridge) PerfTimeUsec(fn uintptr) int64 {
	return int64(C.call_perf_get_time_usec(C.uintptr_t(fn)))
}

func (cBridge) PerfCPUFeatures(fn uintptr) uint64 {
	return uint64(C.call_perf_get_cpu_features(C.uintptr_t(fn)))
}

func (cBridge) PerfCounter(fn uintptr) uint64 {
	return uint64(C.call_perf_get_counter(C.uintptr_t(fn)))
}

func (cBridge) PerfRegister(fn uintptr, counter *abi.PerfCounter) {
	C.call_perf_counter(C.uintptr_t(fn), perfCounter(counter))
}

func (cBridge) PerfStart(fn uintptr, counter *abi.PerfCounter) {
	C.call_perf_counter(C.uintptr_t(fn), perfCounter(counter))
}

func (cBridge) PerfStop(fn uintptr, counter *abi.PerfCounter) {
	C.call_perf_counter(C.uintptr_t(fn), perfCounter(counter))
}

func (cBridge) PerfLog(fn uintptr) {
	C.call_perf_log(C.uintptr_t(fn))
}

func (cBridge) SetRumbleState(fn uintptr, port, effect uint, strength uint16) bool {
	return bool(C.call_set_rumble_state(C.uintptr_t(fn), C.uint(port), C.uint(effect), C.uint16_t(strength)))
}

func (cBridge) KeyboardCallback() uintptr {
	return uintptr(C.keyboard_event_address())
}

func (cBridge) FrameTimeCallback() uintptr {
	return uintptr(C.frame_time_address())
}

func (cBridge) AudioCallbacks() (write, setState uintptr) {
	return uintptr(C.audio_callback_address()), uintptr(C.audio_set_state_address())
}

func perfCounter(c *abi.PerfCounter) *C.struct_retro_perf_counter {
	return (*C.struct_retro_perf_counter)(unsafe.Pointer(c))
}
