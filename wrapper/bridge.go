package wrapper

import "github.com/user-none/eblitcore/abi"

// Bridge calls host function pointers that arrive through environment
// payloads. Go cannot call a C function pointer directly, so the cgo layer
// supplies the implementation. fn is the raw pointer the host wrote.
type Bridge interface {
	LogPrintf(fn uintptr, level int, msg string)

	PerfTimeUsec(fn uintptr) int64
	PerfCPUFeatures(fn uintptr) uint64
	PerfCounter(fn uintptr) uint64
	PerfRegister(fn uintptr, counter *abi.PerfCounter)
	PerfStart(fn uintptr, counter *abi.PerfCounter)
	PerfStop(fn uintptr, counter *abi.PerfCounter)
	PerfLog(fn uintptr)

	SetRumbleState(fn uintptr, port, effect uint, strength uint16) bool

	// KeyboardCallback, FrameTimeCallback and AudioCallbacks return the
	// addresses of the module's own callbacks handed to the host.
	KeyboardCallback() uintptr
	FrameTimeCallback() uintptr
	AudioCallbacks() (write, setState uintptr)
}

// nopBridge is used until the cgo layer installs a real one.
type nopBridge struct{}

func (nopBridge) LogPrintf(uintptr, int, string) {}
func (nopBridge) PerfTimeUsec(uintptr) int64 { return 0 }
func (nopBridge) PerfCPUFeatures(uintptr) uint64 { return 0 }
func (nopBridge) PerfCounter(uintptr) uint64 { return 0 }
func (nopBridge) PerfRegister(uintptr, *abi.PerfCounter) {}
func (nopBridge) PerfStart(uintptr, *abi.PerfCounter) {}
func (nopBridge) PerfStop(uintptr, *abi.PerfCounter) {}
func (nopBridge) PerfLog(uintptr) {}
func (nopBridge) SetRumbleState(uintptr, uint, uint, uint16) bool { return false }
func (nopBridge) KeyboardCallback() uintptr { return 0 }
func (nopBridge) FrameTimeCallback() uintptr { return 0 }
func (nopBridge) AudioCallbacks() (uintptr, uintptr) { return 0, 0 }
