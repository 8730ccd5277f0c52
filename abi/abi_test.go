package abi

import (
	"testing"
	"unsafe"
)

func TestStructSizes(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout table is for 64-bit targets")
	}

	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"SystemInfo", unsafe.Sizeof(SystemInfo{}), 32},
		{"GameGeometry", unsafe.Sizeof(GameGeometry{}), 20},
		{"SystemTiming", unsafe.Sizeof(SystemTiming{}), 16},
		{"SystemAVInfo", unsafe.Sizeof(SystemAVInfo{}), 40},
		{"GameInfo", unsafe.Sizeof(GameInfo{}), 32},
		{"Variable", unsafe.Sizeof(Variable{}), 16},
		{"InputDescriptor", unsafe.Sizeof(InputDescriptor{}), 24},
		{"Message", unsafe.Sizeof(Message{}), 16},
		{"MessageExt", unsafe.Sizeof(MessageExt{}), 32},
		{"PerfCounter", unsafe.Sizeof(PerfCounter{}), 40},
		{"PerfCallback", unsafe.Sizeof(PerfCallback{}), 56},
		{"FrameTimeCallback", unsafe.Sizeof(FrameTimeCallback{}), 16},
		{"AudioCallback", unsafe.Sizeof(AudioCallback{}), 16},
		{"ControllerDescription", unsafe.Sizeof(ControllerDescription{}), 16},
		{"ControllerInfo", unsafe.Sizeof(ControllerInfo{}), 16},
		{"CoreOptionDefinition", unsafe.Sizeof(CoreOptionDefinition{}), 2080},
		{"ThrottleState", unsafe.Sizeof(ThrottleState{}), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("sizeof(%s) = %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestSystemAVInfoTimingOffset(t *testing.T) {
	if off := unsafe.Offsetof(SystemAVInfo{}.Timing); off != 24 {
		t.Errorf("offsetof(Timing) = %d, want 24", off)
	}
}

func TestGoString(t *testing.T) {
	var pins Pins
	defer pins.Unpin()

	tests := []string{"", "a", "Checkerboard", "sms|gg|bin"}
	for _, s := range tests {
		if got := GoString(pins.CString(s)); got != s {
			t.Errorf("GoString(CString(%q)) = %q", s, got)
		}
	}

	if got := GoString(nil); got != "" {
		t.Errorf("GoString(nil) = %q, want empty", got)
	}
}

func TestPinsLen(t *testing.T) {
	var pins Pins
	pins.CString("a")
	pins.Pin(new(int))
	if pins.Len() != 2 {
		t.Errorf("Len = %d, want 2", pins.Len())
	}
	pins.Unpin()
	if pins.Len() != 0 {
		t.Errorf("Len after Unpin = %d, want 0", pins.Len())
	}
}

func TestTerminated(t *testing.T) {
	var pins Pins
	defer pins.Unpin()

	vars := []Variable{
		{Key: pins.CString("a"), Value: pins.CString("1")},
		{Key: pins.CString("b"), Value: pins.CString("2")},
		{},
	}

	got := Terminated(&vars[0], func(v *Variable) bool { return v.Key == nil })
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if GoString(got[1].Key) != "b" || GoString(got[1].Value) != "2" {
		t.Errorf("got[1] = %q=%q", GoString(got[1].Key), GoString(got[1].Value))
	}

	if Terminated[Variable](nil, func(*Variable) bool { return true }) != nil {
		t.Error("Terminated(nil) should be nil")
	}
}

func TestEnvironmentCodes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"SET_PIXEL_FORMAT", EnvSetPixelFormat, 10},
		{"GET_LOG_INTERFACE", EnvGetLogInterface, 27},
		{"SET_SUPPORT_ACHIEVEMENTS", EnvSetSupportAchievements, 0x1002a},
		{"GET_INPUT_BITMASKS", EnvGetInputBitmasks, 0x10033},
		{"GET_SAVESTATE_CONTEXT", EnvGetSavestateContext, 0x10048},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %#x, want %#x", tt.name, tt.got, tt.want)
		}
	}
}
