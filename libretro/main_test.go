package libretro

import (
	"testing"
)

// TestStructSizes verifies every abi mirror matches its C struct
func TestStructSizes(t *testing.T) {
	for _, s := range structSizes() {
		if s.c != s.goSz {
			t.Errorf("%s: C size %d, Go size %d", s.name, s.c, s.goSz)
		}
	}
}

// TestHeaderConstants verifies abi constants match libretro.h
func TestHeaderConstants(t *testing.T) {
	for _, k := range headerConstants() {
		if k.c != k.goV {
			t.Errorf("%s = %d, abi has %d", k.name, k.c, k.goV)
		}
	}
}

func TestCheckLayout(t *testing.T) {
	if err := checkLayout(); err != nil {
		t.Fatal(err)
	}
}

// TestBridgeNilPointers verifies the C helpers tolerate a zero address
func TestBridgeNilPointers(t *testing.T) {
	var b cBridge

	b.LogPrintf(0, 1, "ignored")
	b.PerfLog(0)
	if got := b.PerfTimeUsec(0); got != 0 {
		t.Errorf("PerfTimeUsec(0) = %d, want 0", got)
	}
	if got := b.PerfCounter(0); got != 0 {
		t.Errorf("PerfCounter(0) = %d, want 0", got)
	}
	if b.SetRumbleState(0, 0, 0, 0xFFFF) {
		t.Error("SetRumbleState(0) = true, want false")
	}
}

// TestCallbackAddresses verifies the exported Go callbacks have addresses
func TestCallbackAddresses(t *testing.T) {
	var b cBridge
	if b.KeyboardCallback() == 0 {
		t.Error("KeyboardCallback() = 0")
	}
	if b.FrameTimeCallback() == 0 {
		t.Error("FrameTimeCallback() = 0")
	}
	write, setState := b.AudioCallbacks()
	if write == 0 || setState == 0 {
		t.Errorf("AudioCallbacks() = %#x, %#x", write, setState)
	}
	if write == setState {
		t.Error("audio callbacks share an address")
	}
}
