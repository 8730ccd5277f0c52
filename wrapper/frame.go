package wrapper

import (
	"time"

	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

// frame collects one Run's output. Video and audio are delivered after
// the core returns so the host always sees one video call per run
// followed by the audio in write order.
type frame struct {
	s *State

	video  []byte
	width  uint
	height uint
	pitch  uint
	drawn  bool
	dupe   bool

	audio []int16
}

var _ emucore.Frame = (*frame)(nil)

func (f *frame) Environment() emucore.Environment {
	return f.s.coreEnv
}

func (f *frame) Delta() time.Duration {
	return f.s.frameDelta
}

func (f *frame) InputState(port uint, device emucore.Device, index, id uint) int16 {
	return f.s.callbacks.inputStateOf(port, uint(device), index, id)
}

func (f *frame) Joypad(port uint) uint16 {
	if f.s.inputBitmasks {
		return uint16(f.s.callbacks.inputStateOf(port, abi.DeviceJoypad, 0, abi.JoypadMask))
	}
	var buttons uint16
	for id := uint(0); id <= abi.JoypadR3; id++ {
		if f.s.callbacks.inputStateOf(port, abi.DeviceJoypad, 0, id) != 0 {
			buttons |= 1 << id
		}
	}
	return buttons
}

func (f *frame) DrawFrame(data []byte, width, height, pitch uint) {
	f.video = data
	f.width = width
	f.height = height
	f.pitch = pitch
	f.drawn = true
	f.dupe = false
}

func (f *frame) DupeFrame() {
	f.dupe = true
	f.drawn = false
	f.video = nil
}

func (f *frame) WriteAudio(samples []int16) {
	f.audio = append(f.audio, samples...)
}

func (f *frame) WriteAudioSample(left, right int16) {
	f.audio = append(f.audio, left, right)
}

// deliver sends the frame's video, then its audio.
func (f *frame) deliver() {
	s := f.s
	switch {
	case f.drawn && len(f.video) > 0:
		s.callbacks.refreshVideo(f.video, f.width, f.height, uintptr(f.pitch))
	case s.canDupe:
		g := s.avInfo.Geometry
		s.callbacks.refreshVideo(nil, g.BaseWidth, g.BaseHeight, 0)
	default:
		s.log.Debug("No video for frame and host cannot dupe")
	}
	s.callbacks.writeAudio(f.audio)
}

// runFrame executes one core frame and delivers its output.
func (s *State) runFrame() {
	f := &frame{s: s, audio: s.audioBuf[:0]}
	s.core.Run(f)
	f.deliver()
	if cap(f.audio) > maxAudioBuffer {
		s.log.Debug("Dropping oversized audio buffer", zap.Int("samples", cap(f.audio)))
		f.audio = nil
	}
	s.audioBuf = f.audio[:0]
}

// maxAudioBuffer caps the audio buffer kept between frames.
const maxAudioBuffer = 1 << 16
