package main

import (
	"encoding/binary"
	"errors"
	"strconv"

	"go.uber.org/zap"

	emucore "github.com/user-none/eblitcore/api"
)

const (
	screenWidth  = 320
	screenHeight = 240
	sampleRate   = 44100
	fps          = 60

	samplesPerFrame = sampleRate / fps

	stateVersion = 1
	stateSize    = 1 + 4 + 4 + 4
)

var errBadState = errors.New("checkerboard: bad save state")

type board struct {
	rgba   []byte
	pixels []byte
	audio  []int16

	// ram holds the scroll position and is exposed as system RAM.
	ram    [8]byte
	square int
	frames uint32
	paused bool
}

func newBoard() *board {
	return &board{
		rgba:   make([]byte, screenWidth*screenHeight*4),
		pixels: make([]byte, screenWidth*screenHeight*4),
		audio:  make([]int16, samplesPerFrame*2),
		square: 16,
	}
}

func (b *board) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		LibraryName:    "Checkerboard",
		LibraryVersion: "1.0",
		Extensions:     []string{"chk"},
		OptionPrefix:   "checkerboard_",
	}
}

func (b *board) Init(env emucore.Environment) error {
	if err := env.SetSupportNoGame(true); err != nil {
		env.Logger().Warn("host does not support running without content", zap.Error(err))
	}
	return nil
}

func (b *board) Deinit() {}

func (b *board) LoadGame(game *emucore.GameInfo, env emucore.Environment) error {
	if err := env.SetPixelFormat(emucore.PixelFormatXRGB8888); err != nil {
		return err
	}
	descs := []emucore.InputDescriptor{
		{Port: 0, Device: emucore.DeviceJoypad, ID: 4, Description: "Up"},
		{Port: 0, Device: emucore.DeviceJoypad, ID: 5, Description: "Down"},
		{Port: 0, Device: emucore.DeviceJoypad, ID: 6, Description: "Left"},
		{Port: 0, Device: emucore.DeviceJoypad, ID: 7, Description: "Right"},
		{Port: 0, Device: emucore.DeviceJoypad, ID: 3, Description: "Pause"},
	}
	if err := env.SetInputDescriptors(descs); err != nil {
		env.Logger().Debug("input descriptors rejected", zap.Error(err))
	}
	if game != nil {
		env.Logger().Info("content ignored", zap.String("name", game.Name))
	}
	return nil
}

func (b *board) AVInfo() emucore.AVInfo {
	return emucore.AVInfo{
		Geometry: emucore.Geometry{
			BaseWidth:   screenWidth,
			BaseHeight:  screenHeight,
			MaxWidth:    screenWidth,
			MaxHeight:   screenHeight,
			AspectRatio: 4.0 / 3.0,
		},
		Timing: emucore.Timing{FPS: fps, SampleRate: sampleRate},
	}
}

func (b *board) Run(frame emucore.Frame) {
	pad := frame.Joypad(0)
	x, y := b.scroll()
	if !b.paused {
		switch {
		case pad&(1<<4) != 0:
			y--
		case pad&(1<<5) != 0:
			y++
		}
		switch {
		case pad&(1<<6) != 0:
			x--
		case pad&(1<<7) != 0:
			x++
		default:
			x++
		}
		b.setScroll(x, y)
	}
	b.frames++

	b.draw(x, y)
	emucore.ConvertRGBAToXRGB8888(b.rgba, b.pixels, screenWidth*screenHeight)
	frame.DrawFrame(b.pixels, screenWidth, screenHeight, screenWidth*4)
	frame.WriteAudio(b.audio)
}

func (b *board) draw(ox, oy int32) {
	sq := int32(b.square)
	for y := int32(0); y < screenHeight; y++ {
		for x := int32(0); x < screenWidth; x++ {
			i := (y*screenWidth + x) * 4
			var c byte = 0x20
			if (((x+ox)/sq)+((y+oy)/sq))&1 == 0 {
				c = 0xE0
			}
			b.rgba[i+0] = c
			b.rgba[i+1] = c
			b.rgba[i+2] = c
			b.rgba[i+3] = 0xFF
		}
	}
}

func (b *board) scroll() (int32, int32) {
	x := int32(binary.LittleEndian.Uint32(b.ram[0:4]))
	y := int32(binary.LittleEndian.Uint32(b.ram[4:8]))
	return x & 0xFFFF, y & 0xFFFF
}

func (b *board) setScroll(x, y int32) {
	binary.LittleEndian.PutUint32(b.ram[0:4], uint32(x&0xFFFF))
	binary.LittleEndian.PutUint32(b.ram[4:8], uint32(y&0xFFFF))
}

func (b *board) Reset() {
	b.ram = [8]byte{}
	b.frames = 0
	b.paused = false
}

func (b *board) UnloadGame() {}

func (b *board) Region() emucore.Region {
	return emucore.RegionNTSC
}

func (b *board) SerializeSize() int {
	return stateSize
}

func (b *board) Serialize() ([]byte, error) {
	buf := make([]byte, 0, stateSize)
	buf = append(buf, stateVersion)
	buf = append(buf, b.ram[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, b.frames)
	return buf, nil
}

func (b *board) Deserialize(data []byte) error {
	if len(data) != stateSize || data[0] != stateVersion {
		return errBadState
	}
	copy(b.ram[:], data[1:9])
	b.frames = binary.LittleEndian.Uint32(data[9:13])
	return nil
}

func (b *board) MemoryRegion(id emucore.MemoryID) []byte {
	if id == emucore.MemorySystemRAM {
		return b.ram[:]
	}
	return nil
}

func (b *board) CoreOptions() []emucore.CoreOption {
	return []emucore.CoreOption{
		{
			Key:     "square_size",
			Label:   "Square Size",
			Type:    emucore.CoreOptionSelect,
			Default: "16",
			Values:  []string{"8", "16", "32"},
		},
	}
}

func (b *board) OptionsChanged(env emucore.Environment) {
	v, ok := env.Variable("square_size")
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		env.Logger().Warn("invalid square size", zap.String("value", v))
		return
	}
	b.square = n
}

// KeyEvent toggles pause on the space bar.
func (b *board) KeyEvent(ev emucore.KeyEvent) {
	if ev.Down && ev.Keycode == 32 {
		b.paused = !b.paused
	}
}
