package wrapper

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

// cstr returns a NUL-terminated copy of s as the host would hand it out.
func cstr(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// fakeHost answers environment commands the way a frontend does and
// records what it was told.
type fakeHost struct {
	calls  []uint32
	reject map[uint32]bool

	canDupe        bool
	bitmasks       bool
	optionsVersion uint32
	values         map[string]string
	updated        bool
	systemDir      string
	logFn          uintptr
	perf           abi.PerfCallback
	rumbleFn       uintptr

	pixelFormat int32
	coreOptions map[string]string
	legacyVars  map[string]string
	keyboardCB  uintptr
	frameTimeCB abi.FrameTimeCallback
	audioCB     abi.AudioCallback
	descriptors []string
	messages    []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		reject:      make(map[uint32]bool),
		values:      make(map[string]string),
		coreOptions: make(map[string]string),
		legacyVars:  make(map[string]string),
		pixelFormat: -1,
	}
}

func (h *fakeHost) count(cmd uint32) int {
	n := 0
	for _, c := range h.calls {
		if c == cmd {
			n++
		}
	}
	return n
}

func (h *fakeHost) environment(cmd uint32, data unsafe.Pointer) bool {
	h.calls = append(h.calls, cmd)
	if h.reject[cmd] {
		return false
	}

	switch cmd {
	case abi.EnvGetCanDupe:
		*(*bool)(data) = h.canDupe
	case abi.EnvGetInputBitmasks:
		return h.bitmasks
	case abi.EnvGetCoreOptionsVersion:
		*(*uint32)(data) = h.optionsVersion
	case abi.EnvSetCoreOptions:
		defs := abi.Terminated((*abi.CoreOptionDefinition)(data), func(d *abi.CoreOptionDefinition) bool { return d.Key == nil })
		for _, d := range defs {
			h.coreOptions[abi.GoString(d.Key)] = abi.GoString(d.DefaultValue)
		}
	case abi.EnvSetVariables:
		vars := abi.Terminated((*abi.Variable)(data), func(v *abi.Variable) bool { return v.Key == nil })
		for _, v := range vars {
			h.legacyVars[abi.GoString(v.Key)] = abi.GoString(v.Value)
		}
	case abi.EnvGetVariable:
		v := (*abi.Variable)(data)
		value, ok := h.values[abi.GoString(v.Key)]
		if !ok {
			return false
		}
		v.Value = cstr(value)
	case abi.EnvSetVariable:
		v := (*abi.Variable)(data)
		h.values[abi.GoString(v.Key)] = abi.GoString(v.Value)
	case abi.EnvGetVariableUpdate:
		*(*bool)(data) = h.updated
		h.updated = false
	case abi.EnvSetPixelFormat:
		h.pixelFormat = *(*int32)(data)
	case abi.EnvGetSystemDirectory:
		if h.systemDir == "" {
			return false
		}
		*(**byte)(data) = cstr(h.systemDir)
	case abi.EnvGetLogInterface:
		if h.logFn == 0 {
			return false
		}
		(*abi.LogCallback)(data).Log = h.logFn
	case abi.EnvGetPerfInterface:
		if h.perf.PerfRegister == 0 {
			return false
		}
		*(*abi.PerfCallback)(data) = h.perf
	case abi.EnvGetRumbleInterface:
		if h.rumbleFn == 0 {
			return false
		}
		(*abi.RumbleInterface)(data).SetRumbleState = h.rumbleFn
	case abi.EnvSetKeyboardCallback:
		h.keyboardCB = (*abi.KeyboardCallback)(data).Callback
	case abi.EnvSetFrameTimeCallback:
		h.frameTimeCB = *(*abi.FrameTimeCallback)(data)
	case abi.EnvSetAudioCallback:
		h.audioCB = *(*abi.AudioCallback)(data)
	case abi.EnvSetInputDescriptors:
		descs := abi.Terminated((*abi.InputDescriptor)(data), func(d *abi.InputDescriptor) bool { return d.Description == nil })
		h.descriptors = h.descriptors[:0]
		for _, d := range descs {
			h.descriptors = append(h.descriptors, abi.GoString(d.Description))
		}
	case abi.EnvSetMessage:
		h.messages = append(h.messages, abi.GoString((*abi.Message)(data).Msg))
	case abi.EnvSetSerializationQuirks:
		*(*uint64)(data) |= abi.QuirkEndianDependent
	}
	return true
}

// fakeBridge stands in for the cgo layer.
type fakeBridge struct {
	logs       []string
	logLevels  []int
	registered []string
	started    []string
	stopped    []string
	perfLogged int
	rumble     []uint16
	timeUsec   int64
	keyboard   uintptr
	frameTime  uintptr
	audioWrite uintptr
	audioState uintptr
}

func (b *fakeBridge) LogPrintf(_ uintptr, level int, msg string) {
	b.logLevels = append(b.logLevels, level)
	b.logs = append(b.logs, msg)
}

func (b *fakeBridge) PerfTimeUsec(uintptr) int64 { return b.timeUsec }
func (b *fakeBridge) PerfCPUFeatures(uintptr) uint64 { return 0 }
func (b *fakeBridge) PerfCounter(uintptr) uint64 { return 0 }

func (b *fakeBridge) PerfRegister(_ uintptr, c *abi.PerfCounter) {
	c.Registered = true
	b.registered = append(b.registered, abi.GoString(c.Ident))
}

func (b *fakeBridge) PerfStart(_ uintptr, c *abi.PerfCounter) {
	b.started = append(b.started, abi.GoString(c.Ident))
}

func (b *fakeBridge) PerfStop(_ uintptr, c *abi.PerfCounter) {
	b.stopped = append(b.stopped, abi.GoString(c.Ident))
}

func (b *fakeBridge) PerfLog(uintptr) { b.perfLogged++ }

func (b *fakeBridge) SetRumbleState(_ uintptr, _, _ uint, strength uint16) bool {
	b.rumble = append(b.rumble, strength)
	return true
}

func (b *fakeBridge) KeyboardCallback() uintptr { return b.keyboard }
func (b *fakeBridge) FrameTimeCallback() uintptr { return b.frameTime }

func (b *fakeBridge) AudioCallbacks() (uintptr, uintptr) {
	return b.audioWrite, b.audioState
}

// basicCore implements only emucore.Core.
type basicCore struct {
	info   emucore.SystemInfo
	av     emucore.AVInfo
	region emucore.Region

	onInit func(env emucore.Environment) error
	onLoad func(game *emucore.GameInfo, env emucore.Environment) error
	onRun  func(f emucore.Frame)

	game *emucore.GameInfo

	inits, deinits, loads, runs, resets, unloads int
}

func newBasicCore() *basicCore {
	return &basicCore{
		info: emucore.SystemInfo{
			LibraryName:    "Test Core",
			LibraryVersion: "1.2.3",
			Extensions:     []string{"bin", "rom"},
			OptionPrefix:   "test_",
		},
		av: emucore.AVInfo{
			Geometry: emucore.Geometry{
				BaseWidth:   320,
				BaseHeight:  240,
				MaxWidth:    640,
				MaxHeight:   480,
				AspectRatio: 4.0 / 3.0,
			},
			Timing: emucore.Timing{FPS: 60, SampleRate: 48000},
		},
	}
}

func (c *basicCore) SystemInfo() emucore.SystemInfo { return c.info }

func (c *basicCore) Init(env emucore.Environment) error {
	c.inits++
	if c.onInit != nil {
		return c.onInit(env)
	}
	return nil
}

func (c *basicCore) Deinit() { c.deinits++ }

func (c *basicCore) LoadGame(game *emucore.GameInfo, env emucore.Environment) error {
	c.loads++
	c.game = game
	if c.onLoad != nil {
		return c.onLoad(game, env)
	}
	return nil
}

func (c *basicCore) AVInfo() emucore.AVInfo { return c.av }

func (c *basicCore) Run(f emucore.Frame) {
	c.runs++
	if c.onRun != nil {
		c.onRun(f)
	}
}

func (c *basicCore) Reset() { c.resets++ }
func (c *basicCore) UnloadGame() { c.unloads++ }
func (c *basicCore) Region() emucore.Region { return c.region }

var errStateTooBig = errors.New("state too big")

// fullCore implements every optional core interface.
type fullCore struct {
	*basicCore

	state     []byte
	stateSize int
	ram       []byte

	options        []emucore.CoreOption
	optionsChanged int
	keys           []emucore.KeyEvent
	cheats         []string
	cheatResets    int
	ports          map[uint]emucore.Device
	special        []*emucore.GameInfo
	envCalls       []bool
	frameRef       time.Duration
}

func newFullCore() *fullCore {
	return &fullCore{
		basicCore: newBasicCore(),
		state:     []byte("state-v1"),
		stateSize: 64,
		ram:       make([]byte, 16),
		options: []emucore.CoreOption{
			{Key: "palette", Label: "Palette", Type: emucore.CoreOptionSelect, Default: "warm", Values: []string{"cool", "warm"}},
			{Key: "bad key", Label: "Broken"},
			{Key: "turbo", Label: "Turbo", Type: emucore.CoreOptionBool},
		},
		ports:    make(map[uint]emucore.Device),
		frameRef: time.Second / 60,
	}
}

func (c *fullCore) SerializeSize() int { return c.stateSize }

func (c *fullCore) Serialize() ([]byte, error) {
	return append([]byte(nil), c.state...), nil
}

func (c *fullCore) Deserialize(data []byte) error {
	if len(data) > c.stateSize {
		return errStateTooBig
	}
	c.state = data
	return nil
}

func (c *fullCore) MemoryRegion(id emucore.MemoryID) []byte {
	if id == emucore.MemorySystemRAM {
		return c.ram
	}
	return nil
}

func (c *fullCore) CoreOptions() []emucore.CoreOption { return c.options }

func (c *fullCore) OptionsChanged(emucore.Environment) { c.optionsChanged++ }

func (c *fullCore) KeyEvent(ev emucore.KeyEvent) { c.keys = append(c.keys, ev) }

func (c *fullCore) CheatReset() { c.cheatResets++ }

func (c *fullCore) CheatSet(index uint, enabled bool, code string) {
	c.cheats = append(c.cheats, code)
}

func (c *fullCore) SetControllerPortDevice(port uint, device emucore.Device) {
	c.ports[port] = device
}

func (c *fullCore) LoadGameSpecial(_ uint, games []*emucore.GameInfo, _ emucore.Environment) error {
	c.special = games
	return nil
}

func (c *fullCore) SetEnvironment(_ emucore.Environment, initial bool) {
	c.envCalls = append(c.envCalls, initial)
}

func (c *fullCore) FrameTimeReference() time.Duration { return c.frameRef }

// pullCore produces audio only when the host asks for it.
type pullCore struct {
	*basicCore

	writes int
	states []bool
}

func (c *pullCore) AudioWrite(out emucore.AudioWriter) {
	c.writes++
	out.WriteAudio([]int16{1, 2, 3, 4})
	out.WriteAudioSample(5, 6)
}

func (c *pullCore) AudioSetState(enabled bool) { c.states = append(c.states, enabled) }

type videoCall struct {
	data   []byte
	width  uint
	height uint
	pitch  uintptr
}

// harness drives a Wrapper the way a frontend does.
type harness struct {
	t      *testing.T
	w      *Wrapper
	host   *fakeHost
	bridge *fakeBridge

	events     []string
	video      []videoCall
	audio      []int16
	batchLimit uint
	pad        map[uint]uint16
	onPoll     func()
}

func testConfig() Config {
	return Config{LogLevel: "error", MaxContentSize: 1 << 20}
}

func newHarness(t *testing.T, core emucore.Core, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		host:   newFakeHost(),
		bridge: &fakeBridge{keyboard: 0x1000, frameTime: 0x2000, audioWrite: 0x3000, audioState: 0x3100},
		pad:    make(map[uint]uint16),
	}
	opts = append([]Option{WithBridge(h.bridge), WithConfig(testConfig())}, opts...)
	h.w = New(func() emucore.Core { return core }, opts...)
	t.Cleanup(h.w.Deinit)
	return h
}

func (h *harness) videoRefresh(data []byte, width, height uint, pitch uintptr) {
	h.events = append(h.events, "video")
	h.video = append(h.video, videoCall{data, width, height, pitch})
}

func (h *harness) audioSample(left, right int16) {
	h.events = append(h.events, "sample")
	h.audio = append(h.audio, left, right)
}

func (h *harness) audioBatch(samples []int16) uint {
	h.events = append(h.events, "audio")
	frames := uint(len(samples) / 2)
	if h.batchLimit > 0 && frames > h.batchLimit {
		frames = h.batchLimit
	}
	h.audio = append(h.audio, samples[:frames*2]...)
	return frames
}

func (h *harness) inputPoll() {
	h.events = append(h.events, "poll")
	if h.onPoll != nil {
		h.onPoll()
	}
}

func (h *harness) inputState(port, device, index, id uint) int16 {
	if device != abi.DeviceJoypad {
		return 0
	}
	buttons := h.pad[port]
	if id == abi.JoypadMask {
		return int16(buttons)
	}
	return int16((buttons >> id) & 1)
}

// connect registers the environment and every frame callback.
func (h *harness) connect() {
	h.w.SetEnvironment(h.host.environment)
	h.w.SetVideoRefresh(h.videoRefresh)
	h.w.SetAudioSample(h.audioSample)
	h.w.SetAudioSampleBatch(h.audioBatch)
	h.w.SetInputPoll(h.inputPoll)
	h.w.SetInputState(h.inputState)
}

func (h *harness) boot() {
	h.t.Helper()
	h.connect()
	h.w.Init()
	if got := h.w.Phase(); got != Initialized {
		h.t.Fatalf("phase after init = %s, want Initialized", got)
	}
}

func (h *harness) load() {
	h.t.Helper()
	h.boot()
	if !h.w.LoadGame(gameInfo("/roms/Test Game (USA).bin", []byte("ROMDATA!"))) {
		h.t.Fatal("LoadGame failed")
	}
}

// state returns the live state for white-box checks.
func (h *harness) state() *State {
	return h.w.state
}

func gameInfo(path string, data []byte) *abi.GameInfo {
	info := &abi.GameInfo{Size: uintptr(len(data))}
	if path != "" {
		info.Path = cstr(path)
	}
	if len(data) > 0 {
		info.Data = unsafe.Pointer(&data[0])
	}
	return info
}

func joined(events []string) string {
	return strings.Join(events, ",")
}
