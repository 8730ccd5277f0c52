package wrapper

import (
	"time"

	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
	"github.com/user-none/eblitcore/rdb"
)

// State is everything the wrapper knows about the core and the host
// between entry points. A Wrapper holds at most one.
type State struct {
	core    emucore.Core
	cfg     Config
	log     *zap.Logger
	bridge  Bridge
	db      *rdb.Cache
	env     EnvironmentFunc
	coreEnv *environment

	phase     Phase
	callbacks registry
	envCalls  int

	// latches holds the accepted payload of latched commands, by code.
	latches map[uint32]string

	pixelFormat emucore.PixelFormat
	avInfo      emucore.AVInfo
	avValid     bool
	rotation    uint
	ports       map[uint]emucore.Device
	game        *emucore.GameInfo

	supportNoGame   bool
	achievements    bool
	inputBitmasks   bool
	canDupe         bool
	shutdown        bool
	quirks          uint64
	perfLevel       uint
	minAudioLatency uint

	optionsVersion uint
	options        []emucore.CoreOption
	prefix         string
	variables      map[string]string
	descriptors    []emucore.InputDescriptor
	controllers    [][]emucore.ControllerDescription

	logFn    uintptr
	perf     perfState
	rumbleFn uintptr

	keyboard      bool
	frameTimer    bool
	frameDelta    time.Duration
	audioCallback bool

	regions map[emucore.MemoryID][]byte
	memPins abi.Pins

	audioBuf []int16
}

func newState(core emucore.Core, cfg Config, bridge Bridge, db *rdb.Cache) *State {
	if bridge == nil {
		bridge = nopBridge{}
	}
	s := &State{
		core:        core,
		cfg:         cfg,
		bridge:      bridge,
		db:          db,
		log:         newLogger(cfg, bridge, 0),
		latches:     make(map[uint32]string),
		pixelFormat: emucore.PixelFormat0RGB1555,
		ports:       make(map[uint]emucore.Device),
		variables:   make(map[string]string),
		regions:     make(map[emucore.MemoryID][]byte),
		prefix:      core.SystemInfo().Prefix(),
	}
	s.coreEnv = &environment{s: s}
	SetLogger(s.log)
	return s
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Game returns the loaded content, or nil.
func (s *State) Game() *emucore.GameInfo {
	return s.game
}

// PixelFormat returns the negotiated pixel format.
func (s *State) PixelFormat() emucore.PixelFormat {
	return s.pixelFormat
}

// useLogger switches to the host's log interface.
func (s *State) useLogger(fn uintptr) {
	if fn == 0 || fn == s.logFn {
		return
	}
	s.logFn = fn
	s.log = newLogger(s.cfg, s.bridge, fn)
	SetLogger(s.log)
	s.log.Debug("Using host log interface")
}

// releaseGame drops everything tied to the loaded content.
func (s *State) releaseGame() {
	s.game = nil
	s.avValid = false
	s.avInfo = emucore.AVInfo{}
	s.memPins.Unpin()
	clear(s.regions)
	delete(s.latches, abi.EnvSetPixelFormat)
	s.audioBuf = nil
	s.frameDelta = 0
}

// release drops everything the state holds at deinit.
func (s *State) release() {
	s.releaseGame()
	s.perf.release(s.bridge)
	s.callbacks = registry{}
	s.env = nil
	clear(s.latches)
	clear(s.variables)
	s.logFn = 0
	s.rumbleFn = 0
	s.log = newLogger(s.cfg, s.bridge, 0)
	SetLogger(s.log)
}
