package wrapper

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

func (s *State) setEnvironment(fn EnvironmentFunc) {
	s.env = fn
	if fn == nil {
		s.log.Warn("Host cleared the environment callback")
		return
	}
	s.envCalls++
	initial := s.envCalls == 1

	if s.logFn == 0 {
		fetch[abi.LogCallback](s.coreEnv, abi.EnvGetLogInterface)
	}
	if initial {
		s.registerOptions()
	}
	if l, ok := s.core.(emucore.EnvironmentListener); ok {
		l.SetEnvironment(s.coreEnv, initial)
	}
}

func (s *State) init() error {
	if s.phase != Uninitialized {
		return fmt.Errorf("init in %s: %w", s.phase, emucore.ErrAlreadyInitialized)
	}
	s.phase = EnvironmentNegotiating
	defer func() {
		if s.phase != Initialized {
			s.phase = Uninitialized
		}
	}()

	fetch[bool](s.coreEnv, abi.EnvGetCanDupe)
	if err := s.dispatch(abi.EnvGetInputBitmasks, nil); err == nil {
		s.log.Debug("Host reports joypad bitmasks")
	}
	if _, ok := s.core.(emucore.KeyboardListener); ok {
		s.registerKeyboard()
	}

	if err := s.core.Init(s.coreEnv); err != nil {
		return fmt.Errorf("core init: %w", err)
	}
	s.phase = Initialized
	return nil
}

func (s *State) registerKeyboard() {
	addr := s.bridge.KeyboardCallback()
	if addr == 0 {
		return
	}
	v := abi.KeyboardCallback{Callback: addr}
	if err := send(s.coreEnv, abi.EnvSetKeyboardCallback, &v, nil); err != nil {
		s.log.Debug("Keyboard callback not registered", zap.Error(err))
	}
}

func (s *State) registerFrameTime(ref time.Duration) {
	addr := s.bridge.FrameTimeCallback()
	if addr == 0 {
		return
	}
	v := abi.FrameTimeCallback{Callback: addr, Reference: ref.Microseconds()}
	if err := send(s.coreEnv, abi.EnvSetFrameTimeCallback, &v, nil); err != nil {
		s.log.Debug("Frame time callback not registered", zap.Error(err))
	}
}

func (s *State) registerAudio() {
	write, setState := s.bridge.AudioCallbacks()
	if write == 0 || setState == 0 {
		return
	}
	v := abi.AudioCallback{Callback: write, SetState: setState}
	if err := send(s.coreEnv, abi.EnvSetAudioCallback, &v, nil); err != nil {
		s.log.Debug("Audio callback not registered", zap.Error(err))
	}
}

func (s *State) notifyOptions() {
	if l, ok := s.core.(emucore.OptionsListener); ok {
		l.OptionsChanged(s.coreEnv)
	}
}

func (s *State) loadGame(info *abi.GameInfo) error {
	if !loadable.has(s.phase) {
		return fmt.Errorf("load in %s: %w", s.phase, emucore.ErrInvalidPhase)
	}
	defer s.dropLatchUnlessLoaded()

	var game *emucore.GameInfo
	if info == nil {
		if !s.supportNoGame {
			return emucore.ErrNoContent
		}
	} else {
		g, err := s.readContent(info)
		if err != nil {
			return err
		}
		game = g
	}

	s.notifyOptions()
	if err := s.core.LoadGame(game, s.coreEnv); err != nil {
		return fmt.Errorf("core rejected content: %w", err)
	}
	return s.finishLoad(game)
}

// dropLatchUnlessLoaded lets the next load negotiate a pixel format again
// after an attempt that did not end in GameLoaded, panics included.
func (s *State) dropLatchUnlessLoaded() {
	if s.phase != GameLoaded {
		delete(s.latches, abi.EnvSetPixelFormat)
	}
}

func (s *State) loadGameSpecial(gameType uint, infos []abi.GameInfo) error {
	loader, ok := s.core.(emucore.SpecialLoader)
	if !ok {
		return fmt.Errorf("special content: %w", emucore.ErrUnsupported)
	}
	if !loadable.has(s.phase) {
		return fmt.Errorf("load in %s: %w", s.phase, emucore.ErrInvalidPhase)
	}
	defer s.dropLatchUnlessLoaded()
	if len(infos) == 0 {
		return emucore.ErrNoContent
	}

	games := make([]*emucore.GameInfo, len(infos))
	for i := range infos {
		g, err := s.readContent(&infos[i])
		if err != nil {
			return fmt.Errorf("content %d: %w", i, err)
		}
		games[i] = g
	}

	s.notifyOptions()
	if err := loader.LoadGameSpecial(gameType, games, s.coreEnv); err != nil {
		return fmt.Errorf("core rejected special content: %w", err)
	}
	return s.finishLoad(games[0])
}

// finishLoad caches the AV info of freshly loaded content. Content with
// unusable AV info is unloaded again.
func (s *State) finishLoad(game *emucore.GameInfo) error {
	av := s.core.AVInfo()
	if err := validateAVInfo(av); err != nil {
		s.core.UnloadGame()
		return err
	}
	s.avInfo = av
	s.avValid = true
	s.game = game
	s.phase = GameLoaded

	s.log.Info("Content ready",
		zap.Uint("width", av.Geometry.BaseWidth),
		zap.Uint("height", av.Geometry.BaseHeight),
		zap.Float64("fps", av.Timing.FPS),
		zap.Float64("sample_rate", av.Timing.SampleRate),
		zap.Stringer("pixel_format", s.pixelFormat),
	)

	if ft, ok := s.core.(emucore.FrameTimer); ok {
		s.registerFrameTime(ft.FrameTimeReference())
	}
	if _, ok := s.core.(emucore.AudioCallbacker); ok {
		s.registerAudio()
	}
	return nil
}

func (s *State) run() error {
	if !contentLoaded.has(s.phase) {
		return fmt.Errorf("run in %s: %w", s.phase, emucore.ErrInvalidPhase)
	}
	if !s.callbacks.ready() {
		return ErrNoCallbacks
	}
	s.phase = Running

	if _, ok := s.core.(emucore.OptionsListener); ok && s.coreEnv.VariablesUpdated() {
		s.notifyOptions()
	}
	s.callbacks.pollInput()
	s.runFrame()
	return nil
}

func (s *State) reset() error {
	if !contentLoaded.has(s.phase) {
		return fmt.Errorf("reset in %s: %w", s.phase, emucore.ErrInvalidPhase)
	}
	s.core.Reset()
	return nil
}

func (s *State) unloadGame() error {
	if !contentLoaded.has(s.phase) {
		return fmt.Errorf("unload in %s: %w", s.phase, emucore.ErrInvalidPhase)
	}
	s.core.UnloadGame()
	s.releaseGame()
	s.phase = GameUnloaded
	return nil
}

// deinit tears everything down. Each core hook is protected on its own so
// a panicking hook does not leave the state half released.
func (s *State) deinit() {
	if contentLoaded.has(s.phase) {
		s.safely("UnloadGame", s.core.UnloadGame)
	}
	if s.phase != Uninitialized {
		s.safely("Deinit", s.core.Deinit)
	}
	s.release()
	s.phase = Deinitialized
}

func (s *State) safely(name string, fn func()) {
	protect(name, struct{}{}, func() struct{} {
		fn()
		return struct{}{}
	})
}

func (s *State) saveStater() (emucore.SaveStater, error) {
	ss, ok := s.core.(emucore.SaveStater)
	if !ok {
		return nil, fmt.Errorf("save states: %w", emucore.ErrUnsupported)
	}
	if !contentLoaded.has(s.phase) {
		return nil, fmt.Errorf("save state in %s: %w", s.phase, emucore.ErrInvalidPhase)
	}
	return ss, nil
}

func (s *State) serializeSize() uint {
	ss, err := s.saveStater()
	if err != nil {
		return 0
	}
	return uint(max(ss.SerializeSize(), 0))
}

func (s *State) serialize(dst []byte) error {
	ss, err := s.saveStater()
	if err != nil {
		return err
	}
	data, err := ss.Serialize()
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	if len(data) > ss.SerializeSize() {
		return fmt.Errorf("state is %s, more than the reported %s",
			humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(max(ss.SerializeSize(), 0))))
	}
	if len(data) > len(dst) {
		return fmt.Errorf("state is %s, buffer holds %s",
			humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(len(dst))))
	}
	n := copy(dst, data)
	clear(dst[n:])
	return nil
}

func (s *State) unserialize(src []byte) error {
	ss, err := s.saveStater()
	if err != nil {
		return err
	}
	if err := ss.Deserialize(bytes.Clone(src)); err != nil {
		return fmt.Errorf("unserialize: %w", err)
	}
	return nil
}

func (s *State) cheater() (emucore.Cheater, bool) {
	c, ok := s.core.(emucore.Cheater)
	return c, ok && contentLoaded.has(s.phase)
}

// memory returns a region for the host. Regions stay pinned until the
// content is unloaded.
func (s *State) memory(id emucore.MemoryID) []byte {
	if !contentLoaded.has(s.phase) {
		return nil
	}
	if region, ok := s.regions[id]; ok {
		return region
	}
	mapper, ok := s.core.(emucore.MemoryMapper)
	if !ok {
		return nil
	}
	region := mapper.MemoryRegion(id)
	if len(region) == 0 {
		return nil
	}
	s.memPins.Pin(&region[0])
	s.regions[id] = region
	return region
}

func (s *State) region() (emucore.Region, error) {
	if !initialized.has(s.phase) {
		return emucore.RegionNTSC, fmt.Errorf("region in %s: %w", s.phase, emucore.ErrInvalidPhase)
	}
	return s.core.Region(), nil
}

func (s *State) setControllerPortDevice(port uint, device emucore.Device) {
	s.ports[port] = device
	if l, ok := s.core.(emucore.ControllerListener); ok {
		l.SetControllerPortDevice(port, device)
	}
}

func (s *State) keyEvent(ev emucore.KeyEvent) {
	if !initialized.has(s.phase) {
		return
	}
	if l, ok := s.core.(emucore.KeyboardListener); ok {
		l.KeyEvent(ev)
	}
}

func (s *State) frameTime(usec int64) {
	s.frameDelta = time.Duration(usec) * time.Microsecond
}

// hostAudio hands samples straight to the host's audio callbacks.
type hostAudio struct{ s *State }

func (a hostAudio) WriteAudio(samples []int16) {
	a.s.callbacks.writeAudio(samples)
}

func (a hostAudio) WriteAudioSample(left, right int16) {
	a.s.callbacks.writeAudio([]int16{left, right})
}

func (s *State) audioWrite() {
	if !s.audioCallback || !contentLoaded.has(s.phase) {
		return
	}
	if ac, ok := s.core.(emucore.AudioCallbacker); ok {
		ac.AudioWrite(hostAudio{s})
	}
}

func (s *State) audioSetState(enabled bool) {
	if !s.audioCallback || !initialized.has(s.phase) {
		return
	}
	if ac, ok := s.core.(emucore.AudioCallbacker); ok {
		ac.AudioSetState(enabled)
	}
}
