package wrapper

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

// The methods below back the retro_* entry points one to one. None of them
// panics; calls that are out of order are logged and ignored, or return
// false where the entry point has a result.

// APIVersion backs retro_api_version.
func (w *Wrapper) APIVersion() uint {
	return abi.APIVersion
}

// SetEnvironment backs retro_set_environment.
func (w *Wrapper) SetEnvironment(fn EnvironmentFunc) {
	w.enter("retro_set_environment", func(s *State) {
		s.setEnvironment(fn)
	})
}

// SetVideoRefresh backs retro_set_video_refresh.
func (w *Wrapper) SetVideoRefresh(fn VideoRefreshFunc) {
	w.enter("retro_set_video_refresh", func(s *State) {
		s.callbacks.video.set(fn, fn != nil)
	})
}

// SetAudioSample backs retro_set_audio_sample.
func (w *Wrapper) SetAudioSample(fn AudioSampleFunc) {
	w.enter("retro_set_audio_sample", func(s *State) {
		s.callbacks.audioSample.set(fn, fn != nil)
	})
}

// SetAudioSampleBatch backs retro_set_audio_sample_batch.
func (w *Wrapper) SetAudioSampleBatch(fn AudioSampleBatchFunc) {
	w.enter("retro_set_audio_sample_batch", func(s *State) {
		s.callbacks.audioBatch.set(fn, fn != nil)
	})
}

// SetInputPoll backs retro_set_input_poll.
func (w *Wrapper) SetInputPoll(fn InputPollFunc) {
	w.enter("retro_set_input_poll", func(s *State) {
		s.callbacks.inputPoll.set(fn, fn != nil)
	})
}

// SetInputState backs retro_set_input_state.
func (w *Wrapper) SetInputState(fn InputStateFunc) {
	w.enter("retro_set_input_state", func(s *State) {
		s.callbacks.inputState.set(fn, fn != nil)
	})
}

// Init backs retro_init.
func (w *Wrapper) Init() {
	w.enter("retro_init", func(s *State) {
		if err := s.init(); err != nil {
			s.log.Error("Init failed", zap.Error(err))
		}
	})
}

// Deinit backs retro_deinit. A later entry point starts over with a fresh
// core.
func (w *Wrapper) Deinit() {
	w.mu.Lock()
	live := w.state != nil && w.state.phase != Deinitialized
	w.mu.Unlock()
	if !live {
		Logger().Debug("Deinit without a live core")
		return
	}
	w.enter("retro_deinit", func(s *State) {
		s.deinit()
	})
}

// GetSystemInfo backs retro_get_system_info. The strings written to dst
// stay valid for the life of the module.
func (w *Wrapper) GetSystemInfo(dst *abi.SystemInfo) {
	if dst == nil {
		return
	}
	w.enter("retro_get_system_info", func(s *State) {
		if !w.infoReady {
			info := s.core.SystemInfo()
			if err := validate.Struct(info); err != nil {
				s.log.Warn("Core reports invalid system info", zap.Error(err))
			}
			w.info = abi.SystemInfo{
				LibraryName:     w.infoPins.CString(info.LibraryName),
				LibraryVersion:  w.infoPins.CString(info.LibraryVersion),
				ValidExtensions: w.infoPins.CString(info.ValidExtensions()),
				NeedFullpath:    info.NeedFullpath,
				BlockExtract:    info.BlockExtract,
			}
			w.infoReady = true
		}
		*dst = w.info
	})
}

// GetSystemAVInfo backs retro_get_system_av_info. It reports zeros until
// content is loaded.
func (w *Wrapper) GetSystemAVInfo(dst *abi.SystemAVInfo) {
	if dst == nil {
		return
	}
	w.enter("retro_get_system_av_info", func(s *State) {
		if !s.avValid {
			s.log.Warn("AV info requested without content", zap.Stringer("phase", s.phase))
			*dst = abi.SystemAVInfo{}
			return
		}
		*dst = avInfoToABI(s.avInfo)
	})
}

// SetControllerPortDevice backs retro_set_controller_port_device.
func (w *Wrapper) SetControllerPortDevice(port, device uint) {
	w.enter("retro_set_controller_port_device", func(s *State) {
		s.setControllerPortDevice(port, emucore.Device(device))
	})
}

// Reset backs retro_reset.
func (w *Wrapper) Reset() {
	w.enter("retro_reset", func(s *State) {
		if err := s.reset(); err != nil {
			s.log.Warn("Reset ignored", zap.Error(err))
		}
	})
}

// Run backs retro_run.
func (w *Wrapper) Run() {
	w.enter("retro_run", func(s *State) {
		if err := s.run(); err != nil {
			s.log.Warn("Run ignored", zap.Error(err))
		}
	})
}

// SerializeSize backs retro_serialize_size.
func (w *Wrapper) SerializeSize() uint {
	return call[uint](w, "retro_serialize_size", 0, func(s *State) uint {
		return s.serializeSize()
	})
}

// Serialize backs retro_serialize.
func (w *Wrapper) Serialize(dst []byte) bool {
	return call(w, "retro_serialize", false, func(s *State) bool {
		if err := s.serialize(dst); err != nil {
			s.log.Warn("Serialize failed", zap.Error(err))
			return false
		}
		return true
	})
}

// Unserialize backs retro_unserialize.
func (w *Wrapper) Unserialize(src []byte) bool {
	return call(w, "retro_unserialize", false, func(s *State) bool {
		if err := s.unserialize(src); err != nil {
			s.log.Warn("Unserialize failed", zap.Error(err))
			return false
		}
		return true
	})
}

// CheatReset backs retro_cheat_reset.
func (w *Wrapper) CheatReset() {
	w.enter("retro_cheat_reset", func(s *State) {
		if c, ok := s.cheater(); ok {
			c.CheatReset()
		}
	})
}

// CheatSet backs retro_cheat_set.
func (w *Wrapper) CheatSet(index uint, enabled bool, code string) {
	w.enter("retro_cheat_set", func(s *State) {
		c, ok := s.cheater()
		if !ok {
			s.log.Debug("Cheat ignored", zap.Uint("index", index))
			return
		}
		c.CheatSet(index, enabled, code)
	})
}

// LoadGame backs retro_load_game. info is nil when the host starts the
// core without content.
func (w *Wrapper) LoadGame(info *abi.GameInfo) bool {
	return call(w, "retro_load_game", false, func(s *State) bool {
		if err := s.loadGame(info); err != nil {
			s.log.Error("Load game failed", zap.Error(err))
			return false
		}
		return true
	})
}

// LoadGameSpecial backs retro_load_game_special.
func (w *Wrapper) LoadGameSpecial(gameType uint, infos []abi.GameInfo) bool {
	return call(w, "retro_load_game_special", false, func(s *State) bool {
		if err := s.loadGameSpecial(gameType, infos); err != nil {
			s.log.Error("Load special game failed", zap.Uint("type", gameType), zap.Error(err))
			return false
		}
		return true
	})
}

// UnloadGame backs retro_unload_game.
func (w *Wrapper) UnloadGame() {
	w.enter("retro_unload_game", func(s *State) {
		if err := s.unloadGame(); err != nil {
			s.log.Warn("Unload ignored", zap.Error(err))
		}
	})
}

// GetRegion backs retro_get_region.
func (w *Wrapper) GetRegion() uint {
	return call[uint](w, "retro_get_region", abi.RegionNTSC, func(s *State) uint {
		r, err := s.region()
		if err != nil {
			s.log.Debug("Region requested early", zap.Error(err))
		}
		return uint(r)
	})
}

// GetMemoryData backs retro_get_memory_data. The region stays valid until
// the content is unloaded.
func (w *Wrapper) GetMemoryData(id uint) unsafe.Pointer {
	return call[unsafe.Pointer](w, "retro_get_memory_data", nil, func(s *State) unsafe.Pointer {
		region := s.memory(emucore.MemoryID(id))
		if len(region) == 0 {
			return nil
		}
		return unsafe.Pointer(&region[0])
	})
}

// GetMemorySize backs retro_get_memory_size.
func (w *Wrapper) GetMemorySize(id uint) uintptr {
	return call[uintptr](w, "retro_get_memory_size", 0, func(s *State) uintptr {
		return uintptr(len(s.memory(emucore.MemoryID(id))))
	})
}

// KeyboardEvent is the keyboard callback the wrapper registers with the
// host. The host may deliver it while polling input inside Run.
func (w *Wrapper) KeyboardEvent(down bool, keycode uint, character uint32, modifiers uint16) {
	w.nested("retro_keyboard_event", func(s *State) {
		s.keyEvent(emucore.KeyEvent{
			Down:      down,
			Keycode:   keycode,
			Character: rune(character),
			Modifiers: modifiers,
		})
	})
}

// FrameTime is the frame time callback the wrapper registers with the
// host. usec is the time since the previous frame.
func (w *Wrapper) FrameTime(usec int64) {
	w.nested("retro_frame_time_callback", func(s *State) {
		s.frameTime(usec)
	})
}

// AudioCallback is the audio callback the wrapper registers for cores that
// implement emucore.AudioCallbacker. The host asks for more audio through it.
func (w *Wrapper) AudioCallback() {
	w.nested("retro_audio_callback", func(s *State) {
		s.audioWrite()
	})
}

// AudioSetState reports whether the host is pulling audio through
// AudioCallback.
func (w *Wrapper) AudioSetState(enabled bool) {
	w.nested("retro_audio_set_state_callback", func(s *State) {
		s.audioSetState(enabled)
	})
}
