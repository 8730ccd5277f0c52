package wrapper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

// commands is the dispatch table. Codes missing here are unknown to this
// build. It is filled in init because record hooks reach back into State.
var commands map[uint32]command

func init() {
	commands = map[uint32]command{
		abi.EnvSetRotation: set("SET_ROTATION", renegotiable, hooks[uint32]{
			check: func(_ *State, v *uint32) error {
				if *v > 3 {
					return fmt.Errorf("rotation %d: %w", *v, emucore.ErrCommandRejected)
				}
				return nil
			},
			record: func(s *State, v *uint32) { s.rotation = uint(*v) },
		}),
		abi.EnvGetOverscan: get("GET_OVERSCAN", hooks[bool]{}),
		abi.EnvGetCanDupe: get("GET_CAN_DUPE", hooks[bool]{
			record: func(s *State, v *bool) { s.canDupe = *v },
		}),
		abi.EnvSetMessage: set("SET_MESSAGE", renegotiable, hooks[abi.Message]{
			check: func(_ *State, v *abi.Message) error { return nonNil(v.Msg, "message") },
		}),
		abi.EnvShutdown: signal("SHUTDOWN", func(s *State) { s.shutdown = true }),
		abi.EnvSetPerformanceLevel: set("SET_PERFORMANCE_LEVEL", renegotiable, hooks[uint32]{
			record: func(s *State, v *uint32) { s.perfLevel = uint(*v) },
		}),
		abi.EnvGetSystemDirectory: get("GET_SYSTEM_DIRECTORY", hooks[*byte]{}),
		abi.EnvSetPixelFormat: set("SET_PIXEL_FORMAT", latched, hooks[int32]{
			phases: phases(EnvironmentNegotiating, Initialized, GameUnloaded, GameLoaded),
			check: func(_ *State, v *int32) error {
				if emucore.PixelFormat(*v).BytesPerPixel() == 0 {
					return fmt.Errorf("pixel format %d: %w", *v, emucore.ErrCommandRejected)
				}
				return nil
			},
			key:    func(v *int32) string { return strconv.Itoa(int(*v)) },
			record: func(s *State, v *int32) { s.pixelFormat = emucore.PixelFormat(*v) },
		}),
		abi.EnvSetInputDescriptors: set("SET_INPUT_DESCRIPTORS", renegotiable, hooks[abi.InputDescriptor]{
			record: func(s *State, v *abi.InputDescriptor) { s.descriptors = inputDescriptorsFromABI(v) },
		}),
		abi.EnvSetKeyboardCallback: set("SET_KEYBOARD_CALLBACK", latched, hooks[abi.KeyboardCallback]{
			check: func(_ *State, v *abi.KeyboardCallback) error { return nonZero(v.Callback, "callback") },
			key:   func(v *abi.KeyboardCallback) string { return strconv.FormatUint(uint64(v.Callback), 16) },
			record: func(s *State, _ *abi.KeyboardCallback) {
				s.keyboard = true
			},
		}),
		abi.EnvGetVariable: get("GET_VARIABLE", hooks[abi.Variable]{
			check: func(_ *State, v *abi.Variable) error { return nonNil(v.Key, "key") },
			record: func(s *State, v *abi.Variable) {
				if v.Value != nil {
					s.variables[abi.GoString(v.Key)] = abi.GoString(v.Value)
				}
			},
		}),
		abi.EnvSetVariables: set("SET_VARIABLES", latched, hooks[abi.Variable]{
			phases: preInit,
			key:    variablesKey,
		}),
		abi.EnvGetVariableUpdate: get("GET_VARIABLE_UPDATE", hooks[bool]{}),
		abi.EnvSetSupportNoGame: set("SET_SUPPORT_NO_GAME", latched, hooks[bool]{
			phases: preInit,
			key:    func(v *bool) string { return strconv.FormatBool(*v) },
			record: func(s *State, v *bool) { s.supportNoGame = *v },
		}),
		abi.EnvGetLibretroPath: get("GET_LIBRETRO_PATH", hooks[*byte]{}),
		abi.EnvSetFrameTimeCallback: set("SET_FRAME_TIME_CALLBACK", renegotiable, hooks[abi.FrameTimeCallback]{
			check:  func(_ *State, v *abi.FrameTimeCallback) error { return nonZero(v.Callback, "callback") },
			record: func(s *State, _ *abi.FrameTimeCallback) { s.frameTimer = true },
		}),
		// The host keeps both function pointers until the module unloads or
		// the callback is set again.
		abi.EnvSetAudioCallback: set("SET_AUDIO_CALLBACK", renegotiable, hooks[abi.AudioCallback]{
			phases: initialized,
			check: func(_ *State, v *abi.AudioCallback) error {
				if err := nonZero(v.Callback, "callback"); err != nil {
					return err
				}
				return nonZero(v.SetState, "set_state")
			},
			record: func(s *State, _ *abi.AudioCallback) { s.audioCallback = true },
		}),
		abi.EnvGetRumbleInterface: get("GET_RUMBLE_INTERFACE", hooks[abi.RumbleInterface]{
			record: func(s *State, v *abi.RumbleInterface) { s.rumbleFn = v.SetRumbleState },
		}),
		abi.EnvGetInputDeviceCapabilities: get("GET_INPUT_DEVICE_CAPABILITIES", hooks[uint64]{}),
		abi.EnvGetLogInterface: get("GET_LOG_INTERFACE", hooks[abi.LogCallback]{
			record: func(s *State, v *abi.LogCallback) { s.useLogger(v.Log) },
		}),
		abi.EnvGetPerfInterface: get("GET_PERF_INTERFACE", hooks[abi.PerfCallback]{
			record: func(s *State, v *abi.PerfCallback) { s.perf.cb = *v },
		}),
		abi.EnvGetCoreAssetsDirectory: get("GET_CORE_ASSETS_DIRECTORY", hooks[*byte]{}),
		abi.EnvGetSaveDirectory:       get("GET_SAVE_DIRECTORY", hooks[*byte]{}),
		abi.EnvSetSystemAVInfo: set("SET_SYSTEM_AV_INFO", renegotiable, hooks[abi.SystemAVInfo]{
			phases: contentLoaded,
			check: func(_ *State, v *abi.SystemAVInfo) error {
				return validateAVInfo(avInfoFromABI(v))
			},
			record: func(s *State, v *abi.SystemAVInfo) {
				s.avInfo = avInfoFromABI(v)
				s.avValid = true
			},
		}),
		abi.EnvSetControllerInfo: set("SET_CONTROLLER_INFO", latched, hooks[abi.ControllerInfo]{
			key: func(v *abi.ControllerInfo) string { return fmt.Sprint(controllersFromABI(v)) },
			record: func(s *State, v *abi.ControllerInfo) {
				s.controllers = controllersFromABI(v)
			},
		}),
		abi.EnvSetGeometry: set("SET_GEOMETRY", renegotiable, hooks[abi.GameGeometry]{
			phases: contentLoaded,
			check:  checkGeometry,
			record: func(s *State, v *abi.GameGeometry) {
				s.avInfo.Geometry.BaseWidth = uint(v.BaseWidth)
				s.avInfo.Geometry.BaseHeight = uint(v.BaseHeight)
				s.avInfo.Geometry.AspectRatio = float64(v.AspectRatio)
			},
		}),
		abi.EnvGetUsername: get("GET_USERNAME", hooks[*byte]{}),
		abi.EnvGetLanguage: get("GET_LANGUAGE", hooks[uint32]{}),
		abi.EnvSetSupportAchievements: set("SET_SUPPORT_ACHIEVEMENTS", latched, hooks[bool]{
			key:    func(v *bool) string { return strconv.FormatBool(*v) },
			record: func(s *State, v *bool) { s.achievements = *v },
		}),
		abi.EnvSetSerializationQuirks: set("SET_SERIALIZATION_QUIRKS", renegotiable, hooks[uint64]{
			record: func(s *State, v *uint64) { s.quirks = *v },
		}),
		abi.EnvGetAudioVideoEnable:  get("GET_AUDIO_VIDEO_ENABLE", hooks[int32]{}),
		abi.EnvGetFastForwarding:    get("GET_FASTFORWARDING", hooks[bool]{}),
		abi.EnvGetTargetRefreshRate: get("GET_TARGET_REFRESH_RATE", hooks[float32]{}),
		abi.EnvGetInputBitmasks: get("GET_INPUT_BITMASKS", hooks[bool]{
			optional: true,
			record:   func(s *State, _ *bool) { s.inputBitmasks = true },
		}),
		abi.EnvGetCoreOptionsVersion: get("GET_CORE_OPTIONS_VERSION", hooks[uint32]{
			record: func(s *State, v *uint32) { s.optionsVersion = uint(*v) },
		}),
		abi.EnvSetCoreOptions: set("SET_CORE_OPTIONS", latched, hooks[abi.CoreOptionDefinition]{
			phases: preInit,
			key:    coreOptionsKey,
		}),
		abi.EnvSetCoreOptionsDisplay: set("SET_CORE_OPTIONS_DISPLAY", renegotiable, hooks[abi.CoreOptionDisplay]{
			check: func(_ *State, v *abi.CoreOptionDisplay) error { return nonNil(v.Key, "key") },
		}),
		abi.EnvGetMessageInterfaceVersion: get("GET_MESSAGE_INTERFACE_VERSION", hooks[uint32]{}),
		abi.EnvSetMessageExt: set("SET_MESSAGE_EXT", renegotiable, hooks[abi.MessageExt]{
			check: func(_ *State, v *abi.MessageExt) error { return nonNil(v.Msg, "message") },
		}),
		abi.EnvGetInputMaxUsers: get("GET_INPUT_MAX_USERS", hooks[uint32]{}),
		abi.EnvSetMinimumAudioLatency: set("SET_MINIMUM_AUDIO_LATENCY", renegotiable, hooks[uint32]{
			record: func(s *State, v *uint32) { s.minAudioLatency = uint(*v) },
		}),
		abi.EnvSetVariable: set("SET_VARIABLE", renegotiable, hooks[abi.Variable]{
			check: func(_ *State, v *abi.Variable) error { return nonNil(v.Key, "key") },
			record: func(s *State, v *abi.Variable) {
				if v.Value != nil {
					s.variables[abi.GoString(v.Key)] = abi.GoString(v.Value)
				}
			},
		}),
		abi.EnvGetThrottleState:    get("GET_THROTTLE_STATE", hooks[abi.ThrottleState]{}),
		abi.EnvGetSavestateContext: get("GET_SAVESTATE_CONTEXT", hooks[int32]{}),
	}
}

func nonNil(p *byte, field string) error {
	if p == nil {
		return fmt.Errorf("nil %s: %w", field, emucore.ErrNilPayload)
	}
	return nil
}

func nonZero(fn uintptr, field string) error {
	if fn == 0 {
		return fmt.Errorf("nil %s: %w", field, emucore.ErrNilPayload)
	}
	return nil
}

// checkGeometry accepts base sizes up to the maximum reported at load. The
// maximum itself cannot change without SET_SYSTEM_AV_INFO.
func checkGeometry(s *State, v *abi.GameGeometry) error {
	cur := s.avInfo.Geometry
	switch {
	case v.BaseWidth == 0 || v.BaseHeight == 0:
		return fmt.Errorf("empty geometry %dx%d: %w", v.BaseWidth, v.BaseHeight, emucore.ErrCommandRejected)
	case uint(v.BaseWidth) > cur.MaxWidth || uint(v.BaseHeight) > cur.MaxHeight:
		return fmt.Errorf("geometry %dx%d exceeds %dx%d: %w",
			v.BaseWidth, v.BaseHeight, cur.MaxWidth, cur.MaxHeight, emucore.ErrCommandRejected)
	case v.AspectRatio < 0:
		return fmt.Errorf("negative aspect ratio: %w", emucore.ErrCommandRejected)
	}
	return nil
}

func variablesKey(v *abi.Variable) string {
	var sb strings.Builder
	for _, e := range abi.Terminated(v, func(e *abi.Variable) bool { return e.Key == nil }) {
		sb.WriteString(abi.GoString(e.Key))
		sb.WriteByte('=')
		sb.WriteString(abi.GoString(e.Value))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func coreOptionsKey(v *abi.CoreOptionDefinition) string {
	var sb strings.Builder
	for _, e := range abi.Terminated(v, func(e *abi.CoreOptionDefinition) bool { return e.Key == nil }) {
		sb.WriteString(abi.GoString(e.Key))
		sb.WriteByte('=')
		sb.WriteString(abi.GoString(e.DefaultValue))
		sb.WriteByte('\n')
	}
	return sb.String()
}
