// Package abi mirrors the subset of the libretro C ABI the wrapper speaks.
//
// Values and struct layouts match libretro.h (API version 1). Only what the
// wrapper dispatches is declared here; anything else is treated as an unknown
// environment command.
package abi

// APIVersion is the value retro_api_version must return.
const APIVersion = 1

// Environment command flag bits.
const (
	EnvExperimental = 0x10000
	EnvPrivate      = 0x20000
)

// Environment command codes.
const (
	EnvSetRotation                = 1
	EnvGetOverscan                = 2
	EnvGetCanDupe                 = 3
	EnvSetMessage                 = 6
	EnvShutdown                   = 7
	EnvSetPerformanceLevel        = 8
	EnvGetSystemDirectory         = 9
	EnvSetPixelFormat             = 10
	EnvSetInputDescriptors        = 11
	EnvSetKeyboardCallback        = 12
	EnvGetVariable                = 15
	EnvSetVariables               = 16
	EnvGetVariableUpdate          = 17
	EnvSetSupportNoGame           = 18
	EnvGetLibretroPath            = 19
	EnvSetFrameTimeCallback       = 21
	EnvSetAudioCallback           = 22
	EnvGetRumbleInterface         = 23
	EnvGetInputDeviceCapabilities = 24
	EnvGetLogInterface            = 27
	EnvGetPerfInterface           = 28
	EnvGetCoreAssetsDirectory     = 30
	EnvGetSaveDirectory           = 31
	EnvSetSystemAVInfo            = 32
	EnvSetControllerInfo          = 35
	EnvSetGeometry                = 37
	EnvGetUsername                = 38
	EnvGetLanguage                = 39
	EnvSetSupportAchievements     = 42 | EnvExperimental
	EnvSetSerializationQuirks     = 44
	EnvGetAudioVideoEnable        = 47 | EnvExperimental
	EnvGetFastForwarding          = 49 | EnvExperimental
	EnvGetTargetRefreshRate       = 50 | EnvExperimental
	EnvGetInputBitmasks           = 51 | EnvExperimental
	EnvGetCoreOptionsVersion      = 52
	EnvSetCoreOptions             = 53
	EnvSetCoreOptionsDisplay      = 55
	EnvGetMessageInterfaceVersion = 59
	EnvSetMessageExt              = 60
	EnvGetInputMaxUsers           = 61
	EnvSetMinimumAudioLatency     = 63
	EnvSetVariable                = 70
	EnvGetThrottleState           = 71 | EnvExperimental
	EnvGetSavestateContext        = 72 | EnvExperimental
)

// Pixel formats (enum retro_pixel_format).
const (
	PixelFormat0RGB1555 = 0
	PixelFormatXRGB8888 = 1
	PixelFormatRGB565   = 2
)

// Input device types.
const (
	DeviceNone     = 0
	DeviceJoypad   = 1
	DeviceMouse    = 2
	DeviceKeyboard = 3
	DeviceLightgun = 4
	DeviceAnalog   = 5
	DevicePointer  = 6

	DeviceTypeShift = 8
	DeviceMask      = (1 << DeviceTypeShift) - 1
)

// Joypad button IDs.
const (
	JoypadB      = 0
	JoypadY      = 1
	JoypadSelect = 2
	JoypadStart  = 3
	JoypadUp     = 4
	JoypadDown   = 5
	JoypadLeft   = 6
	JoypadRight  = 7
	JoypadA      = 8
	JoypadX      = 9
	JoypadL      = 10
	JoypadR      = 11
	JoypadL2     = 12
	JoypadR2     = 13
	JoypadL3     = 14
	JoypadR3     = 15

	// JoypadMask requests all buttons as a bitmask when the host
	// supports GET_INPUT_BITMASKS.
	JoypadMask = 256
)

// Memory region IDs for retro_get_memory_data/size.
const (
	MemorySaveRAM   = 0
	MemoryRTC       = 1
	MemorySystemRAM = 2
	MemoryVideoRAM  = 3
)

// Regions returned by retro_get_region.
const (
	RegionNTSC = 0
	RegionPAL  = 1
)

// Log levels (enum retro_log_level).
const (
	LogDebug = 0
	LogInfo  = 1
	LogWarn  = 2
	LogError = 3
)

// Rumble effects.
const (
	RumbleStrong = 0
	RumbleWeak   = 1
)

// Serialization quirk bits.
const (
	QuirkIncomplete        = 1 << 0
	QuirkMustInitialize    = 1 << 1
	QuirkCoreVariableSize  = 1 << 2
	QuirkFrontVariableSize = 1 << 3
	QuirkSingleSession     = 1 << 4
	QuirkEndianDependent   = 1 << 5
	QuirkPlatformDependent = 1 << 6
)

// GET_AUDIO_VIDEO_ENABLE bits.
const (
	AVEnableVideo            = 1 << 0
	AVEnableAudio            = 1 << 1
	AVEnableFastSavestates   = 1 << 2
	AVEnableHardDisableAudio = 1 << 3
)

// Throttle modes reported by GET_THROTTLE_STATE.
const (
	ThrottleNone          = 0
	ThrottleFrameStepping = 1
	ThrottleFastForward   = 2
	ThrottleSlowMotion    = 3
	ThrottleRewinding     = 4
	ThrottleVsync         = 5
	ThrottleUnblocked     = 6
)

// Save state contexts reported by GET_SAVESTATE_CONTEXT.
const (
	SavestateContextNormal               = 0
	SavestateContextRunaheadSameInstance = 1
	SavestateContextRunaheadSameBinary   = 2
	SavestateContextRollbackNetplay      = 3
)

// Message targets and types for SET_MESSAGE_EXT.
const (
	MessageTargetAll = 0
	MessageTargetOSD = 1
	MessageTargetLog = 2

	MessageTypeNotification    = 0
	MessageTypeNotificationAlt = 1
	MessageTypeStatus          = 2
	MessageTypeProgress        = 3
)

// NumCoreOptionValuesMax is the fixed size of the values array in a v1
// core option definition.
const NumCoreOptionValuesMax = 128
