package wrapper

import (
	"errors"
	"unsafe"

	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

// environment is the emucore.Environment handed to the core. Each method
// builds the command payload, pins what C may read during the call and
// goes through the dispatcher.
type environment struct {
	s *State
}

var _ emucore.Environment = (*environment)(nil)

func (e *environment) Logger() *zap.Logger {
	return e.s.log
}

func (e *environment) Dispatch(cmd uint32, data unsafe.Pointer) bool {
	return e.s.Dispatch(cmd, data)
}

// send dispatches a payload and unpins it afterwards.
func send[T any](e *environment, code uint32, v *T, pins *abi.Pins) error {
	if pins != nil {
		defer pins.Unpin()
	}
	return e.s.dispatch(code, unsafe.Pointer(v))
}

// fetch reads a T from the host.
func fetch[T any](e *environment, code uint32) (T, bool) {
	var v T
	if err := e.s.dispatch(code, unsafe.Pointer(&v)); err != nil {
		e.logFailure(code, err)
		return v, false
	}
	return v, true
}

func (e *environment) logFailure(code uint32, err error) {
	if errors.Is(err, emucore.ErrCommandRejected) || errors.Is(err, emucore.ErrUnknownCommand) {
		return
	}
	e.s.log.Debug("Environment query failed", zap.Uint32("cmd", code), zap.Error(err))
}

func (e *environment) queryString(code uint32) (string, bool) {
	p, ok := fetch[*byte](e, code)
	if !ok || p == nil {
		return "", false
	}
	return abi.GoString(p), true
}

func (e *environment) SetRotation(quarterTurns uint) error {
	v := uint32(quarterTurns)
	return send(e, abi.EnvSetRotation, &v, nil)
}

func (e *environment) Overscan() (bool, bool) {
	return fetch[bool](e, abi.EnvGetOverscan)
}

func (e *environment) CanDupe() bool {
	return e.s.canDupe
}

func (e *environment) SetMessage(msg string, frames uint) error {
	var pins abi.Pins
	v := abi.Message{Msg: pins.CString(msg), Frames: uint32(frames)}
	return send(e, abi.EnvSetMessage, &v, &pins)
}

func (e *environment) SetMessageExt(msg emucore.MessageExt) error {
	var pins abi.Pins
	v := messageExtToABI(msg, &pins)
	return send(e, abi.EnvSetMessageExt, &v, &pins)
}

func (e *environment) MessageInterfaceVersion() (uint, bool) {
	v, ok := fetch[uint32](e, abi.EnvGetMessageInterfaceVersion)
	return uint(v), ok
}

func (e *environment) Shutdown() error {
	return e.s.dispatch(abi.EnvShutdown, nil)
}

func (e *environment) SetPerformanceLevel(level uint) error {
	v := uint32(level)
	return send(e, abi.EnvSetPerformanceLevel, &v, nil)
}

func (e *environment) SystemDirectory() (string, bool) {
	return e.queryString(abi.EnvGetSystemDirectory)
}

func (e *environment) CoreAssetsDirectory() (string, bool) {
	return e.queryString(abi.EnvGetCoreAssetsDirectory)
}

func (e *environment) SaveDirectory() (string, bool) {
	return e.queryString(abi.EnvGetSaveDirectory)
}

func (e *environment) LibretroPath() (string, bool) {
	return e.queryString(abi.EnvGetLibretroPath)
}

func (e *environment) Username() (string, bool) {
	return e.queryString(abi.EnvGetUsername)
}

func (e *environment) Language() (uint, bool) {
	v, ok := fetch[uint32](e, abi.EnvGetLanguage)
	return uint(v), ok
}

func (e *environment) SetPixelFormat(format emucore.PixelFormat) error {
	v := int32(format)
	return send(e, abi.EnvSetPixelFormat, &v, nil)
}

func (e *environment) SetInputDescriptors(descs []emucore.InputDescriptor) error {
	var pins abi.Pins
	v := inputDescriptorsToABI(descs, &pins)
	return send(e, abi.EnvSetInputDescriptors, &v[0], &pins)
}

func (e *environment) SetControllerInfo(ports [][]emucore.ControllerDescription) error {
	var pins abi.Pins
	v := controllersToABI(ports, &pins)
	return send(e, abi.EnvSetControllerInfo, &v[0], &pins)
}

func (e *environment) InputDeviceCapabilities() (uint64, bool) {
	return fetch[uint64](e, abi.EnvGetInputDeviceCapabilities)
}

func (e *environment) InputMaxUsers() (uint, bool) {
	v, ok := fetch[uint32](e, abi.EnvGetInputMaxUsers)
	return uint(v), ok
}

func (e *environment) SetSupportNoGame(supported bool) error {
	return send(e, abi.EnvSetSupportNoGame, &supported, nil)
}

func (e *environment) SetSupportAchievements(supported bool) error {
	return send(e, abi.EnvSetSupportAchievements, &supported, nil)
}

// SetSerializationQuirks returns the quirks after the host added its own.
func (e *environment) SetSerializationQuirks(quirks uint64) (uint64, error) {
	if err := send(e, abi.EnvSetSerializationQuirks, &quirks, nil); err != nil {
		return 0, err
	}
	return quirks, nil
}

func (e *environment) SetMinimumAudioLatency(ms uint) error {
	v := uint32(ms)
	return send(e, abi.EnvSetMinimumAudioLatency, &v, nil)
}

// Variable asks the host for an option value and falls back to the last
// known value, which starts out as the option's default.
func (e *environment) Variable(key string) (string, bool) {
	full := e.s.prefix + key
	var pins abi.Pins
	v := abi.Variable{Key: pins.CString(full)}
	err := send(e, abi.EnvGetVariable, &v, &pins)
	if err == nil && v.Value != nil {
		return abi.GoString(v.Value), true
	}
	value, ok := e.s.variables[full]
	return value, ok
}

func (e *environment) VariablesUpdated() bool {
	updated, ok := fetch[bool](e, abi.EnvGetVariableUpdate)
	return ok && updated
}

func (e *environment) SetVariable(key, value string) error {
	var pins abi.Pins
	v := abi.Variable{
		Key:   pins.CString(e.s.prefix + key),
		Value: pins.CString(value),
	}
	return send(e, abi.EnvSetVariable, &v, &pins)
}

func (e *environment) SetOptionVisible(key string, visible bool) error {
	var pins abi.Pins
	v := abi.CoreOptionDisplay{Key: pins.CString(e.s.prefix + key), Visible: visible}
	return send(e, abi.EnvSetCoreOptionsDisplay, &v, &pins)
}

func (e *environment) SetSystemAVInfo(av emucore.AVInfo) error {
	v := avInfoToABI(av)
	return send(e, abi.EnvSetSystemAVInfo, &v, nil)
}

func (e *environment) SetGeometry(g emucore.Geometry) error {
	v := geometryToABI(g)
	return send(e, abi.EnvSetGeometry, &v, nil)
}

func (e *environment) AudioVideoEnable() (emucore.AVEnable, bool) {
	v, ok := fetch[int32](e, abi.EnvGetAudioVideoEnable)
	return emucore.AVEnable(v), ok
}

func (e *environment) FastForwarding() bool {
	v, ok := fetch[bool](e, abi.EnvGetFastForwarding)
	return ok && v
}

func (e *environment) TargetRefreshRate() (float64, bool) {
	v, ok := fetch[float32](e, abi.EnvGetTargetRefreshRate)
	return float64(v), ok
}

func (e *environment) ThrottleState() (emucore.ThrottleState, bool) {
	v, ok := fetch[abi.ThrottleState](e, abi.EnvGetThrottleState)
	return emucore.ThrottleState{Mode: uint(v.Mode), Rate: float64(v.Rate)}, ok
}

func (e *environment) SavestateContext() (emucore.SavestateContext, bool) {
	v, ok := fetch[int32](e, abi.EnvGetSavestateContext)
	return emucore.SavestateContext(v), ok
}

func (e *environment) Rumble(port uint, effect emucore.RumbleEffect, strength uint16) bool {
	if e.s.rumbleFn == 0 {
		if _, ok := fetch[abi.RumbleInterface](e, abi.EnvGetRumbleInterface); !ok {
			return false
		}
		if e.s.rumbleFn == 0 {
			return false
		}
	}
	return e.s.bridge.SetRumbleState(e.s.rumbleFn, port, uint(effect), strength)
}

func (e *environment) TimeUsec() int64 {
	if !e.s.perf.acquire(e) || e.s.perf.cb.GetTimeUsec == 0 {
		return 0
	}
	return e.s.bridge.PerfTimeUsec(e.s.perf.cb.GetTimeUsec)
}

func (e *environment) PerfStart(name string) {
	e.s.perf.start(e, e.s.bridge, name)
}

func (e *environment) PerfStop(name string) {
	e.s.perf.stop(e.s.bridge, name)
}
