package emucore

import (
	"strconv"
	"strings"

	"github.com/user-none/eblitcore/abi"
	"github.com/user-none/eblitcore/rdb"
)

// SystemInfo describes the core to the host. It is reported by
// retro_get_system_info and must not change for the life of the module.
type SystemInfo struct {
	LibraryName    string   `validate:"required"`
	LibraryVersion string   `validate:"required"`
	Extensions     []string `validate:"dive,required,excludesall=0x7C"`
	NeedFullpath   bool
	BlockExtract   bool

	// OptionPrefix is prepended to every option key. Defaults to the
	// lower-cased library name followed by an underscore.
	OptionPrefix string `validate:"omitempty,optionkey"`

	// DatabaseName is the base name of the libretro RDB describing the
	// system's content, e.g. "Sega - Master System - Mark III".
	DatabaseName string
}

// ValidExtensions returns the extensions in the host's "a|b|c" form.
func (s SystemInfo) ValidExtensions() string {
	return strings.Join(s.Extensions, "|")
}

// Prefix returns OptionPrefix or its default.
func (s SystemInfo) Prefix() string {
	if s.OptionPrefix != "" {
		return s.OptionPrefix
	}
	name := strings.ToLower(strings.ReplaceAll(s.LibraryName, " ", "_"))
	return name + "_"
}

// Geometry is the video geometry of the loaded content.
type Geometry struct {
	BaseWidth   uint    `validate:"gt=0"`
	BaseHeight  uint    `validate:"gt=0"`
	MaxWidth    uint    `validate:"gtefield=BaseWidth"`
	MaxHeight   uint    `validate:"gtefield=BaseHeight"`
	AspectRatio float64 `validate:"gte=0"` // 0 means width/height
}

// Timing is the frame and audio rate of the loaded content.
type Timing struct {
	FPS        float64 `validate:"gt=0"`
	SampleRate float64 `validate:"gt=0"`
}

// AVInfo is reported once per loaded game and changed only through
// Environment.SetSystemAVInfo or Environment.SetGeometry.
type AVInfo struct {
	Geometry Geometry
	Timing   Timing
}

// GameInfo is loaded content handed to Core.LoadGame.
type GameInfo struct {
	// Path is the content path on disk. Empty for data-only content.
	Path string

	// Data is a private copy of the content. Nil when the core needs the
	// full path and the wrapper did not read it.
	Data []byte

	// Meta is the host-supplied meta string, usually empty.
	Meta string

	// Name is the database display name, or the file base name.
	Name string

	// CRC32 is the IEEE checksum of Data, 0 when Data is nil.
	CRC32 uint32

	// Entry is the game database entry matching CRC32, if any.
	Entry *rdb.Game
}

// Device is an input device type, optionally with a subclass in the upper
// bits.
type Device uint

const (
	DeviceNone     Device = abi.DeviceNone
	DeviceJoypad   Device = abi.DeviceJoypad
	DeviceMouse    Device = abi.DeviceMouse
	DeviceKeyboard Device = abi.DeviceKeyboard
	DeviceLightgun Device = abi.DeviceLightgun
	DeviceAnalog   Device = abi.DeviceAnalog
	DevicePointer  Device = abi.DevicePointer
)

// Base strips the subclass.
func (d Device) Base() Device {
	return d & abi.DeviceMask
}

// Subclass derives a device subclass ID from a base device, as the host
// expects in SET_CONTROLLER_INFO.
func Subclass(base Device, id uint) Device {
	return Device((id+1)<<abi.DeviceTypeShift) | base
}

// CoreOptionType identifies the kind of core option.
type CoreOptionType int

const (
	CoreOptionBool CoreOptionType = iota
	CoreOptionSelect
	CoreOptionRange
)

// CoreOption describes a configurable core setting.
type CoreOption struct {
	Key         string `validate:"required,optionkey"`
	Label       string `validate:"required"`
	Description string
	Type        CoreOptionType
	Default     string
	Values      []string // Options for Select type
	Min         int      // Minimum for Range type
	Max         int      // Maximum for Range type
	Step        int      // Step size for Range type
}

// Choices returns the option's values with the default first, which is
// how the host identifies the default in the legacy variables format.
func (o CoreOption) Choices() []string {
	var values []string
	switch o.Type {
	case CoreOptionBool:
		values = []string{"false", "true"}
	case CoreOptionRange:
		step := o.Step
		if step <= 0 {
			step = 1
		}
		for v := o.Min; v <= o.Max; v += step {
			values = append(values, strconv.Itoa(v))
		}
	default:
		values = o.Values
	}
	if o.Default == "" {
		return values
	}
	return reorderDefault(values, o.Default)
}

// reorderDefault moves the default value to the front of a values slice.
func reorderDefault(values []string, def string) []string {
	result := make([]string, 0, len(values)+1)
	result = append(result, def)
	for _, v := range values {
		if v != def {
			result = append(result, v)
		}
	}
	return result
}

// DisplayAspectRatio returns the display aspect ratio of a width x height
// image with the given pixel aspect ratio.
func DisplayAspectRatio(width, height int, par float64) float64 {
	if height == 0 {
		return 0
	}
	return (float64(width) / float64(height)) * par
}
