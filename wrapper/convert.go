package wrapper

import (
	"fmt"
	"unsafe"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

func geometryFromABI(g *abi.GameGeometry) emucore.Geometry {
	return emucore.Geometry{
		BaseWidth:   uint(g.BaseWidth),
		BaseHeight:  uint(g.BaseHeight),
		MaxWidth:    uint(g.MaxWidth),
		MaxHeight:   uint(g.MaxHeight),
		AspectRatio: float64(g.AspectRatio),
	}
}

func geometryToABI(g emucore.Geometry) abi.GameGeometry {
	return abi.GameGeometry{
		BaseWidth:   uint32(g.BaseWidth),
		BaseHeight:  uint32(g.BaseHeight),
		MaxWidth:    uint32(g.MaxWidth),
		MaxHeight:   uint32(g.MaxHeight),
		AspectRatio: float32(g.AspectRatio),
	}
}

func avInfoFromABI(av *abi.SystemAVInfo) emucore.AVInfo {
	return emucore.AVInfo{
		Geometry: geometryFromABI(&av.Geometry),
		Timing: emucore.Timing{
			FPS:        av.Timing.FPS,
			SampleRate: av.Timing.SampleRate,
		},
	}
}

func avInfoToABI(av emucore.AVInfo) abi.SystemAVInfo {
	return abi.SystemAVInfo{
		Geometry: geometryToABI(av.Geometry),
		Timing: abi.SystemTiming{
			FPS:        av.Timing.FPS,
			SampleRate: av.Timing.SampleRate,
		},
	}
}

// validateAVInfo rejects geometry and timing the host cannot use.
func validateAVInfo(av emucore.AVInfo) error {
	if err := validate.Struct(av); err != nil {
		return fmt.Errorf("invalid AV info: %v: %w", err, emucore.ErrCommandRejected)
	}
	return nil
}

func inputDescriptorsFromABI(v *abi.InputDescriptor) []emucore.InputDescriptor {
	raw := abi.Terminated(v, func(d *abi.InputDescriptor) bool { return d.Description == nil })
	out := make([]emucore.InputDescriptor, 0, len(raw))
	for _, d := range raw {
		out = append(out, emucore.InputDescriptor{
			Port:        uint(d.Port),
			Device:      emucore.Device(d.Device),
			Index:       uint(d.Index),
			ID:          uint(d.ID),
			Description: abi.GoString(d.Description),
		})
	}
	return out
}

// inputDescriptorsToABI builds a terminated descriptor array. Strings are
// pinned in pins.
func inputDescriptorsToABI(descs []emucore.InputDescriptor, pins *abi.Pins) []abi.InputDescriptor {
	out := make([]abi.InputDescriptor, len(descs)+1)
	for i, d := range descs {
		out[i] = abi.InputDescriptor{
			Port:        uint32(d.Port),
			Device:      uint32(d.Device),
			Index:       uint32(d.Index),
			ID:          uint32(d.ID),
			Description: pins.CString(d.Description),
		}
	}
	pins.Pin(&out[0])
	return out
}

func controllersFromABI(v *abi.ControllerInfo) [][]emucore.ControllerDescription {
	raw := abi.Terminated(v, func(c *abi.ControllerInfo) bool { return c.Types == nil && c.NumTypes == 0 })
	out := make([][]emucore.ControllerDescription, 0, len(raw))
	for _, port := range raw {
		var types []emucore.ControllerDescription
		if port.Types != nil {
			for _, t := range unsafe.Slice(port.Types, port.NumTypes) {
				types = append(types, emucore.ControllerDescription{
					Description: abi.GoString(t.Desc),
					Device:      emucore.Device(t.ID),
				})
			}
		}
		out = append(out, types)
	}
	return out
}

// controllersToABI builds a terminated per-port controller array.
func controllersToABI(ports [][]emucore.ControllerDescription, pins *abi.Pins) []abi.ControllerInfo {
	out := make([]abi.ControllerInfo, len(ports)+1)
	for i, types := range ports {
		if len(types) == 0 {
			// An empty port would read as the terminator.
			types = []emucore.ControllerDescription{{Description: "None", Device: emucore.DeviceNone}}
		}
		descs := make([]abi.ControllerDescription, len(types))
		for j, t := range types {
			descs[j] = abi.ControllerDescription{
				Desc: pins.CString(t.Description),
				ID:   uint32(t.Device),
			}
		}
		pins.Pin(&descs[0])
		out[i] = abi.ControllerInfo{Types: &descs[0], NumTypes: uint32(len(descs))}
	}
	pins.Pin(&out[0])
	return out
}

func messageExtToABI(m emucore.MessageExt, pins *abi.Pins) abi.MessageExt {
	return abi.MessageExt{
		Msg:      pins.CString(m.Msg),
		Duration: uint32(m.Duration.Milliseconds()),
		Priority: uint32(m.Priority),
		Level:    int32(m.Level),
		Target:   int32(m.Target),
		Type:     int32(m.Type),
		Progress: m.Progress,
	}
}
