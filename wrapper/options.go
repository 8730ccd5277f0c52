package wrapper

import (
	"strings"

	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
)

// registerOptions hands the core's options to the host, as v1 option
// definitions when the host supports them and as legacy variables
// otherwise. Defaults seed the variable cache.
func (s *State) registerOptions() {
	definer, ok := s.core.(emucore.OptionsDefiner)
	if !ok {
		return
	}

	var opts []emucore.CoreOption
	for _, o := range definer.CoreOptions() {
		if err := validate.Struct(o); err != nil {
			s.log.Warn("Skipping invalid core option", zap.String("key", o.Key), zap.Error(err))
			continue
		}
		opts = append(opts, o)
	}
	if len(opts) == 0 {
		return
	}
	s.options = opts

	for _, o := range opts {
		if choices := o.Choices(); len(choices) > 0 {
			s.variables[s.prefix+o.Key] = choices[0]
		}
	}

	version, _ := fetch[uint32](s.coreEnv, abi.EnvGetCoreOptionsVersion)
	if version >= 1 {
		err := s.setCoreOptions(opts)
		if err == nil {
			return
		}
		s.log.Debug("Core options rejected, falling back to variables", zap.Error(err))
	}
	if err := s.setVariables(opts); err != nil {
		s.log.Warn("Failed to register core options", zap.Error(err))
	}
}

func (s *State) setCoreOptions(opts []emucore.CoreOption) error {
	var pins abi.Pins
	defs := make([]abi.CoreOptionDefinition, len(opts)+1)
	for i, o := range opts {
		d := &defs[i]
		d.Key = pins.CString(s.prefix + o.Key)
		d.Desc = pins.CString(o.Label)
		if o.Description != "" {
			d.Info = pins.CString(o.Description)
		}
		choices := o.Choices()
		if len(choices) >= abi.NumCoreOptionValuesMax {
			s.log.Warn("Truncating core option values",
				zap.String("key", o.Key),
				zap.Int("values", len(choices)),
			)
			choices = choices[:abi.NumCoreOptionValuesMax-1]
		}
		for j, c := range choices {
			d.Values[j].Value = pins.CString(c)
		}
		if len(choices) > 0 {
			d.DefaultValue = d.Values[0].Value
		}
	}
	pins.Pin(&defs[0])
	return send(s.coreEnv, abi.EnvSetCoreOptions, &defs[0], &pins)
}

func (s *State) setVariables(opts []emucore.CoreOption) error {
	var pins abi.Pins
	vars := make([]abi.Variable, len(opts)+1)
	for i, o := range opts {
		vars[i] = abi.Variable{
			Key:   pins.CString(s.prefix + o.Key),
			Value: pins.CString(o.Label + "; " + strings.Join(o.Choices(), "|")),
		}
	}
	pins.Pin(&vars[0])
	return send(s.coreEnv, abi.EnvSetVariables, &vars[0], &pins)
}
