package wrapper

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zapcore"

	"github.com/user-none/eblitcore/romloader"
)

// Environment variables read by LoadConfig.
const (
	EnvLogLevel       = "RETRO_WRAPPER_LOG_LEVEL"
	EnvLogStderr      = "RETRO_WRAPPER_LOG_STDERR"
	EnvMaxContentSize = "RETRO_WRAPPER_MAX_CONTENT_SIZE"
	EnvGameDB         = "RETRO_WRAPPER_GAMEDB"
)

// validate is shared by the config, system info, option and AV info checks.
var validate = newValidator()

// optionKey matches what hosts accept in option keys and key prefixes.
var optionKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("optionkey", func(fl validator.FieldLevel) bool {
		return optionKey.MatchString(fl.Field().String())
	})
	return v
}

// Config holds wrapper settings. The host has no way to pass settings to a
// core before init, so they come from the process environment.
type Config struct {
	// LogLevel is the minimum level logged: debug, info, warn or error.
	LogLevel string `validate:"oneof=debug info warn error"`

	// LogStderr also writes to stderr once the host log is in use.
	LogStderr bool

	// MaxContentSize limits content the wrapper reads from disk itself.
	MaxContentSize uint64 `validate:"gt=0,lte=9223372036854775807"`

	// GameDB overrides the RDB looked up in the system directory.
	GameDB string `validate:"omitempty,endswith=.rdb"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:       "info",
		MaxContentSize: romloader.DefaultMaxSize,
	}
}

// LoadConfig reads the configuration from the environment on top of the
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvLogStderr); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogStderr, err)
		}
		cfg.LogStderr = b
	}
	if v, ok := os.LookupEnv(EnvMaxContentSize); ok {
		n, err := humanize.ParseBytes(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvMaxContentSize, err)
		}
		cfg.MaxContentSize = n
	}
	if v, ok := os.LookupEnv(EnvGameDB); ok {
		cfg.GameDB = v
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// contentLimit returns MaxContentSize as a romloader limit.
func (c Config) contentLimit() int64 {
	return int64(min(c.MaxContentSize, math.MaxInt64))
}

// Level returns LogLevel as a zap level.
func (c Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
