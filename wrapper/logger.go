package wrapper

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user-none/eblitcore/abi"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the wrapper's logger. It writes to stderr until the host
// hands out its log interface, and forwards to the host afterwards.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = zap.New(newStderrCore(zapcore.InfoLevel))
	}
	return logger
}

// SetLogger replaces the wrapper's logger. The wrapper replaces it again
// when the host provides a log interface.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// newStderrCore writes "[libretro LEVEL] message" lines to stderr.
func newStderrCore(level zapcore.LevelEnabler) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          "logger",
		EncodeLevel:      bracketLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level)
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[libretro " + l.CapitalString() + "]")
}

// hostCore is a zapcore.Core that hands formatted entries to the host's
// retro_log_printf_t. The host adds its own level prefix.
type hostCore struct {
	zapcore.LevelEnabler
	enc   zapcore.Encoder
	print func(level int, msg string)
}

func newHostCore(level zapcore.LevelEnabler, print func(level int, msg string)) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		NameKey:          "logger",
		EncodeDuration:   zapcore.StringDurationEncoder,
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
	}
	return &hostCore{
		LevelEnabler: level,
		enc:          zapcore.NewConsoleEncoder(cfg),
		print:        print,
	}
}

func (c *hostCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &hostCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		print:        c.print,
	}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

func (c *hostCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *hostCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	c.print(hostLevel(ent.Level), buf.String())
	buf.Free()
	return nil
}

func (c *hostCore) Sync() error {
	return nil
}

// hostLevel maps a zap level to enum retro_log_level.
func hostLevel(l zapcore.Level) int {
	switch {
	case l <= zapcore.DebugLevel:
		return abi.LogDebug
	case l == zapcore.InfoLevel:
		return abi.LogInfo
	case l == zapcore.WarnLevel:
		return abi.LogWarn
	default:
		return abi.LogError
	}
}

// newLogger builds the logger for a state: the host's log interface when
// fn is set, stderr otherwise, or both when cfg asks for it.
func newLogger(cfg Config, bridge Bridge, fn uintptr) *zap.Logger {
	level := zap.NewAtomicLevelAt(cfg.Level())
	if fn == 0 {
		return zap.New(newStderrCore(level))
	}
	core := newHostCore(level, func(l int, msg string) {
		bridge.LogPrintf(fn, l, msg)
	})
	if cfg.LogStderr {
		core = zapcore.NewTee(core, newStderrCore(level))
	}
	return zap.New(core)
}
