package wrapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	emucore "github.com/user-none/eblitcore/api"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, zapcore.InfoLevel, cfg.Level())
	assert.False(t, cfg.LogStderr)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvLogLevel, " DEBUG ")
	t.Setenv(EnvLogStderr, "true")
	t.Setenv(EnvMaxContentSize, "2 MiB")
	t.Setenv(EnvGameDB, "/data/Sega - Mega Drive - Genesis.rdb")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
	assert.True(t, cfg.LogStderr)
	assert.Equal(t, uint64(2<<20), cfg.MaxContentSize)
	assert.Equal(t, "/data/Sega - Mega Drive - Genesis.rdb", cfg.GameDB)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"level", EnvLogLevel, "loud"},
		{"stderr", EnvLogStderr, "sometimes"},
		{"size", EnvMaxContentSize, "lots"},
		{"zero size", EnvMaxContentSize, "0"},
		{"size overflow", EnvMaxContentSize, "10 EB"},
		{"database", EnvGameDB, "games.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestContentLimit(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(cfg.MaxContentSize), cfg.contentLimit())

	cfg.MaxContentSize = math.MaxUint64
	assert.Equal(t, int64(math.MaxInt64), cfg.contentLimit())
	assert.Error(t, cfg.Validate())
}

func TestInvalidConfigFallsBack(t *testing.T) {
	t.Setenv(EnvLogLevel, "loud")
	w := New(func() emucore.Core { return newBasicCore() }, WithBridge(&fakeBridge{}))
	t.Cleanup(w.Deinit)

	w.Init()
	require.Equal(t, Initialized, w.Phase())
	assert.Equal(t, DefaultConfig(), w.state.cfg)
}
