package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestLog_SafeBeforeInit verifies the package-level logger works as a
// no-op before any Init call.
func TestLog_SafeBeforeInit(t *testing.T) {
	require.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Debug("debug before init")
		Info("info before init")
		Warn("warn before init")
		Error("error before init")
		Sync()
	})
}

// TestParseLevel verifies level name mapping with the info default.
func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

// TestInitWithFileConfig_WritesFile verifies file-only logging lands in
// the rotating file at debug level regardless of the console level.
func TestInitWithFileConfig_WritesFile(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	path := filepath.Join(t.TempDir(), "foilmesh.log")
	InitWithFileConfig("warn", DefaultFileConfig(path), false)

	Debug("mesh sizing chosen", zap.Float64("lc", 0.1))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "mesh sizing chosen")
	assert.Contains(t, content, "DEBUG")
}

// TestDefaultFileConfig pins the rotation defaults.
func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/var/log/foilmesh.log")
	assert.Equal(t, "/var/log/foilmesh.log", cfg.Path)
	assert.Equal(t, 20, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAgeDays)
}

// TestInit_ConsoleOnly verifies an empty file path configures a working
// console logger.
func TestInit_ConsoleOnly(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	Init("debug", "")
	require.NotNil(t, Log)
	assert.NotPanics(t, func() { Info("console logger ready") })
}
