package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/config"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/logging"
)

func TestNew_ConfiguresLevelAndFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "warn", Format: "json", Output: "stdout"}

	logger, closer, err := logging.New(cfg)

	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, logger.Formatter)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := logging.New(config.LoggingConfig{Level: "loud", Format: "text", Output: "stderr"})

	assert.ErrorContains(t, err, "invalid log level")
}

func TestNew_WritesToFile(t *testing.T) {
	for _, rotate := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "mbesplan.log")
		cfg := config.LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "file",
			FilePath: path,
			Rotation: config.RotationConfig{Enabled: rotate, MaxSize: 1},
		}

		logger, closer, err := logging.New(cfg)
		require.NoError(t, err)
		logger.Info("plan stored")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "plan stored")
	}
}

func TestAdapter_MapsLevelsAndFields(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetLevel(log.DebugLevel)
	adapter := logging.NewAdapter(logger, log.Fields{"component": "test"})

	// Act
	adapter.Log(common.LevelWarn, "request rejected", map[string]interface{}{"kind": "GeometryError"})

	// Assert
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "request rejected", entry["msg"])
	assert.Equal(t, "GeometryError", entry["kind"])
	assert.Equal(t, "test", entry["component"])
}
