package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogging "github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/domain/shared"
	"github.com/andrescamacho/chainplanner/internal/infrastructure/config"
)

func fixedClock() shared.Clock {
	return shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestZerologLogger_TextFormat(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, "info", "text", false)
	logger.clock = fixedClock()

	// Act
	logger.Log(applogging.LevelInfo, "production plan built", map[string]interface{}{
		"material": "bread",
		"nodes":    6,
	})

	// Assert
	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "2024-03-01T12:00:00Z INF production plan built"), line)
	assert.Contains(t, line, "material=bread nodes=6")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestZerologLogger_JSONFormat(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, "debug", "json", true)
	logger.clock = fixedClock()

	// Act
	logger.Log(applogging.LevelDebug, "request handled", map[string]interface{}{"request": "BuildPlanCommand"})

	// Assert
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "request handled", entry["message"])
	assert.Equal(t, "BuildPlanCommand", entry["request"])
	assert.Equal(t, "2024-03-01T12:00:00Z", entry["time"])
	assert.Contains(t, entry["caller"], "logger_test.go:")
}

func TestZerologLogger_CustomLevelIsAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, "error", "json", false)

	logger.Log("AUDIT", "catalog imported", nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "audit", entry["level"])
	assert.Equal(t, "catalog imported", entry["message"])
}

func TestZerologLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, "warn", "text", false)

	logger.Log(applogging.LevelDebug, "hidden", nil)
	logger.Log(applogging.LevelInfo, "hidden", nil)
	logger.Log(applogging.LevelWarn, "shown", nil)
	logger.Log(applogging.LevelError, "shown", nil)

	assert.Equal(t, 2, strings.Count(buf.String(), "shown"))
	assert.NotContains(t, buf.String(), "hidden")
	assert.False(t, logger.Enabled(applogging.LevelInfo))
	assert.True(t, logger.Enabled(applogging.LevelWarn))
	assert.True(t, logger.Enabled("CUSTOM"))
}

func TestZerologLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	logger := NewZerologLogger(&bytes.Buffer{}, "", "json", false)

	assert.False(t, logger.Enabled(applogging.LevelDebug))
	assert.True(t, logger.Enabled(applogging.LevelInfo))
}

func TestNewFromConfig_File(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "logs", "chainplanner.log")
	cfg := config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path}

	// Act
	logger, closer, err := NewFromConfig(cfg)
	require.NoError(t, err)
	logger.Log(applogging.LevelError, "catalog rejected", nil)
	require.NoError(t, closer.Close())

	// Assert
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "ERR catalog rejected")
}

func TestNewFromConfig_UnsupportedOutput(t *testing.T) {
	_, _, err := NewFromConfig(config.LoggingConfig{Output: "syslog"})
	assert.ErrorContains(t, err, "unsupported log output: syslog")
}
