package providers

import (
	"bytes"
	"os"
	"path/filepath"
	"reviewreminder/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("DELETE"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	// Should be able to log without error
	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Infof(TypeSession, "session message")

	for _, name := range []string{"app", "get", "post", "session", "reachability"} {
		_, err := os.Stat(filepath.Join(dir, name+".log"))
		assert.NoError(t, err, name)
	}
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "loud", Mode: 0644, Dir: t.TempDir()},
	}
	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestConsoleLogProvider_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogProvider("warn", &buf)

	logger.Infof(TypeSession, "hidden")
	logger.Warnf(TypeReachability, "shown %d", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
