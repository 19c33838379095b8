package portal

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"WARN":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"trace":   log.TraceLevel,
		"":        log.InfoLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range tests {
		require.Equal(t, want, GetLevel(in), in)
	}
}

func TestSetupLoggingToFile(t *testing.T) {
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&log.TextFormatter{})
		log.SetLevel(log.InfoLevel)
	}()

	name := filepath.Join(t.TempDir(), "portal")
	closer := SetupLogging(LoggerSetupParams{
		LogFileName:   name,
		LogLevel:      "debug",
		LogFormatJSON: true,
	})
	log.WithField("post", "/blog/x").Info("rendered")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(name + ".log")
	require.NoError(t, err)
	require.Contains(t, string(b), `"post":"/blog/x"`)
	require.Equal(t, log.DebugLevel, log.GetLevel())
}
