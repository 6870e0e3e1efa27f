package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"chogscraper/pkg/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *zerologLogger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zlog := zerolog.New(buf).With().Timestamp().Logger()
	return &zerologLogger{logger: &zlog, fields: make(map[string]interface{})}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{name: "info level", cfg: &config.LoggingConfig{Level: "info"}},
		{name: "debug level", cfg: &config.LoggingConfig{Level: "debug"}},
		{name: "invalid level", cfg: &config.LoggingConfig{Level: "invalid"}, wantErr: true},
		{name: "file output", cfg: &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "run.log")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
			if tt.cfg.File != "" {
				assert.FileExists(t, tt.cfg.File)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"verbose", zerolog.InfoLevel, true},
		{"", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestFieldChaining(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	log.WithField("url", "https://img.example/a.jpg").
		WithFields(map[string]interface{}{"attempt": 1, "skipped": false}).
		Info("chained fields")

	out := buf.String()
	assert.Contains(t, out, "chained fields")
	assert.Contains(t, out, `"url":"https://img.example/a.jpg"`)
	assert.Contains(t, out, `"attempt":1`)
	assert.Contains(t, out, `"skipped":false`)
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	_ = log.WithField("child", "only")
	log.Info("parent")

	assert.NotContains(t, buf.String(), "child")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	assert.Same(t, log, log.WithError(nil))

	log.WithError(errors.New("connection reset")).Error("download failed")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestStructuredFieldTypes(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	log.InfoWithFields("typed", map[string]interface{}{
		"count":    int64(3),
		"ratio":    0.5,
		"when":     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"delay":    500 * time.Millisecond,
		"tags":     []string{"#chog", "#monad"},
		"fallback": struct{ N int }{N: 1},
	})

	out := buf.String()
	assert.Contains(t, out, `"count":3`)
	assert.Contains(t, out, `"tags":["#chog","#monad"]`)
}

func TestLogDownload(t *testing.T) {
	log := NewTestLogger()

	LogDownload(log, "u1", "p1", "downloaded", nil)
	LogDownload(log, "u2", "p2", "skipped", nil)
	LogDownload(log, "u3", "p3", "failed", errors.New("404"))

	msgs := log.GetMessages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "INFO", msgs[0].Level)
	assert.Equal(t, "Download skipped, file exists", msgs[1].Message)
	assert.Equal(t, "ERROR", msgs[2].Level)
	assert.Equal(t, "404", msgs[2].Error)
	assert.Equal(t, "u3", msgs[2].Fields["url"])
	assert.Equal(t, "skipped", msgs[1].Fields["outcome"])
}

func TestTestLoggerSharesRecorder(t *testing.T) {
	log := NewTestLogger()
	child := log.WithField("component", "collector")

	child.Warn("slow search")
	log.Info("root")

	assert.True(t, log.HasMessage("slow search"))
	assert.Len(t, log.GetMessagesByLevel("WARN"), 1)
	assert.Equal(t, "collector", log.GetMessages()[0].Fields["component"])
	assert.False(t, log.HasError())

	log.Clear()
	assert.Empty(t, log.GetMessages())
}

func TestGlobalLogger(t *testing.T) {
	require.NoError(t, Initialize(&config.LoggingConfig{Level: "debug"}))
	assert.NotNil(t, GetLogger())

	// must not panic
	log := GetLogger()
	log.Info("info message")
	log.WithField("key", "value").Debug("with field")
	log.WithError(errors.New("boom")).Warn("with error")
}
