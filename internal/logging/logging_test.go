package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger := New(NewLevel(false))
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	_ = logger.Sync()
}

func TestNewWithWriters_SplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := NewWithWriters(NewLevel(false), &stdout, &stderr)

	logger.Debug("hidden")
	logger.Info("setting env", zap.String("key", "a_b"))
	logger.Warn("careful")
	logger.Error("boom")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "INFO")
	assert.Contains(t, stdout.String(), "setting env")
	assert.Contains(t, stdout.String(), `"key": "a_b"`)
	assert.Contains(t, stdout.String(), "careful")
	assert.NotContains(t, stdout.String(), "boom")

	assert.Contains(t, stderr.String(), "ERROR")
	assert.Contains(t, stderr.String(), "boom")
	assert.NotContains(t, stderr.String(), "setting env")
}

func TestNewWithWriters_LevelCanBeRaisedLater(t *testing.T) {
	var stdout, stderr bytes.Buffer
	level := NewLevel(false)
	logger := NewWithWriters(level, &stdout, &stderr)

	logger.Debug("before")
	level.SetLevel(zapcore.DebugLevel)
	logger.Debug("after")

	assert.NotContains(t, stdout.String(), "before")
	assert.Contains(t, stdout.String(), "DEBUG")
	assert.Contains(t, stdout.String(), "after")
	assert.Empty(t, stderr.String())
}
