package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_CapturesEntries(t *testing.T) {
	logger := NewMockLogger()

	logger.Info("hello", Field{Key: "n", Value: 1})
	logger.Warn("careful")
	logger.Error("boom")

	require.Len(t, logger.Entries, 3)
	assert.Equal(t, "hello", logger.Entries[0].Message)
	assert.Equal(t, Field{Key: "n", Value: 1}, logger.Entries[0].Fields[0])
	assert.Len(t, logger.EntriesByLevel("WARN"), 1)
	assert.Len(t, logger.EntriesByLevel("ERROR"), 1)
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	logger := NewMockLogger()
	cause := errors.New("the cause")

	logger.WithError(cause).Warn("failed")
	logger.WithField("key", "value").WithError(cause).Info("context")

	require.Len(t, logger.Entries, 2)
	assert.Equal(t, cause, logger.Entries[0].Error)
	assert.Equal(t, Field{Key: "key", Value: "value"}, logger.Entries[1].Fields[0])
}

func TestSetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	mock := NewMockLogger()
	SetLogger(mock)
	assert.Same(t, Logger(mock), GetLogger())

	// A nil logger is ignored rather than installed.
	SetLogger(nil)
	assert.Same(t, Logger(mock), GetLogger())
}

func TestNewLogrusAdapter_InvalidLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("nonsense", "text")
	require.NotNil(t, logger)

	// Usable without panicking.
	logger.Info("still works")
	logger.WithField("k", "v").Debug("quiet")
}
