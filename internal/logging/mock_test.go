package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerCapturesEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("fetched", Field{Key: FieldRows, Value: 12})
	mock.Warn("stale")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "INFO", mock.Entries[0].Level)
	assert.Equal(t, "fetched", mock.Entries[0].Message)
	assert.Equal(t, FieldRows, mock.Entries[0].Fields[0].Key)
	assert.True(t, mock.HasMessage("stale"))
	assert.False(t, mock.HasMessage("missing"))
}

func TestMockLoggerWithErrorAndFields(t *testing.T) {
	mock := &MockLogger{}
	err := errors.New("boom")

	mock.WithError(err).WithField(FieldStatus, 500).Error("fetch failed")

	require.Len(t, mock.Entries, 1)
	assert.Equal(t, err, mock.Entries[0].Error)
	assert.Equal(t, FieldStatus, mock.Entries[0].Fields[0].Key)
}

func TestMockLoggerReset(t *testing.T) {
	mock := &MockLogger{}
	mock.Info("one")
	mock.Reset()
	assert.Empty(t, mock.Entries)
}
