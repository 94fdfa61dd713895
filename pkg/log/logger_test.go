package log

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(LevelInfo, &buf)

	logger := provider.GetLoggerWithName("DataTransformation")
	logger.Debug("hidden")
	logger.Info("Read train and test data completed", SamplesKey, 1000, OperationKey, OperationLoad)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "Read train and test data completed", entries[0]["message"])
	assert.Equal(t, "DataTransformation", entries[0][ComponentKey])
	assert.Equal(t, 1000.0, entries[0][SamplesKey])
	assert.Equal(t, OperationLoad, entries[0][OperationKey])

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, LevelWarn))
	assert.False(t, logger.Enabled(ctx, LevelDebug))

	provider.SetLevel(LevelDebug)
	assert.True(t, provider.GetLogger().Enabled(ctx, LevelDebug))
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologProvider(LevelInfo, &buf).GetLogger()

	logger.Error("Transformation failed", ErrAttrKey, errors.New("disk full"), "dangling")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "disk full", entries[0][ErrAttrKey])
	assert.Contains(t, entries[0], StacktraceAttrKey)
	assert.Equal(t, "dangling", entries[0]["!BADKEY"])
}

func TestNewZerologProviderFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scoreprep.log")
	provider, err := NewZerologProviderFromConfig(Config{
		Level: "debug",
		File:  FileConfig{Path: path, MaxSize: 1},
	})
	require.NoError(t, err)

	provider.GetLogger().Debug("written to file", PathKey, path)
	require.NoError(t, provider.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	_, err = NewZerologProviderFromConfig(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestGlobalProvider(t *testing.T) {
	previous := GetProvider()
	defer SetProvider(previous)

	provider, logger := NewTestLoggerProvider(LevelInfo)
	SetProvider(provider)

	GetLoggerWithName("preprocessing").Info("global message")
	assert.True(t, logger.ContainsMessage("global message"))
	assert.True(t, logger.ContainsField(ComponentKey, "preprocessing"))
}

func TestTestLogger(t *testing.T) {
	logger := NewTestLogger(LevelInfo)

	logger.Debug("not captured")
	logger.With(ModelNameKey, "ColumnTransformer").Info("captured", FeaturesKey, 7)
	logger.Error("failed", ErrAttrKey, errors.New("boom"))

	assert.False(t, logger.ContainsMessage("not captured"))
	assert.True(t, logger.ContainsField(ModelNameKey, "ColumnTransformer"))
	assert.True(t, logger.ContainsField(FeaturesKey, 7))
	assert.True(t, logger.ContainsField(ErrAttrKey, "boom"))

	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, LevelError, records[1].Level)
	assert.Equal(t, "error", records[1].Level.String())
	assert.NotContains(t, records[1].Fields, ModelNameKey)

	logger.Reset()
	assert.Empty(t, logger.Records())
}
