package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/core/logger"
)

type ridKey struct{}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Format: "json", Output: &buf})

	log.Info("resynced", logger.Collection("projects"), logger.Count("items", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "resynced", rec["msg"])
	assert.Equal(t, "projects", rec["collection"])
	assert.EqualValues(t, 3, rec["items"])
}

func TestNew_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Format: "text", Output: &buf})

	log.Info("hidden")
	log.Warn("shown", logger.Store("file"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "store=file")
}

func TestNew_ContextExtractor(t *testing.T) {
	var buf bytes.Buffer
	extract := func(ctx context.Context) (slog.Attr, bool) {
		id, ok := ctx.Value(ridKey{}).(string)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
	log := logger.New(logger.Config{Output: &buf}, extract, nil)

	ctx := context.WithValue(context.Background(), ridKey{}, "req-1")
	log.InfoContext(ctx, "with id")
	log.Info("without id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"request_id":"req-1"`)
	assert.NotContains(t, lines[1], "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestAttrs_ZeroValuesAreEmpty(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.Locator("").Equal(slog.Attr{}))
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))
}

func TestErrors_KeepsPositions(t *testing.T) {
	attr := logger.Errors(nil, errors.New("boom"))

	assert.Equal(t, "errors", attr.Key)
	group := attr.Value.Group()
	require.Len(t, group, 1)
	assert.Equal(t, "1", group[0].Key)
}
