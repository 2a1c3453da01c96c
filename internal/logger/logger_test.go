package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_AddsRequestAndUserIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { log = nil })

	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithUserID(ctx, 7)

	CtxInfo(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.EqualValues(t, 7, entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestFromContext_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { log = nil })

	CtxWarn(context.Background(), "plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasRequest := entry["request_id"]
	_, hasUser := entry["user_id"]
	assert.False(t, hasRequest)
	assert.False(t, hasUser)
	assert.Equal(t, "WARN", entry["level"])
}

func TestGetUserID_Missing(t *testing.T) {
	assert.Equal(t, uint(0), GetUserID(context.Background()))
	assert.Equal(t, "", GetRequestID(context.Background()))
}
