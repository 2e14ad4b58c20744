package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithSessionID(ctx, "sess-1")
	ctx = NewContextWithRequest(ctx, "cart", "AddItem")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "sess-1", GetSessionID(ctx))
	assert.Equal(t, "cart", GetModule(ctx))
	assert.Equal(t, "AddItem", GetFunction(ctx))
	assert.False(t, GetStartTime(ctx).IsZero())

	m := ContextToMap(ctx)
	assert.Equal(t, "req-1", m["request_id"])
	assert.Equal(t, "sess-1", m["session_id"])
}

func TestNewContextWithRequest_KeepsStartTime(t *testing.T) {
	start := time.Now().Add(-time.Second)
	ctx := WithValue(context.Background(), StartTimeKey, start)
	ctx = NewContextWithRequest(ctx, "m", "f")
	assert.Equal(t, start, GetStartTime(ctx))
	assert.GreaterOrEqual(t, GetDuration(ctx), time.Second)
}

func TestEmptyContext(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Empty(t, ContextToMap(context.Background()))
}
