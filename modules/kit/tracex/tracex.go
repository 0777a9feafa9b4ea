package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type traceIDKey struct{}
type spanIDKey struct{}
type gameIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKey{})
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(spanIDKey{})
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// WithGameID 把对局 id 带进 ctx，日志适配器会自动打出 game_id 字段。
func WithGameID(ctx context.Context, gameID int64) context.Context {
	return context.WithValue(ctx, gameIDKey{}, gameID)
}

func GameIDFrom(ctx context.Context) (int64, bool) {
	v := ctx.Value(gameIDKey{})
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id != 0
}

// NewTraceID 随机生成 16 字节 hex trace_id。
func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
