package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各服务共用的最小日志接口：结构化字段 + ctx 透传（trace/span/game）。
// 刻意不做分级器、采样这类框架能力，落地实现交给 zap。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
