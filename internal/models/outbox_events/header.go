// Package outboxevents 定义视频聚合对外发布的集成事件：事件种类、
// 载荷构造器，以及本文件中由事件派生 Pub/Sub message attributes 与
// 版本号的辅助方法。
package outboxevents

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// FormatEventType 将事件种类映射为 catalog.video.* 形式的类型字符串。
func FormatEventType(kind Kind) string {
	return kind.String()
}

// BuildAttributes 由事件派生 Pub/Sub message attributes，下游按
// event_type 过滤、按 version 判断新旧。
func BuildAttributes(event *DomainEvent, schemaVersion string, traceID string) map[string]string {
	if schemaVersion == "" {
		schemaVersion = SchemaVersionV1
	}
	attrs := map[string]string{
		"event_id":       event.EventID.String(),
		"event_type":     FormatEventType(event.Kind),
		"aggregate_id":   event.AggregateID.String(),
		"aggregate_type": event.AggregateType,
		"version":        strconv.FormatInt(event.Version, 10),
		"occurred_at":    event.OccurredAt.UTC().Format(time.RFC3339Nano),
		"schema_version": schemaVersion,
	}
	if traceID != "" {
		attrs["trace_id"] = traceID
	}
	return attrs
}

// TraceIDFromContext 提取当前 OTel Trace ID，不在 trace 中时返回空串，
// 调用方据此决定是否携带 trace_id 属性。
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() || !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// VersionFromTime 以 UTC 微秒时间戳作为聚合版本号；同一视频上的
// 后写事件版本必然更大。
func VersionFromTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMicro()
}
