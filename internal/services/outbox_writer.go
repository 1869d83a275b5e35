package services

import (
	"context"
	"fmt"
	"time"

	outboxevents "github.com/bionicotaku/lingo-services-media/internal/models/outbox_events"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
)

// buildOutboxMessage 将领域事件编码为 Outbox 消息，payload 为 JSON。
func buildOutboxMessage(ctx context.Context, evt *outboxevents.DomainEvent) (repositories.OutboxMessage, error) {
	payload, err := outboxevents.MarshalPayload(evt)
	if err != nil {
		return repositories.OutboxMessage{}, fmt.Errorf("marshal event payload: %w", err)
	}

	availableAt := evt.OccurredAt
	if availableAt.IsZero() {
		availableAt = time.Now().UTC()
	}

	return repositories.OutboxMessage{
		EventID:       evt.EventID,
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		EventType:     outboxevents.FormatEventType(evt.Kind),
		Payload:       payload,
		Headers:       outboxevents.BuildAttributes(evt, outboxevents.SchemaVersionV1, outboxevents.TraceIDFromContext(ctx)),
		AvailableAt:   availableAt,
	}, nil
}

// enqueueEvents 在当前事务内写入一组事件并记录指标。
func enqueueEvents(
	ctx context.Context,
	sess txmanager.Session,
	outbox OutboxEnqueuer,
	metrics *outboxMetrics,
	events ...*outboxevents.DomainEvent,
) error {
	for _, evt := range events {
		if evt == nil {
			continue
		}
		msg, err := buildOutboxMessage(ctx, evt)
		if err != nil {
			metrics.recordFailure(ctx, evt.Kind.String(), err)
			return err
		}
		if err := outbox.Enqueue(ctx, sess, msg); err != nil {
			metrics.recordFailure(ctx, evt.Kind.String(), err)
			return fmt.Errorf("enqueue outbox: %w", err)
		}
		metrics.recordSuccess(ctx, evt.Kind.String(), evt.OccurredAt)
	}
	return nil
}
