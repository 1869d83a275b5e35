package repositories

import (
	"context"
	"time"

	outboxpkg "github.com/bionicotaku/lingo-utils/outbox"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxMessage 是写入 catalog.outbox_events 的视频事件载荷。
type OutboxMessage = store.Message

// OutboxEvent 是已入列、等待发布到视频事件主题的 Outbox 行。
type OutboxEvent = store.Event

// OutboxRepository 是 lingo-utils outbox 仓储在 catalog schema 上的薄封装，
// 写用例通过它在保存聚合的同一事务内入列视频事件。
type OutboxRepository struct {
	delegate *store.Repository
}

// NewOutboxRepository 在配置指定的 schema（缺省 catalog）上构建 Outbox 仓储。
func NewOutboxRepository(db *pgxpool.Pool, logger log.Logger, cfg outboxcfg.Config) *OutboxRepository {
	storeRepo, err := outboxpkg.NewRepository(db, logger, outboxpkg.RepositoryOptions{Schema: cfg.Schema})
	if err != nil {
		log.NewHelper(logger).Errorw("msg", "init catalog outbox repository failed", "schema", cfg.Schema, "error", err)
		return &OutboxRepository{delegate: store.NewRepository(db, logger)}
	}
	return &OutboxRepository{delegate: storeRepo}
}

// Enqueue 在写事务内入列一条视频事件；事件与聚合变更同生共死。
func (r *OutboxRepository) Enqueue(ctx context.Context, sess txmanager.Session, msg OutboxMessage) error {
	return r.delegate.Enqueue(ctx, sess, msg)
}

// ClaimPending 以 lockToken 认领一批到期待发布的事件。
func (r *OutboxRepository) ClaimPending(ctx context.Context, availableBefore, staleBefore time.Time, limit int, lockToken string) ([]OutboxEvent, error) {
	return r.delegate.ClaimPending(ctx, availableBefore, staleBefore, limit, lockToken)
}

// MarkPublished 在事件成功到达主题后落定发布时间。
func (r *OutboxRepository) MarkPublished(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lockToken string, publishedAt time.Time) error {
	return r.delegate.MarkPublished(ctx, sess, eventID, lockToken, publishedAt)
}

// Reschedule 发布失败后将事件推迟到 nextAvailable 并记录失败原因。
func (r *OutboxRepository) Reschedule(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lockToken string, nextAvailable time.Time, lastErr string) error {
	return r.delegate.Reschedule(ctx, sess, eventID, lockToken, nextAvailable, lastErr)
}

// CountPending 返回尚未发布的视频事件数量。
func (r *OutboxRepository) CountPending(ctx context.Context) (int64, error) {
	return r.delegate.CountPending(ctx)
}

// Shared 暴露底层仓储给 outbox publisher runner。
func (r *OutboxRepository) Shared() *store.Repository {
	return r.delegate
}
