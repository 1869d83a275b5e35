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

// InboxMessage 是待记录的转码器回报消息。
type InboxMessage = store.InboxMessage

// InboxEvent 是已落库去重的转码器回报。
type InboxEvent = store.InboxEvent

// InboxRepository 是 lingo-utils inbox 仓储在 catalog schema 上的薄封装，
// 为转码结果消费提供幂等去重与处理审计。
type InboxRepository struct {
	delegate *store.Repository
}

// NewInboxRepository 在配置指定的 schema（缺省 catalog）上构建 Inbox 仓储。
func NewInboxRepository(db *pgxpool.Pool, logger log.Logger, cfg outboxcfg.Config) *InboxRepository {
	storeRepo, err := outboxpkg.NewRepository(db, logger, outboxpkg.RepositoryOptions{Schema: cfg.Schema})
	if err != nil {
		log.NewHelper(logger).Errorw("msg", "init catalog inbox repository failed", "schema", cfg.Schema, "error", err)
		return &InboxRepository{delegate: store.NewRepository(db, logger)}
	}
	return &InboxRepository{delegate: storeRepo}
}

// Insert 在消费事务内记录一条转码器回报；重复投递在此被去重。
func (r *InboxRepository) Insert(ctx context.Context, sess txmanager.Session, event InboxMessage) error {
	return r.delegate.RecordInboxEvent(ctx, sess, event)
}

// MarkProcessed 在媒体状态机应用成功后落定处理时间。
func (r *InboxRepository) MarkProcessed(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, processedAt time.Time) error {
	return r.delegate.MarkInboxProcessed(ctx, sess, eventID, processedAt)
}

// RecordError 记录最近一次应用失败的原因，供排查毒消息。
func (r *InboxRepository) RecordError(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lastErr string) error {
	return r.delegate.RecordInboxError(ctx, sess, eventID, lastErr)
}

// Shared 暴露底层仓储给 encoder inbox runner。
func (r *InboxRepository) Shared() *store.Repository {
	return r.delegate
}
