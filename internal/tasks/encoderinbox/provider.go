package encoderinbox

import (
	"github.com/bionicotaku/lingo-services-media/internal/repositories"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
)

// ProvideTask 根据配置和依赖构造转码结果 Inbox 任务。
func ProvideTask(
	subscriber gcpubsub.Subscriber,
	inboxRepo *repositories.InboxRepository,
	mediaStatus *services.MediaStatusService,
	tx txmanager.Manager,
	cfg outboxcfg.Config,
	logger log.Logger,
) *Task {
	normalized := cfg.Normalize()
	if normalized.Inbox.SourceService == "" {
		log.NewHelper(logger).Warn("encoder inbox: skip initialization, source_service not configured")
		return nil
	}
	return NewTask(subscriber, inboxRepo, mediaStatus, tx, logger, normalized.Inbox)
}
