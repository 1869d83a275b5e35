package services

import (
	"context"
	"fmt"
	"time"

	outboxevents "github.com/bionicotaku/lingo-services-media/internal/models/outbox_events"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// DeleteVideoService 删除视频聚合，并在提交后清理对象存储中的
// 媒体文件。存储清理是尽力而为的：失败只记日志，不回滚删除。
type DeleteVideoService struct {
	videos    VideosRepository
	storage   StorageGateway
	outbox    OutboxEnqueuer
	txManager txmanager.Manager
	log       *log.Helper
	metrics   *outboxMetrics
}

// NewDeleteVideoService 构造 DeleteVideoService。
func NewDeleteVideoService(
	videos VideosRepository,
	storage StorageGateway,
	outbox OutboxEnqueuer,
	tx txmanager.Manager,
	logger log.Logger,
) *DeleteVideoService {
	return &DeleteVideoService{
		videos:    videos,
		storage:   storage,
		outbox:    outbox,
		txManager: tx,
		log:       log.NewHelper(logger),
		metrics:   newOutboxMetrics("delete_video"),
	}
}

// Delete 执行删除用例。目标不存在时返回 NotFoundError。
func (s *DeleteVideoService) Delete(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.videos.Get(ctx, nil, videoID)
	if err != nil {
		return err
	}

	txErr := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if err := s.videos.Delete(txCtx, sess, videoID); err != nil {
			return err
		}
		evt, buildErr := outboxevents.NewVideoDeletedEvent(videoID, uuid.New(), time.Now().UTC())
		if buildErr != nil {
			return fmt.Errorf("build video deleted event: %w", buildErr)
		}
		return enqueueEvents(txCtx, sess, s.outbox, s.metrics, evt)
	})
	if txErr != nil {
		s.log.WithContext(ctx).Errorf("delete video failed: video_id=%s err=%v", videoID, txErr)
		return fmt.Errorf("delete video: %w", txErr)
	}

	// 提交成功后清理存储对象，与请求取消解耦。
	cleanupCtx := context.WithoutCancel(ctx)
	var stored []string
	if video.Media != nil {
		stored = append(stored, video.Media.FilePath)
	}
	if video.Trailer != nil {
		stored = append(stored, video.Trailer.FilePath)
	}
	for _, key := range stored {
		if err := s.storage.Delete(cleanupCtx, key); err != nil {
			s.log.WithContext(cleanupCtx).Warnf("delete stored media failed: key=%s err=%v", key, err)
		}
	}

	s.log.WithContext(ctx).Infof("video deleted: video_id=%s", videoID)
	return nil
}
