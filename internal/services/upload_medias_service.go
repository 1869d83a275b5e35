package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// UploadMediasInput 描述媒体补传参数，两个槽位至少一个非空。
type UploadMediasInput struct {
	VideoID uuid.UUID
	Media   *FileInput
	Trailer *FileInput
}

// UploadMediasService 为已存在的视频补传主媒体与预告片。
// 新媒体进入 pending 状态，转码流水线经由 Outbox 事件触发。
type UploadMediasService struct {
	videos    VideosRepository
	uploader  *mediaUploader
	outbox    OutboxEnqueuer
	txManager txmanager.Manager
	log       *log.Helper
	metrics   *outboxMetrics
}

// NewUploadMediasService 构造 UploadMediasService。
func NewUploadMediasService(
	videos VideosRepository,
	storage StorageGateway,
	outbox OutboxEnqueuer,
	tx txmanager.Manager,
	logger log.Logger,
) *UploadMediasService {
	return &UploadMediasService{
		videos:    videos,
		uploader:  newMediaUploader(storage, logger),
		outbox:    outbox,
		txManager: tx,
		log:       log.NewHelper(logger),
		metrics:   newOutboxMetrics("upload_medias"),
	}
}

// Upload 执行补传。上传之后失败会删除本次写入的对象。
func (s *UploadMediasService) Upload(ctx context.Context, input UploadMediasInput) error {
	if input.Media == nil && input.Trailer == nil {
		return fmt.Errorf("upload medias: no file provided")
	}

	video, err := s.videos.Get(ctx, nil, input.VideoID)
	if err != nil {
		return err
	}

	tracker := &uploadTracker{}
	if err := s.uploader.uploadAll(ctx, video, videoFiles{
		Media:   input.Media,
		Trailer: input.Trailer,
	}, tracker); err != nil {
		s.uploader.rollbackUploads(ctx, tracker.keys)
		return err
	}

	txErr := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if err := s.videos.Update(txCtx, sess, video); err != nil {
			return err
		}
		domainEvts, buildErr := convertDomainEvents(video.Events())
		if buildErr != nil {
			return buildErr
		}
		return enqueueEvents(txCtx, sess, s.outbox, s.metrics, domainEvts...)
	})
	if txErr != nil {
		s.uploader.rollbackUploads(ctx, tracker.keys)
		s.log.WithContext(ctx).Errorf("upload medias failed: video_id=%s err=%v", input.VideoID, txErr)
		return fmt.Errorf("upload medias: %w", txErr)
	}
	video.ClearEvents()

	s.log.WithContext(ctx).Infof("medias uploaded: video_id=%s", video.ID)
	return nil
}
