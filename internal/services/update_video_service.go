package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	outboxevents "github.com/bionicotaku/lingo-services-media/internal/models/outbox_events"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// UpdateVideoInput 描述更新视频的参数。Rating 为 nil 时保持原值；
// 关系集合沿用 VideoRelationsInput 的指针语义。图片槽位可携带
// 新文件以替换现有图片。
type UpdateVideoInput struct {
	VideoID      uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     float64
	Rating       *entities.Rating

	Relations VideoRelationsInput

	Thumb     *FileInput
	Banner    *FileInput
	ThumbHalf *FileInput
}

// UpdateVideoService 编排更新视频：加载 → 变更校验 → 关系解析 →
// 上传新图片 → 事务内更新并写 Outbox。上传之后失败只回滚本次
// 新写入的对象，已有文件保持不动。
type UpdateVideoService struct {
	videos    VideosRepository
	resolver  *RelationResolver
	uploader  *mediaUploader
	outbox    OutboxEnqueuer
	txManager txmanager.Manager
	log       *log.Helper
	metrics   *outboxMetrics
}

// NewUpdateVideoService 构造 UpdateVideoService。
func NewUpdateVideoService(
	videos VideosRepository,
	resolver *RelationResolver,
	storage StorageGateway,
	outbox OutboxEnqueuer,
	tx txmanager.Manager,
	logger log.Logger,
) *UpdateVideoService {
	return &UpdateVideoService{
		videos:    videos,
		resolver:  resolver,
		uploader:  newMediaUploader(storage, logger),
		outbox:    outbox,
		txManager: tx,
		log:       log.NewHelper(logger),
		metrics:   newOutboxMetrics("update_video"),
	}
}

// Update 执行更新用例。校验或关系解析失败时不产生任何副作用。
func (s *UpdateVideoService) Update(ctx context.Context, input UpdateVideoInput) (*vo.VideoOutput, error) {
	video, err := s.videos.Get(ctx, nil, input.VideoID)
	if err != nil {
		return nil, err
	}

	if err := video.Update(
		input.Title, input.Description,
		input.Opened, input.Published,
		input.YearLaunched, input.Duration, input.Rating,
	); err != nil {
		return nil, err
	}

	if err := s.resolver.Resolve(ctx, video, input.Relations); err != nil {
		return nil, err
	}

	tracker := &uploadTracker{}
	if err := s.uploader.uploadAll(ctx, video, videoFiles{
		Thumb:     input.Thumb,
		Banner:    input.Banner,
		ThumbHalf: input.ThumbHalf,
	}, tracker); err != nil {
		s.uploader.rollbackUploads(ctx, tracker.keys)
		return nil, err
	}

	txErr := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if err := s.videos.Update(txCtx, sess, video); err != nil {
			return err
		}

		updatedEvt, buildErr := outboxevents.NewVideoUpdatedEvent(video, uuid.New(), time.Now().UTC())
		if buildErr != nil {
			return fmt.Errorf("build video updated event: %w", buildErr)
		}
		domainEvts, buildErr := convertDomainEvents(video.Events())
		if buildErr != nil {
			return buildErr
		}
		events := append([]*outboxevents.DomainEvent{updatedEvt}, domainEvts...)
		return enqueueEvents(txCtx, sess, s.outbox, s.metrics, events...)
	})
	if txErr != nil {
		s.uploader.rollbackUploads(ctx, tracker.keys)
		s.log.WithContext(ctx).Errorf("update video failed: video_id=%s err=%v", input.VideoID, txErr)
		return nil, fmt.Errorf("update video: %w", txErr)
	}
	video.ClearEvents()

	s.log.WithContext(ctx).Infof("video updated: video_id=%s", video.ID)
	return vo.NewVideoOutput(video), nil
}
