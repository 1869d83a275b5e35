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

// CreateVideoInput 描述创建视频的全部参数。文件槽位均可为空。
type CreateVideoInput struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     float64
	Rating       entities.Rating

	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID

	Thumb     *FileInput
	Banner    *FileInput
	ThumbHalf *FileInput
	Media     *FileInput
	Trailer   *FileInput
}

// CreateVideoService 编排创建视频的校验、上传与持久化：
// 校验 → 关系解析 → 上传 → 事务内落库并写 Outbox。
// 上传之后任何一步失败都会删除本次已写入对象存储的文件。
type CreateVideoService struct {
	videos    VideosRepository
	resolver  *RelationResolver
	uploader  *mediaUploader
	outbox    OutboxEnqueuer
	txManager txmanager.Manager
	log       *log.Helper
	metrics   *outboxMetrics
}

// NewCreateVideoService 构造 CreateVideoService。
func NewCreateVideoService(
	videos VideosRepository,
	resolver *RelationResolver,
	storage StorageGateway,
	outbox OutboxEnqueuer,
	tx txmanager.Manager,
	logger log.Logger,
) *CreateVideoService {
	return &CreateVideoService{
		videos:    videos,
		resolver:  resolver,
		uploader:  newMediaUploader(storage, logger),
		outbox:    outbox,
		txManager: tx,
		log:       log.NewHelper(logger),
		metrics:   newOutboxMetrics("create_video"),
	}
}

// Create 执行创建用例。校验或关系解析失败时不产生任何副作用。
func (s *CreateVideoService) Create(ctx context.Context, input CreateVideoInput) (*vo.VideoOutput, error) {
	video, err := entities.NewVideo(
		input.Title, input.Description,
		input.Opened, input.Published,
		input.YearLaunched, input.Duration, input.Rating,
	)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.Resolve(ctx, video, VideoRelationsInput{
		Categories:  &input.Categories,
		Genres:      &input.Genres,
		CastMembers: &input.CastMembers,
	}); err != nil {
		return nil, err
	}

	tracker := &uploadTracker{}
	if err := s.uploader.uploadAll(ctx, video, videoFiles{
		Thumb:     input.Thumb,
		Banner:    input.Banner,
		ThumbHalf: input.ThumbHalf,
		Media:     input.Media,
		Trailer:   input.Trailer,
	}, tracker); err != nil {
		s.uploader.rollbackUploads(ctx, tracker.keys)
		return nil, err
	}

	txErr := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if err := s.videos.Insert(txCtx, sess, video); err != nil {
			return err
		}

		createdEvt, buildErr := outboxevents.NewVideoCreatedEvent(video, uuid.New(), time.Now().UTC())
		if buildErr != nil {
			return fmt.Errorf("build video created event: %w", buildErr)
		}
		domainEvts, buildErr := convertDomainEvents(video.Events())
		if buildErr != nil {
			return buildErr
		}
		events := append([]*outboxevents.DomainEvent{createdEvt}, domainEvts...)
		return enqueueEvents(txCtx, sess, s.outbox, s.metrics, events...)
	})
	if txErr != nil {
		s.uploader.rollbackUploads(ctx, tracker.keys)
		s.log.WithContext(ctx).Errorf("create video failed: title=%s err=%v", input.Title, txErr)
		return nil, fmt.Errorf("create video: %w", txErr)
	}
	video.ClearEvents()

	s.log.WithContext(ctx).Infof("video created: video_id=%s title=%s", video.ID, video.Title)
	return vo.NewVideoOutput(video), nil
}

// convertDomainEvents 把聚合上排队的领域事件翻译成 Outbox 事件。
func convertDomainEvents(events []entities.DomainEvent) ([]*outboxevents.DomainEvent, error) {
	if len(events) == 0 {
		return nil, nil
	}
	out := make([]*outboxevents.DomainEvent, 0, len(events))
	for _, evt := range events {
		switch e := evt.(type) {
		case entities.VideoMediaUpdated:
			converted, err := outboxevents.NewVideoMediaUpdatedEvent(e, uuid.New())
			if err != nil {
				return nil, fmt.Errorf("build media updated event: %w", err)
			}
			out = append(out, converted)
		default:
			return nil, fmt.Errorf("unsupported domain event %q", evt.EventName())
		}
	}
	return out, nil
}
