package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// MediaStatusInput 描述一次转码状态回传。
type MediaStatusInput struct {
	VideoID     uuid.UUID
	Status      entities.MediaStatus
	EncodedPath string
	Message     string
}

// MediaStatusService 驱动主媒体的转码状态机。Apply 面向 Inbox
// 消费者，在调用方提供的事务会话内执行；Process 面向直接调用，
// 自行开启事务。
type MediaStatusService struct {
	videos    VideosRepository
	txManager txmanager.Manager
	log       *log.Helper
}

// NewMediaStatusService 构造 MediaStatusService。
func NewMediaStatusService(videos VideosRepository, tx txmanager.Manager, logger log.Logger) *MediaStatusService {
	return &MediaStatusService{
		videos:    videos,
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// Apply 在给定会话内读取聚合、推进媒体状态并写回。
func (s *MediaStatusService) Apply(ctx context.Context, sess txmanager.Session, input MediaStatusInput) error {
	video, err := s.videos.Get(ctx, sess, input.VideoID)
	if err != nil {
		return err
	}

	switch input.Status {
	case entities.MediaStatusProcessing:
		err = video.UpdateAsSentToEncode()
	case entities.MediaStatusCompleted:
		err = video.UpdateAsEncoded(input.EncodedPath)
	case entities.MediaStatusError:
		s.log.WithContext(ctx).Warnf("media encoding failed: video_id=%s message=%s", input.VideoID, input.Message)
		err = video.UpdateAsEncodingError()
	default:
		return fmt.Errorf("apply media status: unsupported status %q", input.Status)
	}
	if err != nil {
		return err
	}

	if err := s.videos.Update(ctx, sess, video); err != nil {
		return err
	}
	s.log.WithContext(ctx).Infof("media status applied: video_id=%s status=%s", input.VideoID, input.Status)
	return nil
}

// Process 在独立事务内执行 Apply。
func (s *MediaStatusService) Process(ctx context.Context, input MediaStatusInput) error {
	return s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		return s.Apply(txCtx, sess, input)
	})
}
