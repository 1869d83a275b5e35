package encoderinbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

type resultHandler struct {
	mediaStatus *services.MediaStatusService
	log         *log.Helper
	metrics     *inboxMetrics
}

func newResultHandler(mediaStatus *services.MediaStatusService, logger log.Logger, metrics *inboxMetrics) *resultHandler {
	return &resultHandler{
		mediaStatus: mediaStatus,
		log:         log.NewHelper(logger),
		metrics:     metrics,
	}
}

// Handle 在 Inbox 事务会话内应用一条转码结果。video_id 无法解析、
// 目标视频不存在或没有主媒体时确认消息并跳过，避免毒消息无限重投。
func (h *resultHandler) Handle(ctx context.Context, sess txmanager.Session, result *EncoderResult, inboxEvt *store.InboxEvent) error {
	if result == nil {
		return fmt.Errorf("encoder inbox: nil result")
	}

	rawID := result.VideoID
	if rawID == "" && inboxEvt != nil && inboxEvt.AggregateID != nil {
		rawID = *inboxEvt.AggregateID
	}
	videoID, err := uuid.Parse(rawID)
	if err != nil {
		// 无法解析的 video_id 重投也不会成功，确认消息并记录。
		h.log.WithContext(ctx).Warnw("msg", "encoder inbox: skip unparsable video_id", "video_id", rawID, "error", err)
		return nil
	}

	input, ok := toStatusInput(videoID, result)
	if !ok {
		h.log.WithContext(ctx).Debugw("msg", "encoder inbox: skip unsupported status", "status", result.Status, "video_id", videoID)
		return nil
	}

	if applyErr := h.mediaStatus.Apply(ctx, sess, input); applyErr != nil {
		var notFound *entities.NotFoundError
		var validation *entities.EntityValidationError
		if errors.As(applyErr, &notFound) || errors.As(applyErr, &validation) {
			h.log.WithContext(ctx).Warnw("msg", "encoder inbox: skip unappliable result", "video_id", videoID, "error", applyErr)
			return nil
		}
		h.metrics.recordFailure(ctx, result.Status, applyErr)
		return applyErr
	}

	h.metrics.recordSuccess(ctx, result.Status)
	return nil
}

func toStatusInput(videoID uuid.UUID, result *EncoderResult) (services.MediaStatusInput, bool) {
	input := services.MediaStatusInput{
		VideoID: videoID,
		Message: result.Error,
	}
	switch result.Status {
	case statusProcessing:
		input.Status = entities.MediaStatusProcessing
	case statusCompleted:
		input.Status = entities.MediaStatusCompleted
		input.EncodedPath = result.EncodedVideoFolder
	case statusError:
		input.Status = entities.MediaStatusError
	default:
		return services.MediaStatusInput{}, false
	}
	return input, true
}
