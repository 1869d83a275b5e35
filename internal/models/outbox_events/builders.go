package outboxevents

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/google/uuid"
)

// NewVideoCreatedEvent 基于聚合实体构建创建事件。
func NewVideoCreatedEvent(video *entities.Video, eventID uuid.UUID, occurredAt time.Time) (*DomainEvent, error) {
	if video == nil {
		return nil, ErrNilVideo
	}
	if eventID == uuid.Nil {
		return nil, ErrInvalidEventID
	}
	occurredAt = normalizeOccurredAt(occurredAt, video.CreatedAt)

	payload := &VideoCreated{
		VideoID:      video.ID,
		Title:        video.Title,
		Rating:       video.Rating.String(),
		YearLaunched: video.YearLaunched,
		Opened:       video.Opened,
		Published:    video.Published,
		Categories:   video.Categories(),
		Genres:       video.Genres(),
		CastMembers:  video.CastMembers(),
	}

	return &DomainEvent{
		EventID:       eventID,
		Kind:          KindVideoCreated,
		AggregateID:   video.ID,
		AggregateType: AggregateTypeVideo,
		Version:       VersionFromTime(occurredAt),
		OccurredAt:    occurredAt,
		Payload:       payload,
	}, nil
}

// NewVideoUpdatedEvent 基于聚合实体构建更新事件。
func NewVideoUpdatedEvent(video *entities.Video, eventID uuid.UUID, occurredAt time.Time) (*DomainEvent, error) {
	if video == nil {
		return nil, ErrNilVideo
	}
	if eventID == uuid.Nil {
		return nil, ErrInvalidEventID
	}
	occurredAt = normalizeOccurredAt(occurredAt, time.Time{})

	payload := &VideoUpdated{
		VideoID:     video.ID,
		Title:       video.Title,
		Rating:      video.Rating.String(),
		Opened:      video.Opened,
		Published:   video.Published,
		Categories:  video.Categories(),
		Genres:      video.Genres(),
		CastMembers: video.CastMembers(),
	}

	return &DomainEvent{
		EventID:       eventID,
		Kind:          KindVideoUpdated,
		AggregateID:   video.ID,
		AggregateType: AggregateTypeVideo,
		Version:       VersionFromTime(occurredAt),
		OccurredAt:    occurredAt,
		Payload:       payload,
	}, nil
}

// NewVideoDeletedEvent 构建删除事件。
func NewVideoDeletedEvent(videoID uuid.UUID, eventID uuid.UUID, occurredAt time.Time) (*DomainEvent, error) {
	if eventID == uuid.Nil {
		return nil, ErrInvalidEventID
	}
	occurredAt = normalizeOccurredAt(occurredAt, time.Time{})

	return &DomainEvent{
		EventID:       eventID,
		Kind:          KindVideoDeleted,
		AggregateID:   videoID,
		AggregateType: AggregateTypeVideo,
		Version:       VersionFromTime(occurredAt),
		OccurredAt:    occurredAt,
		Payload:       &VideoDeleted{VideoID: videoID, DeletedAt: occurredAt},
	}, nil
}

// NewVideoMediaUpdatedEvent 将聚合上排队的 media-updated 领域事件转换为 Outbox 事件。
func NewVideoMediaUpdatedEvent(src entities.VideoMediaUpdated, eventID uuid.UUID) (*DomainEvent, error) {
	if eventID == uuid.Nil {
		return nil, ErrInvalidEventID
	}
	occurredAt := normalizeOccurredAt(src.OccurredAt, time.Time{})

	return &DomainEvent{
		EventID:       eventID,
		Kind:          KindVideoMediaUpdated,
		AggregateID:   src.VideoID,
		AggregateType: AggregateTypeVideo,
		Version:       VersionFromTime(occurredAt),
		OccurredAt:    occurredAt,
		Payload: &VideoMediaUpdatedPayload{
			VideoID:  src.VideoID,
			FilePath: src.FilePath,
		},
	}, nil
}

// MarshalPayload 将事件载荷序列化为 Outbox 存储的 JSON 字节。
func MarshalPayload(event *DomainEvent) ([]byte, error) {
	if event == nil || event.Kind == KindUnknown {
		return nil, ErrUnknownEventKind
	}
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.Kind, err)
	}
	return data, nil
}

func normalizeOccurredAt(occurredAt, fallback time.Time) time.Time {
	if occurredAt.IsZero() {
		occurredAt = fallback
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return occurredAt.UTC()
}
