// Package outboxevents 定义写入 Outbox 的领域事件封装与构建器。
// 事件在业务事务内入队，由独立的 Outbox Publisher 在提交后发布，
// 保证提交失败时不对外泄露任何事件。
package outboxevents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind 标识领域事件类型。
type Kind int

// 领域事件类型常量。
const (
	// KindUnknown 表示未识别的事件类型。
	KindUnknown Kind = iota
	// KindVideoCreated 表示视频聚合创建事件。
	KindVideoCreated
	// KindVideoUpdated 表示视频聚合更新事件。
	KindVideoUpdated
	// KindVideoDeleted 表示视频聚合删除事件。
	KindVideoDeleted
	// KindVideoMediaUpdated 表示主媒体文件被替换，用于触发下游转码。
	KindVideoMediaUpdated
)

func (k Kind) String() string {
	switch k {
	case KindVideoCreated:
		return "catalog.video.created"
	case KindVideoUpdated:
		return "catalog.video.updated"
	case KindVideoDeleted:
		return "catalog.video.deleted"
	case KindVideoMediaUpdated:
		return "catalog.video.media.updated"
	default:
		return "catalog.event.unknown"
	}
}

// DomainEvent 表示领域层生成的标准事件。
type DomainEvent struct {
	EventID       uuid.UUID
	Kind          Kind
	AggregateID   uuid.UUID
	AggregateType string
	Version       int64
	OccurredAt    time.Time
	Payload       any
}

// VideoCreated 描述视频创建事件载荷。
type VideoCreated struct {
	VideoID      uuid.UUID   `json:"video_id"`
	Title        string      `json:"title"`
	Rating       string      `json:"rating"`
	YearLaunched int         `json:"year_launched"`
	Opened       bool        `json:"opened"`
	Published    bool        `json:"published"`
	Categories   []uuid.UUID `json:"categories,omitempty"`
	Genres       []uuid.UUID `json:"genres,omitempty"`
	CastMembers  []uuid.UUID `json:"cast_members,omitempty"`
}

// VideoUpdated 描述视频更新事件载荷。
type VideoUpdated struct {
	VideoID     uuid.UUID   `json:"video_id"`
	Title       string      `json:"title"`
	Rating      string      `json:"rating"`
	Opened      bool        `json:"opened"`
	Published   bool        `json:"published"`
	Categories  []uuid.UUID `json:"categories,omitempty"`
	Genres      []uuid.UUID `json:"genres,omitempty"`
	CastMembers []uuid.UUID `json:"cast_members,omitempty"`
}

// VideoDeleted 描述视频删除事件载荷。
type VideoDeleted struct {
	VideoID   uuid.UUID `json:"video_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// VideoMediaUpdatedPayload 描述主媒体替换事件载荷，下游转码器据此拉取源文件。
type VideoMediaUpdatedPayload struct {
	VideoID  uuid.UUID `json:"video_id"`
	FilePath string    `json:"file_path"`
}

const (
	// AggregateTypeVideo 标识视频聚合类型。
	AggregateTypeVideo = "catalog.video"
	// SchemaVersionV1 描述事件载荷的当前 schema 版本。
	SchemaVersionV1 = "v1"
)

var (
	// ErrNilVideo 表示构建事件时未提供聚合实体。
	ErrNilVideo = fmt.Errorf("event builder: video is required")
	// ErrInvalidEventID 表示未提供合法的事件 ID。
	ErrInvalidEventID = fmt.Errorf("event builder: event id is required")
	// ErrUnknownEventKind 表示未识别的事件类型。
	ErrUnknownEventKind = fmt.Errorf("event builder: unknown event kind")
)
