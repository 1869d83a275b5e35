package entities

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent 表示聚合上排队的领域事件。事件在聚合操作时入队，
// 由持久化流程在提交事务内写入 Outbox，提交成功后才会对外发布。
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
}

// VideoMediaUpdated 在主媒体文件被替换时触发，用于驱动下游转码。
type VideoMediaUpdated struct {
	VideoID    uuid.UUID
	FilePath   string
	OccurredAt time.Time
}

// EventName 返回事件的语义化名称。
func (e VideoMediaUpdated) EventName() string {
	return "video.media.updated"
}

// OccurredOn 返回事件发生时间。
func (e VideoMediaUpdated) OccurredOn() time.Time {
	return e.OccurredAt
}
