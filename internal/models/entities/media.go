package entities

import "github.com/google/uuid"

// MediaStatus 表示媒体文件在外部转码流水线中的状态。
type MediaStatus string

// 媒体状态常量。
const (
	MediaStatusPending    MediaStatus = "pending"    // 已登记路径，尚未送转码
	MediaStatusProcessing MediaStatus = "processing" // 已送转码，等待回调
	MediaStatusCompleted  MediaStatus = "completed"  // 转码完成，EncodedPath 可用
	MediaStatusError      MediaStatus = "error"      // 转码失败
)

// Media 表示归属于 Video 的一个二进制媒体文件及其转码生命周期。
// Media 不独立存在，生命周期完全从属于聚合根。
type Media struct {
	ID          uuid.UUID
	FilePath    string
	EncodedPath *string
	Status      MediaStatus
}

// NewMedia 以给定存储路径创建 Pending 状态的媒体记录。
func NewMedia(filePath string) *Media {
	return &Media{
		ID:       uuid.New(),
		FilePath: filePath,
		Status:   MediaStatusPending,
	}
}

// UpdateAsSentToEncode 标记媒体已送入外部转码器。
func (m *Media) UpdateAsSentToEncode() {
	m.Status = MediaStatusProcessing
}

// UpdateAsEncoded 记录转码完成后的输出路径。
func (m *Media) UpdateAsEncoded(encodedPath string) {
	m.Status = MediaStatusCompleted
	m.EncodedPath = &encodedPath
}

// UpdateAsEncodingError 标记转码失败并清除输出路径。
func (m *Media) UpdateAsEncodingError() {
	m.Status = MediaStatusError
	m.EncodedPath = nil
}
