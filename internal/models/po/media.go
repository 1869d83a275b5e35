package po

import "github.com/google/uuid"

// Media 映射 catalog.media 表的一行，保存主媒体/预告片的转码生命周期。
type Media struct {
	MediaID     uuid.UUID
	FilePath    string
	EncodedPath *string
	Status      string
}
