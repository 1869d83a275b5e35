// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 对象由 Service 层返回，隔离内部实体结构。
package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/google/uuid"
)

// MediaOutput 描述一个媒体附件的只读视图。
type MediaOutput struct {
	FilePath    string  `json:"file_path"`
	EncodedPath *string `json:"encoded_path,omitempty"`
	Status      string  `json:"status"`
}

// VideoOutput 封装视频聚合的完整只读视图，含关系 id 集合与附件路径。
type VideoOutput struct {
	VideoID       uuid.UUID    `json:"video_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	YearLaunched  int          `json:"year_launched"`
	Opened        bool         `json:"opened"`
	Published     bool         `json:"published"`
	Duration      float64      `json:"duration"`
	Rating        string       `json:"rating"`
	CreatedAt     time.Time    `json:"created_at"`
	ThumbPath     *string      `json:"thumb_path,omitempty"`
	ThumbHalfPath *string      `json:"thumb_half_path,omitempty"`
	BannerPath    *string      `json:"banner_path,omitempty"`
	Media         *MediaOutput `json:"media,omitempty"`
	Trailer       *MediaOutput `json:"trailer,omitempty"`
	Categories    []uuid.UUID  `json:"categories"`
	Genres        []uuid.UUID  `json:"genres"`
	CastMembers   []uuid.UUID  `json:"cast_members"`
}

// NewVideoOutput 从领域聚合构造只读视图。
func NewVideoOutput(video *entities.Video) *VideoOutput {
	if video == nil {
		return nil
	}
	out := &VideoOutput{
		VideoID:      video.ID,
		Title:        video.Title,
		Description:  video.Description,
		YearLaunched: video.YearLaunched,
		Opened:       video.Opened,
		Published:    video.Published,
		Duration:     video.Duration,
		Rating:       video.Rating.String(),
		CreatedAt:    video.CreatedAt,
		Categories:   video.Categories(),
		Genres:       video.Genres(),
		CastMembers:  video.CastMembers(),
	}
	if video.Thumb != nil {
		out.ThumbPath = &video.Thumb.Path
	}
	if video.ThumbHalf != nil {
		out.ThumbHalfPath = &video.ThumbHalf.Path
	}
	if video.Banner != nil {
		out.BannerPath = &video.Banner.Path
	}
	out.Media = newMediaOutput(video.Media)
	out.Trailer = newMediaOutput(video.Trailer)
	return out
}

func newMediaOutput(media *entities.Media) *MediaOutput {
	if media == nil {
		return nil
	}
	return &MediaOutput{
		FilePath:    media.FilePath,
		EncodedPath: media.EncodedPath,
		Status:      string(media.Status),
	}
}
