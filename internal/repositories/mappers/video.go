// Package mappers 负责 PO 与领域实体之间的双向转换，隔离仓储行结构与聚合。
package mappers

import (
	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/google/uuid"
)

// VideoToRow 将聚合实体压平为 videos 表行。媒体外键由调用方根据
// 附带的 media 行决定（仓储负责先写 media 再写 videos）。
func VideoToRow(video *entities.Video) po.Video {
	row := po.Video{
		VideoID:      video.ID,
		Title:        video.Title,
		Description:  video.Description,
		YearLaunched: int32(video.YearLaunched),
		Opened:       video.Opened,
		Published:    video.Published,
		Duration:     video.Duration,
		Rating:       video.Rating.String(),
		CreatedAt:    video.CreatedAt,
	}
	if video.Thumb != nil {
		row.ThumbPath = &video.Thumb.Path
	}
	if video.ThumbHalf != nil {
		row.ThumbHalfPath = &video.ThumbHalf.Path
	}
	if video.Banner != nil {
		row.BannerPath = &video.Banner.Path
	}
	if video.Media != nil {
		id := video.Media.ID
		row.MediaID = &id
	}
	if video.Trailer != nil {
		id := video.Trailer.ID
		row.TrailerID = &id
	}
	return row
}

// MediaToRow 将媒体子实体压平为 media 表行。
func MediaToRow(media *entities.Media) po.Media {
	return po.Media{
		MediaID:     media.ID,
		FilePath:    media.FilePath,
		EncodedPath: media.EncodedPath,
		Status:      string(media.Status),
	}
}

// VideoFromRow 从表行重建聚合。关系集合由仓储查询关联表后注入，
// 聚合构造器不做水合。
func VideoFromRow(row po.Video, media, trailer *po.Media, relations po.VideoRelations) *entities.Video {
	video := &entities.Video{
		ID:           row.VideoID,
		Title:        row.Title,
		Description:  row.Description,
		YearLaunched: int(row.YearLaunched),
		Opened:       row.Opened,
		Published:    row.Published,
		Duration:     row.Duration,
		Rating:       entities.Rating(row.Rating),
		CreatedAt:    row.CreatedAt,
	}
	if row.ThumbPath != nil {
		video.Thumb = entities.NewImage(*row.ThumbPath)
	}
	if row.ThumbHalfPath != nil {
		video.ThumbHalf = entities.NewImage(*row.ThumbHalfPath)
	}
	if row.BannerPath != nil {
		video.Banner = entities.NewImage(*row.BannerPath)
	}
	video.Media = mediaFromRow(media)
	video.Trailer = mediaFromRow(trailer)
	video.SetCategories(relations.Categories)
	video.SetGenres(relations.Genres)
	video.SetCastMembers(relations.CastMembers)
	return video
}

func mediaFromRow(row *po.Media) *entities.Media {
	if row == nil {
		return nil
	}
	return &entities.Media{
		ID:          row.MediaID,
		FilePath:    row.FilePath,
		EncodedPath: row.EncodedPath,
		Status:      entities.MediaStatus(row.Status),
	}
}

// MediaIDOrNil 返回媒体行外键指针，供仓储做前后对比。
func MediaIDOrNil(media *entities.Media) *uuid.UUID {
	if media == nil {
		return nil
	}
	id := media.ID
	return &id
}
