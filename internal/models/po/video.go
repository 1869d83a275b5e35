// Package po 定义面向持久化的数据对象（Persistent Objects），由 Repository 层使用。
// PO 对象映射数据库表结构，不直接暴露给上层业务逻辑。
package po

import (
	"time"

	"github.com/google/uuid"
)

// Video 映射 catalog.videos 表的一行。
// 图片类附件（封面/半图/横幅）没有转码状态机，以裸路径内联存储；
// 主媒体与预告片以可空外键指向 catalog.media。
type Video struct {
	VideoID       uuid.UUID
	Title         string
	Description   string
	YearLaunched  int32
	Opened        bool
	Published     bool
	Duration      float64
	Rating        string
	ThumbPath     *string
	ThumbHalfPath *string
	BannerPath    *string
	MediaID       *uuid.UUID
	TrailerID     *uuid.UUID
	CreatedAt     time.Time
}

// VideoRelations 聚合三张关联表中某个视频的全部外部引用 id。
type VideoRelations struct {
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}
