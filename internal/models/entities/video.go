// Package entities 定义媒体目录的领域实体。Video 是聚合根：
// 自身维护标题/描述等不变量，持有图片与媒体附件，并以弱引用
// （仅 id 集合）关联分类、题材与演职人员聚合。
package entities

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// AggregateTypeVideo 标识 Video 聚合类型。
const AggregateTypeVideo = "Video"

// 校验边界常量。
const (
	maxTitleLength       = 255
	maxDescriptionLength = 4000
)

// Video 聚合根。关系集合只保存外部聚合的 id，不加载对象图；
// 解析与校验由 Relation Resolver 显式完成。
type Video struct {
	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     float64
	Rating       Rating
	CreatedAt    time.Time

	Thumb     *Image
	ThumbHalf *Image
	Banner    *Image
	Media     *Media
	Trailer   *Media

	categories  []uuid.UUID
	genres      []uuid.UUID
	castMembers []uuid.UUID

	events []DomainEvent
}

// NewVideo 构造并校验聚合。校验失败时将所有违反的规则
// 汇总在同一个 *EntityValidationError 中返回。
func NewVideo(title, description string, opened, published bool, yearLaunched int, duration float64, rating Rating) (*Video, error) {
	video := &Video{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		YearLaunched: yearLaunched,
		Opened:       opened,
		Published:    published,
		Duration:     duration,
		Rating:       rating,
		CreatedAt:    time.Now().UTC(),
	}

	notification := NewNotification()
	video.Validate(notification)
	if err := notification.AsError(); err != nil {
		return nil, err
	}
	return video, nil
}

// Update 执行部分更新：rating 传 nil 时保持原值。先在副本上校验全部
// 不变量，校验失败时聚合保持更新前的状态。
func (v *Video) Update(title, description string, opened, published bool, yearLaunched int, duration float64, rating *Rating) error {
	next := *v
	next.Title = title
	next.Description = description
	next.Opened = opened
	next.Published = published
	next.YearLaunched = yearLaunched
	next.Duration = duration
	if rating != nil {
		next.Rating = *rating
	}

	notification := NewNotification()
	next.Validate(notification)
	if err := notification.AsError(); err != nil {
		return err
	}
	*v = next
	return nil
}

// Validate 将所有不变量检查结果写入调用方提供的 Notification，
// 供需要非异常式校验的调用方（如周期性重检）复用。
func (v *Video) Validate(notification *Notification) {
	if v.Title == "" {
		notification.AddError("'Title' should not be empty or null")
	}
	if utf8.RuneCountInString(v.Title) > maxTitleLength {
		notification.AddError(fmt.Sprintf("'Title' should be less or equal %d characters long", maxTitleLength))
	}
	if v.Description == "" {
		notification.AddError("'Description' should not be empty or null")
	}
	if utf8.RuneCountInString(v.Description) > maxDescriptionLength {
		notification.AddError(fmt.Sprintf("'Description' should be less or equal %d characters long", maxDescriptionLength))
	}
	if v.Rating != "" && !v.Rating.IsValid() {
		notification.AddError(fmt.Sprintf("'Rating' has unknown value '%s'", v.Rating))
	}
}

// Categories 返回分类 id 集合的拷贝。
func (v *Video) Categories() []uuid.UUID {
	return copyIDs(v.categories)
}

// Genres 返回题材 id 集合的拷贝。
func (v *Video) Genres() []uuid.UUID {
	return copyIDs(v.genres)
}

// CastMembers 返回演职人员 id 集合的拷贝。
func (v *Video) CastMembers() []uuid.UUID {
	return copyIDs(v.castMembers)
}

// AddCategory 幂等地加入分类引用，重复加入是 no-op。
func (v *Video) AddCategory(id uuid.UUID) {
	v.categories = appendUnique(v.categories, id)
}

// RemoveCategory 幂等地移除分类引用。
func (v *Video) RemoveCategory(id uuid.UUID) {
	v.categories = removeID(v.categories, id)
}

// RemoveAllCategories 清空分类引用。
func (v *Video) RemoveAllCategories() {
	v.categories = nil
}

// AddGenre 幂等地加入题材引用。
func (v *Video) AddGenre(id uuid.UUID) {
	v.genres = appendUnique(v.genres, id)
}

// RemoveGenre 幂等地移除题材引用。
func (v *Video) RemoveGenre(id uuid.UUID) {
	v.genres = removeID(v.genres, id)
}

// RemoveAllGenres 清空题材引用。
func (v *Video) RemoveAllGenres() {
	v.genres = nil
}

// AddCastMember 幂等地加入演职人员引用。
func (v *Video) AddCastMember(id uuid.UUID) {
	v.castMembers = appendUnique(v.castMembers, id)
}

// RemoveCastMember 幂等地移除演职人员引用。
func (v *Video) RemoveCastMember(id uuid.UUID) {
	v.castMembers = removeID(v.castMembers, id)
}

// RemoveAllCastMembers 清空演职人员引用。
func (v *Video) RemoveAllCastMembers() {
	v.castMembers = nil
}

// SetCategories 以去重后的完整集合替换分类引用。
// 仓储加载后回填关系时也使用本方法（聚合构造器不负责水合关系）。
func (v *Video) SetCategories(ids []uuid.UUID) {
	v.categories = dedupeIDs(ids)
}

// SetGenres 以去重后的完整集合替换题材引用。
func (v *Video) SetGenres(ids []uuid.UUID) {
	v.genres = dedupeIDs(ids)
}

// SetCastMembers 以去重后的完整集合替换演职人员引用。
func (v *Video) SetCastMembers(ids []uuid.UUID) {
	v.castMembers = dedupeIDs(ids)
}

// UpdateThumb 替换或创建封面图。
func (v *Video) UpdateThumb(path string) {
	v.Thumb = NewImage(path)
}

// UpdateThumbHalf 替换或创建半尺寸封面图。
func (v *Video) UpdateThumbHalf(path string) {
	v.ThumbHalf = NewImage(path)
}

// UpdateBanner 替换或创建横幅图。
func (v *Video) UpdateBanner(path string) {
	v.Banner = NewImage(path)
}

// UpdateMedia 替换或创建主媒体文件，并在聚合上排队 media-updated 事件，
// 下游转码触发由此与同步请求路径解耦。
func (v *Video) UpdateMedia(path string) {
	v.Media = NewMedia(path)
	v.RaiseEvent(VideoMediaUpdated{
		VideoID:    v.ID,
		FilePath:   path,
		OccurredAt: time.Now().UTC(),
	})
}

// UpdateTrailer 替换或创建预告片媒体。
func (v *Video) UpdateTrailer(path string) {
	v.Trailer = NewMedia(path)
}

// UpdateAsSentToEncode 将主媒体标记为已送转码；主媒体不存在时报校验错误。
func (v *Video) UpdateAsSentToEncode() error {
	if v.Media == nil {
		return NewEntityValidationError("There is no Media")
	}
	v.Media.UpdateAsSentToEncode()
	return nil
}

// UpdateAsEncoded 记录转码完成路径；主媒体不存在时报校验错误。
func (v *Video) UpdateAsEncoded(encodedPath string) error {
	if v.Media == nil {
		return NewEntityValidationError("There is no Media")
	}
	v.Media.UpdateAsEncoded(encodedPath)
	return nil
}

// UpdateAsEncodingError 标记转码失败；主媒体不存在时报校验错误。
func (v *Video) UpdateAsEncodingError() error {
	if v.Media == nil {
		return NewEntityValidationError("There is no Media")
	}
	v.Media.UpdateAsEncodingError()
	return nil
}

// RaiseEvent 将领域事件加入聚合队列。
func (v *Video) RaiseEvent(event DomainEvent) {
	v.events = append(v.events, event)
}

// Events 返回当前排队的领域事件。
func (v *Video) Events() []DomainEvent {
	out := make([]DomainEvent, len(v.events))
	copy(out, v.events)
	return out
}

// ClearEvents 清空事件队列，由持久化流程在事件写入 Outbox 后调用。
func (v *Video) ClearEvents() {
	v.events = nil
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = appendUnique(out, id)
	}
	return out
}

func copyIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out
}
