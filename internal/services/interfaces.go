// Package services 承载媒体目录的用例层：聚合构建、关系解析、
// 对象存储上传编排以及事务内持久化与 Outbox 写入。
package services

import (
	"context"
	"io"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// VideosRepository 抽象视频聚合仓储行为，便于测试替换。
type VideosRepository interface {
	Insert(ctx context.Context, sess txmanager.Session, video *entities.Video) error
	Update(ctx context.Context, sess txmanager.Session, video *entities.Video) error
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*entities.Video, error)
	Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error
	Search(ctx context.Context, sess txmanager.Session, input vo.SearchInput) ([]*entities.Video, int64, error)
}

// CategoriesRepository 抽象分类引用校验。
type CategoriesRepository interface {
	GetIdsListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error)
}

// GenresRepository 抽象题材引用校验。
type GenresRepository interface {
	GetIdsListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error)
}

// CastMembersRepository 抽象演职人员引用校验。
type CastMembersRepository interface {
	GetIdsListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error)
}

// OutboxEnqueuer 定义事务内写 Outbox 的接口。
type OutboxEnqueuer interface {
	Enqueue(ctx context.Context, sess txmanager.Session, msg repositories.OutboxMessage) error
}

// StorageGateway 抽象对象存储。Upload 返回对象的存储路径。
type StorageGateway interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// FileInput 描述一个待上传的文件。
type FileInput struct {
	Extension   string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateVideoUseCase 抽象创建视频用例。
type CreateVideoUseCase interface {
	Create(ctx context.Context, input CreateVideoInput) (*vo.VideoOutput, error)
}

// UpdateVideoUseCase 抽象更新视频用例。
type UpdateVideoUseCase interface {
	Update(ctx context.Context, input UpdateVideoInput) (*vo.VideoOutput, error)
}

// UploadMediasUseCase 抽象媒体补传用例。
type UploadMediasUseCase interface {
	Upload(ctx context.Context, input UploadMediasInput) error
}

// VideoQueryUseCase 抽象查询用例。
type VideoQueryUseCase interface {
	Get(ctx context.Context, videoID uuid.UUID) (*vo.VideoOutput, error)
	Search(ctx context.Context, input vo.SearchInput) (*vo.SearchOutput, error)
}

// DeleteVideoUseCase 抽象删除用例。
type DeleteVideoUseCase interface {
	Delete(ctx context.Context, videoID uuid.UUID) error
}

var (
	_ CreateVideoUseCase  = (*CreateVideoService)(nil)
	_ UpdateVideoUseCase  = (*UpdateVideoService)(nil)
	_ UploadMediasUseCase = (*UploadMediasService)(nil)
	_ VideoQueryUseCase   = (*VideoQueryService)(nil)
	_ DeleteVideoUseCase  = (*DeleteVideoService)(nil)
)
