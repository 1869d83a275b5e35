package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoQueryService 提供视频读取与分页检索。
type VideoQueryService struct {
	videos VideosRepository
	log    *log.Helper
}

// NewVideoQueryService 构造 VideoQueryService。
func NewVideoQueryService(videos VideosRepository, logger log.Logger) *VideoQueryService {
	return &VideoQueryService{
		videos: videos,
		log:    log.NewHelper(logger),
	}
}

// Get 返回单个视频的完整视图。
func (s *VideoQueryService) Get(ctx context.Context, videoID uuid.UUID) (*vo.VideoOutput, error) {
	video, err := s.videos.Get(ctx, nil, videoID)
	if err != nil {
		return nil, err
	}
	return vo.NewVideoOutput(video), nil
}

// Search 执行标题模糊检索并返回分页结果。Total 为忽略分页的总数。
func (s *VideoQueryService) Search(ctx context.Context, input vo.SearchInput) (*vo.SearchOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PerPage < 1 {
		input.PerPage = 15
	}

	videos, total, err := s.videos.Search(ctx, nil, input)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	items := make([]*vo.VideoOutput, 0, len(videos))
	for _, video := range videos {
		items = append(items, vo.NewVideoOutput(video))
	}
	return &vo.SearchOutput{
		Items:   items,
		Total:   total,
		Page:    input.Page,
		PerPage: input.PerPage,
	}, nil
}
