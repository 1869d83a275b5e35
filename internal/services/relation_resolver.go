package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoRelationsInput 描述一次请求携带的关系集合。
// 指针语义：nil 表示保持现状，空切片表示清空，非空表示整体替换。
type VideoRelationsInput struct {
	Categories  *[]uuid.UUID
	Genres      *[]uuid.UUID
	CastMembers *[]uuid.UUID
}

// RelationResolver 校验外部聚合引用的存在性，并把通过校验的
// 集合应用到聚合上。任何集合存在缺失 id 时整个请求失败，
// 不做部分应用。
type RelationResolver struct {
	categories  CategoriesRepository
	genres      GenresRepository
	castMembers CastMembersRepository
	log         *log.Helper
}

// NewRelationResolver 构造 RelationResolver。
func NewRelationResolver(
	categories CategoriesRepository,
	genres GenresRepository,
	castMembers CastMembersRepository,
	logger log.Logger,
) *RelationResolver {
	return &RelationResolver{
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		log:         log.NewHelper(logger),
	}
}

// Resolve 对三类关系依次执行校验并应用到聚合。先完成全部校验
// 再做任何修改，保证失败时聚合保持原状。
func (r *RelationResolver) Resolve(ctx context.Context, video *entities.Video, input VideoRelationsInput) error {
	resolved := make([]func(), 0, 3)

	if input.Categories != nil {
		ids, err := r.checkExists(ctx, "category", *input.Categories, r.categories.GetIdsListByIds)
		if err != nil {
			return err
		}
		resolved = append(resolved, func() { video.SetCategories(ids) })
	}
	if input.Genres != nil {
		ids, err := r.checkExists(ctx, "genre", *input.Genres, r.genres.GetIdsListByIds)
		if err != nil {
			return err
		}
		resolved = append(resolved, func() { video.SetGenres(ids) })
	}
	if input.CastMembers != nil {
		ids, err := r.checkExists(ctx, "cast member", *input.CastMembers, r.castMembers.GetIdsListByIds)
		if err != nil {
			return err
		}
		resolved = append(resolved, func() { video.SetCastMembers(ids) })
	}

	for _, apply := range resolved {
		apply()
	}
	return nil
}

// checkExists 去重后查询实际存在的 id，缺失 id 按输入顺序汇总进错误消息。
func (r *RelationResolver) checkExists(
	ctx context.Context,
	kind string,
	requested []uuid.UUID,
	lookup func(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error),
) ([]uuid.UUID, error) {
	deduped := dedupe(requested)
	if len(deduped) == 0 {
		return nil, nil
	}

	found, err := lookup(ctx, nil, deduped)
	if err != nil {
		return nil, fmt.Errorf("resolve %s ids: %w", kind, err)
	}

	exists := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		exists[id] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range deduped {
		if _, ok := exists[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, entities.NewRelatedAggregateError(kind, missing)
	}
	return deduped, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
