// Package repositories 实现数据访问层，基于 pgx 手写查询。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"
	"github.com/bionicotaku/lingo-services-media/internal/repositories/mappers"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx 同时被 *pgxpool.Pool 与 pgx.Tx 满足，仓储据此在事务内外复用同一套查询。
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// relationTable 描述一张关联表的静态元数据。
type relationTable struct {
	table  string
	column string
}

// 三类关系对应的关联表。表名为常量拼接，不接受外部输入。
var (
	categoryRelation   = relationTable{table: "catalog.video_categories", column: "category_id"}
	genreRelation      = relationTable{table: "catalog.video_genres", column: "genre_id"}
	castMemberRelation = relationTable{table: "catalog.video_cast_members", column: "cast_member_id"}
)

// VideoRepository 提供视频聚合的持久化访问能力。
type VideoRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewVideoRepository 构造 VideoRepository 实例（供 Wire 注入使用）。
func NewVideoRepository(db *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

func (r *VideoRepository) conn(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.db
}

// Insert 写入聚合行、媒体行以及全部关联行。
func (r *VideoRepository) Insert(ctx context.Context, sess txmanager.Session, video *entities.Video) error {
	q := r.conn(sess)

	if video.Media != nil {
		if err := upsertMedia(ctx, q, mappers.MediaToRow(video.Media)); err != nil {
			return fmt.Errorf("insert media row: %w", err)
		}
	}
	if video.Trailer != nil {
		if err := upsertMedia(ctx, q, mappers.MediaToRow(video.Trailer)); err != nil {
			return fmt.Errorf("insert trailer row: %w", err)
		}
	}

	row := mappers.VideoToRow(video)
	_, err := q.Exec(ctx, `
		INSERT INTO catalog.videos (
			video_id, title, description, year_launched, opened, published,
			duration, rating, thumb_path, thumb_half_path, banner_path,
			media_id, trailer_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		row.VideoID, row.Title, row.Description, row.YearLaunched, row.Opened, row.Published,
		row.Duration, row.Rating, row.ThumbPath, row.ThumbHalfPath, row.BannerPath,
		row.MediaID, row.TrailerID, row.CreatedAt,
	)
	if err != nil {
		r.log.WithContext(ctx).Errorf("insert video failed: video_id=%s err=%v", row.VideoID, err)
		return fmt.Errorf("insert video: %w", err)
	}

	if err := r.replaceRelations(ctx, q, video); err != nil {
		return err
	}

	r.log.WithContext(ctx).Infof("video inserted: video_id=%s title=%s", row.VideoID, row.Title)
	return nil
}

// Update 更新聚合行，并以 delete-then-reinsert 方式全量重写各关联表，
// 保证存储集合与内存集合严格一致。被替换且不再被引用的媒体行在此回收：
// 通过显式对比更新前后的外键判定孤儿，不依赖任何隐式变更追踪。
func (r *VideoRepository) Update(ctx context.Context, sess txmanager.Session, video *entities.Video) error {
	q := r.conn(sess)

	var prevMediaID, prevTrailerID *uuid.UUID
	err := q.QueryRow(ctx,
		`SELECT media_id, trailer_id FROM catalog.videos WHERE video_id = $1`,
		video.ID,
	).Scan(&prevMediaID, &prevTrailerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.NewNotFoundError(entities.AggregateTypeVideo, video.ID)
		}
		return fmt.Errorf("load previous media refs: %w", err)
	}

	if video.Media != nil {
		if err := upsertMedia(ctx, q, mappers.MediaToRow(video.Media)); err != nil {
			return fmt.Errorf("upsert media row: %w", err)
		}
	}
	if video.Trailer != nil {
		if err := upsertMedia(ctx, q, mappers.MediaToRow(video.Trailer)); err != nil {
			return fmt.Errorf("upsert trailer row: %w", err)
		}
	}

	row := mappers.VideoToRow(video)
	tag, err := q.Exec(ctx, `
		UPDATE catalog.videos SET
			title = $2, description = $3, year_launched = $4, opened = $5,
			published = $6, duration = $7, rating = $8, thumb_path = $9,
			thumb_half_path = $10, banner_path = $11, media_id = $12, trailer_id = $13
		WHERE video_id = $1`,
		row.VideoID, row.Title, row.Description, row.YearLaunched, row.Opened,
		row.Published, row.Duration, row.Rating, row.ThumbPath,
		row.ThumbHalfPath, row.BannerPath, row.MediaID, row.TrailerID,
	)
	if err != nil {
		r.log.WithContext(ctx).Errorf("update video failed: video_id=%s err=%v", row.VideoID, err)
		return fmt.Errorf("update video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.NewNotFoundError(entities.AggregateTypeVideo, video.ID)
	}

	for _, rel := range []relationTable{categoryRelation, genreRelation, castMemberRelation} {
		if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE video_id = $1`, rel.table), video.ID); err != nil {
			return fmt.Errorf("clear %s: %w", rel.table, err)
		}
	}
	if err := r.replaceRelations(ctx, q, video); err != nil {
		return err
	}

	if err := deleteOrphanMedia(ctx, q, prevMediaID, mappers.MediaIDOrNil(video.Media)); err != nil {
		return err
	}
	if err := deleteOrphanMedia(ctx, q, prevTrailerID, mappers.MediaIDOrNil(video.Trailer)); err != nil {
		return err
	}

	r.log.WithContext(ctx).Infof("video updated: video_id=%s", row.VideoID)
	return nil
}

// Get 加载聚合行与媒体行，再单独加载三类关系 id 并回填到聚合上。
func (r *VideoRepository) Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*entities.Video, error) {
	q := r.conn(sess)

	row, media, trailer, err := scanVideo(q.QueryRow(ctx, `
		SELECT v.video_id, v.title, v.description, v.year_launched, v.opened,
			v.published, v.duration, v.rating, v.thumb_path, v.thumb_half_path,
			v.banner_path, v.media_id, v.trailer_id, v.created_at,
			m.file_path, m.encoded_path, m.status,
			t.file_path, t.encoded_path, t.status
		FROM catalog.videos v
		LEFT JOIN catalog.media m ON m.media_id = v.media_id
		LEFT JOIN catalog.media t ON t.media_id = v.trailer_id
		WHERE v.video_id = $1`, videoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFoundError(entities.AggregateTypeVideo, videoID)
		}
		r.log.WithContext(ctx).Errorf("get video failed: video_id=%s err=%v", videoID, err)
		return nil, fmt.Errorf("get video: %w", err)
	}

	relations, err := r.loadRelations(ctx, q, videoID)
	if err != nil {
		return nil, err
	}
	return mappers.VideoFromRow(row, media, trailer, relations), nil
}

// Delete 删除三类关联行、聚合行以及其拥有的媒体行。
func (r *VideoRepository) Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error {
	q := r.conn(sess)

	var mediaID, trailerID *uuid.UUID
	err := q.QueryRow(ctx,
		`SELECT media_id, trailer_id FROM catalog.videos WHERE video_id = $1`,
		videoID,
	).Scan(&mediaID, &trailerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.NewNotFoundError(entities.AggregateTypeVideo, videoID)
		}
		return fmt.Errorf("load video for delete: %w", err)
	}

	for _, rel := range []relationTable{categoryRelation, genreRelation, castMemberRelation} {
		if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE video_id = $1`, rel.table), videoID); err != nil {
			return fmt.Errorf("delete %s: %w", rel.table, err)
		}
	}
	if _, err := q.Exec(ctx, `DELETE FROM catalog.videos WHERE video_id = $1`, videoID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	for _, id := range []*uuid.UUID{mediaID, trailerID} {
		if id == nil {
			continue
		}
		if _, err := q.Exec(ctx, `DELETE FROM catalog.media WHERE media_id = $1`, *id); err != nil {
			return fmt.Errorf("delete media row: %w", err)
		}
	}

	r.log.WithContext(ctx).Infof("video deleted: video_id=%s", videoID)
	return nil
}

// searchOrderClauses 限定可用的排序键，title/createdAt 以 video_id 做稳定次序。
var searchOrderClauses = map[string]map[vo.SearchOrder]string{
	"title": {
		vo.SearchOrderAsc:  "title ASC, video_id ASC",
		vo.SearchOrderDesc: "title DESC, video_id ASC",
	},
	"id": {
		vo.SearchOrderAsc:  "video_id ASC",
		vo.SearchOrderDesc: "video_id DESC",
	},
	"createdAt": {
		vo.SearchOrderAsc:  "created_at ASC, video_id ASC",
		vo.SearchOrderDesc: "created_at DESC, video_id ASC",
	},
}

// Search 对标题做大小写不敏感的子串匹配，返回分页条目与忽略分页的总数。
// 每个条目的关系集合按 Get 相同的方式水合。
func (r *VideoRepository) Search(ctx context.Context, sess txmanager.Session, input vo.SearchInput) ([]*entities.Video, int64, error) {
	q := r.conn(sess)

	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = 15
	}

	directions, ok := searchOrderClauses[input.OrderBy]
	if !ok {
		directions = searchOrderClauses["title"]
	}
	orderClause, ok := directions[input.Order]
	if !ok {
		orderClause = directions[vo.SearchOrderAsc]
	}

	var total int64
	err := q.QueryRow(ctx, `
		SELECT count(*) FROM catalog.videos
		WHERE $1 = '' OR title ILIKE '%' || $1 || '%'`, input.Search,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	rows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT v.video_id, v.title, v.description, v.year_launched, v.opened,
			v.published, v.duration, v.rating, v.thumb_path, v.thumb_half_path,
			v.banner_path, v.media_id, v.trailer_id, v.created_at,
			m.file_path, m.encoded_path, m.status,
			t.file_path, t.encoded_path, t.status
		FROM catalog.videos v
		LEFT JOIN catalog.media m ON m.media_id = v.media_id
		LEFT JOIN catalog.media t ON t.media_id = v.trailer_id
		WHERE $1 = '' OR v.title ILIKE '%%' || $1 || '%%'
		ORDER BY %s
		LIMIT $2 OFFSET $3`, orderClause),
		input.Search, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search videos: %w", err)
	}
	defer rows.Close()

	var items []*entities.Video
	for rows.Next() {
		row, media, trailer, scanErr := scanVideo(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan video: %w", scanErr)
		}
		items = append(items, mappers.VideoFromRow(row, media, trailer, po.VideoRelations{}))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate videos: %w", err)
	}

	if err := r.hydrateRelations(ctx, q, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// replaceRelations 为每个非空关系集合写入关联行。
func (r *VideoRepository) replaceRelations(ctx context.Context, q dbtx, video *entities.Video) error {
	for _, pair := range []struct {
		rel relationTable
		ids []uuid.UUID
	}{
		{categoryRelation, video.Categories()},
		{genreRelation, video.Genres()},
		{castMemberRelation, video.CastMembers()},
	} {
		if len(pair.ids) == 0 {
			continue
		}
		_, err := q.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (%s, video_id)
			SELECT unnest($1::uuid[]), $2
			ON CONFLICT DO NOTHING`, pair.rel.table, pair.rel.column),
			pair.ids, video.ID,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", pair.rel.table, err)
		}
	}
	return nil
}

func (r *VideoRepository) loadRelations(ctx context.Context, q dbtx, videoID uuid.UUID) (po.VideoRelations, error) {
	var relations po.VideoRelations
	for _, pair := range []struct {
		rel  relationTable
		dest *[]uuid.UUID
	}{
		{categoryRelation, &relations.Categories},
		{genreRelation, &relations.Genres},
		{castMemberRelation, &relations.CastMembers},
	} {
		rows, err := q.Query(ctx, fmt.Sprintf(
			`SELECT %s FROM %s WHERE video_id = $1`, pair.rel.column, pair.rel.table), videoID)
		if err != nil {
			return po.VideoRelations{}, fmt.Errorf("load %s: %w", pair.rel.table, err)
		}
		ids, err := collectIDs(rows)
		if err != nil {
			return po.VideoRelations{}, fmt.Errorf("scan %s: %w", pair.rel.table, err)
		}
		*pair.dest = ids
	}
	return relations, nil
}

// hydrateRelations 以单次批量查询为一页条目回填关系集合。
func (r *VideoRepository) hydrateRelations(ctx context.Context, q dbtx, items []*entities.Video) error {
	if len(items) == 0 {
		return nil
	}
	videoIDs := make([]uuid.UUID, len(items))
	byID := make(map[uuid.UUID]*entities.Video, len(items))
	for i, item := range items {
		videoIDs[i] = item.ID
		byID[item.ID] = item
	}

	for _, pair := range []struct {
		rel   relationTable
		apply func(v *entities.Video, id uuid.UUID)
	}{
		{categoryRelation, func(v *entities.Video, id uuid.UUID) { v.AddCategory(id) }},
		{genreRelation, func(v *entities.Video, id uuid.UUID) { v.AddGenre(id) }},
		{castMemberRelation, func(v *entities.Video, id uuid.UUID) { v.AddCastMember(id) }},
	} {
		rows, err := q.Query(ctx, fmt.Sprintf(
			`SELECT video_id, %s FROM %s WHERE video_id = ANY($1::uuid[])`,
			pair.rel.column, pair.rel.table), videoIDs)
		if err != nil {
			return fmt.Errorf("hydrate %s: %w", pair.rel.table, err)
		}
		for rows.Next() {
			var videoID, relatedID uuid.UUID
			if err := rows.Scan(&videoID, &relatedID); err != nil {
				rows.Close()
				return fmt.Errorf("scan %s: %w", pair.rel.table, err)
			}
			if video, ok := byID[videoID]; ok {
				pair.apply(video, relatedID)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("iterate %s: %w", pair.rel.table, err)
		}
		rows.Close()
	}
	return nil
}

func upsertMedia(ctx context.Context, q dbtx, row po.Media) error {
	_, err := q.Exec(ctx, `
		INSERT INTO catalog.media (media_id, file_path, encoded_path, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (media_id) DO UPDATE SET
			file_path = EXCLUDED.file_path,
			encoded_path = EXCLUDED.encoded_path,
			status = EXCLUDED.status`,
		row.MediaID, row.FilePath, row.EncodedPath, row.Status,
	)
	return err
}

// deleteOrphanMedia 在旧外键存在且不再被当前聚合引用时删除旧媒体行。
func deleteOrphanMedia(ctx context.Context, q dbtx, previous, current *uuid.UUID) error {
	if previous == nil {
		return nil
	}
	if current != nil && *current == *previous {
		return nil
	}
	if _, err := q.Exec(ctx, `DELETE FROM catalog.media WHERE media_id = $1`, *previous); err != nil {
		return fmt.Errorf("delete orphan media: %w", err)
	}
	return nil
}

func scanVideo(row pgx.Row) (po.Video, *po.Media, *po.Media, error) {
	var (
		v                                      po.Video
		mediaPath, mediaEncoded, mediaStatus   *string
		trailPath, trailEncoded, trailerStatus *string
	)
	err := row.Scan(
		&v.VideoID, &v.Title, &v.Description, &v.YearLaunched, &v.Opened,
		&v.Published, &v.Duration, &v.Rating, &v.ThumbPath, &v.ThumbHalfPath,
		&v.BannerPath, &v.MediaID, &v.TrailerID, &v.CreatedAt,
		&mediaPath, &mediaEncoded, &mediaStatus,
		&trailPath, &trailEncoded, &trailerStatus,
	)
	if err != nil {
		return po.Video{}, nil, nil, err
	}

	var media, trailer *po.Media
	if v.MediaID != nil && mediaPath != nil {
		media = &po.Media{MediaID: *v.MediaID, FilePath: *mediaPath, EncodedPath: mediaEncoded, Status: derefString(mediaStatus)}
	}
	if v.TrailerID != nil && trailPath != nil {
		trailer = &po.Media{MediaID: *v.TrailerID, FilePath: *trailPath, EncodedPath: trailEncoded, Status: derefString(trailerStatus)}
	}
	return v, media, trailer, nil
}

func collectIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
