package repositories

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GenreRepository 提供类型聚合的只读访问，用于外部引用校验。
type GenreRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewGenreRepository 构造 GenreRepository 实例（供 Wire 注入使用）。
func NewGenreRepository(db *pgxpool.Pool, logger log.Logger) *GenreRepository {
	return &GenreRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

func (r *GenreRepository) conn(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.db
}

// GetIdsListByIds 返回给定集合中实际存在的类型 id。
func (r *GenreRepository) GetIdsListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(sess).Query(ctx,
		`SELECT genre_id FROM catalog.genres WHERE genre_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("query genre ids: %w", err)
	}
	found, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan genre ids: %w", err)
	}
	return found, nil
}

// GetListByIds 返回给定集合中存在的类型行。
func (r *GenreRepository) GetListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]po.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(sess).Query(ctx,
		`SELECT genre_id, name FROM catalog.genres WHERE genre_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var items []po.Genre
	for rows.Next() {
		var item po.Genre
		if err := rows.Scan(&item.GenreID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
