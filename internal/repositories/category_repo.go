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

// CategoryRepository 提供分类聚合的只读访问，用于外部引用校验。
type CategoryRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewCategoryRepository 构造 CategoryRepository 实例（供 Wire 注入使用）。
func NewCategoryRepository(db *pgxpool.Pool, logger log.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

func (r *CategoryRepository) conn(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.db
}

// GetIdsListByIds 返回给定集合中实际存在的分类 id。
func (r *CategoryRepository) GetIdsListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(sess).Query(ctx,
		`SELECT category_id FROM catalog.categories WHERE category_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("query category ids: %w", err)
	}
	found, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan category ids: %w", err)
	}
	return found, nil
}

// GetListByIds 返回给定集合中存在的分类行。
func (r *CategoryRepository) GetListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]po.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(sess).Query(ctx,
		`SELECT category_id, name FROM catalog.categories WHERE category_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var items []po.Category
	for rows.Next() {
		var item po.Category
		if err := rows.Scan(&item.CategoryID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
