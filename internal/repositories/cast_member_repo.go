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

// CastMemberRepository 提供演职人员聚合的只读访问，用于外部引用校验。
type CastMemberRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewCastMemberRepository 构造 CastMemberRepository 实例（供 Wire 注入使用）。
func NewCastMemberRepository(db *pgxpool.Pool, logger log.Logger) *CastMemberRepository {
	return &CastMemberRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

func (r *CastMemberRepository) conn(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.db
}

// GetIdsListByIds 返回给定集合中实际存在的演职人员 id。
func (r *CastMemberRepository) GetIdsListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(sess).Query(ctx,
		`SELECT cast_member_id FROM catalog.cast_members WHERE cast_member_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("query cast member ids: %w", err)
	}
	found, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan cast member ids: %w", err)
	}
	return found, nil
}

// GetListByIds 返回给定集合中存在的演职人员行。
func (r *CastMemberRepository) GetListByIds(ctx context.Context, sess txmanager.Session, ids []uuid.UUID) ([]po.CastMember, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(sess).Query(ctx,
		`SELECT cast_member_id, name FROM catalog.cast_members WHERE cast_member_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("query cast members: %w", err)
	}
	defer rows.Close()

	var items []po.CastMember
	for rows.Next() {
		var item po.CastMember
		if err := rows.Scan(&item.CastMemberID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan cast member: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
