package po

import "github.com/google/uuid"

// Category 映射 catalog.categories 表中读取路径需要的字段。
// 分类自身的 CRUD 属于其它服务，这里只做引用校验与展示补全。
type Category struct {
	CategoryID uuid.UUID
	Name       string
}

// Genre 映射 catalog.genres 表中读取路径需要的字段。
type Genre struct {
	GenreID uuid.UUID
	Name    string
}

// CastMember 映射 catalog.cast_members 表中读取路径需要的字段。
type CastMember struct {
	CastMemberID uuid.UUID
	Name         string
}
