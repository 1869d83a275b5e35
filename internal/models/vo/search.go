package vo

// SearchOrder 表示排序方向。
type SearchOrder string

// 排序方向常量。
const (
	SearchOrderAsc  SearchOrder = "asc"
	SearchOrderDesc SearchOrder = "desc"
)

// SearchInput 描述分页查询参数。OrderBy 支持 title|id|createdAt，
// 未识别或为空时回落到 title 升序（并以 id 做稳定次序）。
type SearchInput struct {
	Page    int
	PerPage int
	Search  string
	OrderBy string
	Order   SearchOrder
}

// SearchOutput 封装分页查询结果；Total 为忽略分页的命中总数。
type SearchOutput struct {
	Items   []*VideoOutput `json:"items"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}
