package entities

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntityValidationError 表示聚合不变量被违反，携带全部违反规则的信息而非仅首条。
type EntityValidationError struct {
	Violations []string
}

// NewEntityValidationError 构造校验错误。
func NewEntityValidationError(violations ...string) *EntityValidationError {
	return &EntityValidationError{Violations: violations}
}

func (e *EntityValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "entity validation failed"
	}
	return "entity validation failed: " + strings.Join(e.Violations, "; ")
}

// NotFoundError 表示请求的聚合不存在。
type NotFoundError struct {
	AggregateType string
	ID            uuid.UUID
}

// NewNotFoundError 构造 NotFoundError。
func NewNotFoundError(aggregateType string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{AggregateType: aggregateType, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found.", e.AggregateType, e.ID)
}

// RelatedAggregateError 表示请求引用的外部聚合 id 不存在。
// 消息中包含关系种类与所有缺失的 id（按输入顺序）。
type RelatedAggregateError struct {
	Message string
}

// NewRelatedAggregateError 按照约定格式组装缺失引用错误。
func NewRelatedAggregateError(kind string, missing []uuid.UUID) *RelatedAggregateError {
	ids := make([]string, len(missing))
	for i, id := range missing {
		ids[i] = id.String()
	}
	return &RelatedAggregateError{
		Message: fmt.Sprintf("Related %s id (or ids) not found: %s.", kind, strings.Join(ids, ", ")),
	}
}

func (e *RelatedAggregateError) Error() string {
	return e.Message
}
