package util

import (
	"context"

	"github.com/google/uuid"
)

// contextKey 是一个私有类型，用于避免 context key 的冲突
type contextKey string

const searchIDKey contextKey = "searchID"

// NewSearchID 生成一个唯一的搜索 ID
// 用于在日志中串联一次价格搜索的所有尝试
func NewSearchID() string {
	return uuid.NewString()
}

// ContextWithSearchID 将搜索 ID 注入到 Context 中，并返回一个新的 Context
func ContextWithSearchID(ctx context.Context, searchID string) context.Context {
	return context.WithValue(ctx, searchIDKey, searchID)
}

// SearchIDFromContext 从 Context 中提取搜索 ID
func SearchIDFromContext(ctx context.Context) (string, bool) {
	searchID, ok := ctx.Value(searchIDKey).(string)
	return searchID, ok && searchID != ""
}
