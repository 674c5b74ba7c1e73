package filter

import (
	"context"

	"github.com/rushteam/outfit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个候选是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
//
// 过滤器只读取候选与请求上下文，不得修改共享的 EncodedItem。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.ScoredItem) (bool, error)
}

// QueryChecker 是可选接口：在逐项过滤之前对请求做一次校验。
// Apply 会先调用它，因此即使候选为空，非法的查询取值也会返回错误。
type QueryChecker interface {
	CheckQuery(ctx context.Context, rctx *core.RecommendContext) error
}
