package pipeline

import (
	"context"

	"github.com/rushteam/outfit/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合查询条件的候选
	KindRank   Kind = "rank"   // 打分阶段：为候选计算置信度
	KindReRank Kind = "rerank" // 重排阶段：多样性调整与 Top-K 截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态；可以修改请求级的 ScoredItem，不得修改共享的 EncodedItem。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.ScoredItem,
	) ([]*core.ScoredItem, error)
}
