package filter

import (
	"context"
	"strconv"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该候选就会被过滤掉。
//
// 各过滤器都是逐项独立的谓词，因此应用顺序不影响最终结果。
// 输出总是新切片，输入切片与其中的元素保持不变。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	return Apply(ctx, rctx, items, n.Filters...)
}

// Apply 用 filters 过滤 items，返回保留下来的候选（新切片）。
// 过滤器返回错误时立即中断并返回该错误，例如查询的 purpose 未被编码器见过。
// 实现了 QueryChecker 的过滤器在遍历候选之前先校验一次请求。
func Apply(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredItem,
	filters ...Filter,
) ([]*core.ScoredItem, error) {
	for _, f := range filters {
		if qc, ok := f.(QueryChecker); ok {
			if err := qc.CheckQuery(ctx, rctx); err != nil {
				return nil, err
			}
		}
	}

	out := make([]*core.ScoredItem, 0, len(items))

	for _, item := range items {
		if item == nil || item.Item == nil {
			continue
		}

		dropped := false
		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, err
			}
			if ok {
				dropped = true
				break
			}
		}
		if dropped {
			continue
		}

		out = append(out, item)
	}

	if rctx != nil {
		rctx.PutLabel("filter_kept", utils.NewLabel(strconv.Itoa(len(out)), utils.SourceFilter))
	}
	return out, nil
}
