package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/outfit/core"
)

// Pipeline 把单个类别的推荐逻辑拆成可组合的 Node 链：Filter → Score → TopN。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行各个 Node。任何 Node 返回错误都会中断执行，错误带上 Node 名称。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// Candidates 为一组共享衣物创建请求级候选，保持原有顺序。
func Candidates(items []*core.EncodedItem) []*core.ScoredItem {
	out := make([]*core.ScoredItem, 0, len(items))
	for _, it := range items {
		out = append(out, core.NewScoredItem(it))
	}
	return out
}
