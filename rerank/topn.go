package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点：按分数降序（稳定排序）后保留前 N 个候选。
// 分数相同时保持输入顺序，先出现者优先。
//
// 在配对之前使用，用于把每个类别的候选池限制在 K 个以内，
// 从而把笛卡尔积的规模限制在 K×K。
type TopNNode struct {
	// N 要保留的候选数量；N <= 0 时只排序不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	return TopCandidates(items, n.N), nil
}

// TopCandidates 返回分数最高的 k 个候选（新切片），相同分数保持原有顺序。
// k <= 0 时返回全部候选的排序结果。
func TopCandidates(items []*core.ScoredItem, k int) []*core.ScoredItem {
	out := make([]*core.ScoredItem, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
