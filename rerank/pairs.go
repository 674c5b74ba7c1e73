package rerank

import (
	"sort"

	"github.com/rushteam/outfit/core"
)

// PairScorer 计算一组上下装搭配的得分，rank.PairScorer 为默认实现。
type PairScorer interface {
	Score(top, bottom *core.ScoredItem) float64
}

// RankPairs 枚举 tops × bottoms 的全部组合（上装为外层循环），逐一打分后按得分降序稳定排序。
// 得分相同的组合保持枚举顺序。任一侧为空时返回空切片，表示“无匹配”。
//
// 返回完整的排序结果，由调用方决定展示多少条。
func RankPairs(tops, bottoms []*core.ScoredItem, scorer PairScorer) []core.RankedPair {
	pairs := make([]core.RankedPair, 0, len(tops)*len(bottoms))
	for _, top := range tops {
		for _, bottom := range bottoms {
			pairs = append(pairs, core.RankedPair{
				Top:    top,
				Bottom: bottom,
				Score:  scorer.Score(top, bottom),
			})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})
	return pairs
}

// Truncate 返回前 limit 条，limit <= 0 时返回全部。
func Truncate(pairs []core.RankedPair, limit int) []core.RankedPair {
	if limit <= 0 || len(pairs) <= limit {
		return pairs
	}
	return pairs[:limit]
}
