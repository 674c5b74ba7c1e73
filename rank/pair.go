package rank

import "github.com/rushteam/outfit/core"

// 搭配得分的固定权重
const (
	TopWeight    = 0.6
	BottomWeight = 0.6
	ColorWeight  = 1.0
)

// PairScorer 计算上下装搭配得分：
//
//	pair_score = 0.6*top.score + 0.6*bottom.score + 1.0*color_score(top.color, bottom.color)
type PairScorer struct {
	Colors ColorTable
}

// NewPairScorer 使用给定颜色表创建 PairScorer，nil 时使用 DefaultColorTable。
func NewPairScorer(colors ColorTable) *PairScorer {
	if colors == nil {
		colors = DefaultColorTable()
	}
	return &PairScorer{Colors: colors}
}

// Score 计算一组搭配的得分。
func (s *PairScorer) Score(top, bottom *core.ScoredItem) float64 {
	return TopWeight*top.Score +
		BottomWeight*bottom.Score +
		ColorWeight*s.Colors.Score(top.Item.Color, bottom.Item.Color)
}
