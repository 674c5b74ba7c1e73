package rank

import (
	"context"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/feature"
	"github.com/rushteam/outfit/model"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/pkg/utils"
)

// ScoreNode 用类别模型为候选打分。
//   - 特征向量按查询调整：给了温度则 temp_avg 取查询温度，给了场合则 purpose_code 取查询场合编码，
//     color_code 始终取衣物自身（颜色只参与过滤，不参与覆盖）
//   - 写入 labels：rank_model
//   - 只写候选自身的 Score，不排序；Top-K 截断由 rerank.TopNNode 负责
type ScoreNode struct {
	Model    model.ConfidenceModel
	Purposes *feature.LabelEncoder
}

func (n *ScoreNode) Name() string        { return "rank.score" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ScoreNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if n.Model == nil || len(items) == 0 {
		return items, nil
	}

	adjust, err := n.adjuster(rctx)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it == nil || it.Item == nil {
			continue
		}
		it.Score = n.Model.Confidence(adjust(it.Item))
		it.PutLabel("rank_model", utils.NewLabel(n.Model.Name(), utils.SourceRank))
	}
	return items, nil
}

// adjuster 返回按查询调整特征向量的函数。
func (n *ScoreNode) adjuster(rctx *core.RecommendContext) (func(*core.EncodedItem) []float64, error) {
	var (
		temp       *float64
		purposeSet bool
		purpose    int
	)
	if rctx != nil {
		temp = rctx.Query.Temperature
		switch {
		case rctx.HasPurposeCode:
			purposeSet, purpose = true, rctx.PurposeCode
		case rctx.Query.Purpose != "" && n.Purposes != nil:
			code, err := n.Purposes.Encode(rctx.Query.Purpose)
			if err != nil {
				return nil, err
			}
			purposeSet, purpose = true, code
		}
	}

	return func(it *core.EncodedItem) []float64 {
		row := it.Features()
		if temp != nil {
			row[core.FeatureTempAvg] = *temp
		}
		if purposeSet {
			row[core.FeaturePurposeCode] = float64(purpose)
		}
		return row
	}, nil
}

// FeatureRow 是 ScoreNode 使用的查询调整特征向量，供调试与测试使用。
func FeatureRow(rctx *core.RecommendContext, purposes *feature.LabelEncoder, it *core.EncodedItem) ([]float64, error) {
	adjust, err := (&ScoreNode{Purposes: purposes}).adjuster(rctx)
	if err != nil {
		return nil, err
	}
	return adjust(it), nil
}
