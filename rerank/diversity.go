package rerank

import (
	"context"
	"fmt"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/pkg/utils"
)

// Diversity 是一个简单的多样性 ReRank：同一属性值最多保留 MaxPerValue 个候选。
// 先按分数降序稳定排序，因此保留的是该属性值下分数最高的候选。
// 放在打分之后、TopN 之前，避免 K 个候选全是同一种颜色。
type Diversity struct {
	Attr        string // color（默认）或 purpose
	MaxPerValue int    // 默认 1
}

// NewDiversity 校验属性名。
func NewDiversity(attr string, maxPerValue int) (*Diversity, error) {
	switch attr {
	case "", "color", "purpose":
	default:
		return nil, fmt.Errorf("rerank.diversity: unsupported attr %q", attr)
	}
	return &Diversity{Attr: attr, MaxPerValue: maxPerValue}, nil
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.MaxPerValue
	if limit <= 0 {
		limit = 1
	}

	sorted := TopCandidates(items, 0)
	seen := make(map[string]int, len(sorted))
	out := make([]*core.ScoredItem, 0, len(sorted))
	for _, it := range sorted {
		v := n.value(it.Item)
		if seen[v] >= limit {
			continue
		}
		seen[v]++
		it.PutLabel("diversity", utils.NewLabel(v, utils.SourceReRank))
		out = append(out, it)
	}
	return out, nil
}

func (n *Diversity) value(it *core.EncodedItem) string {
	if n.Attr == "purpose" {
		return string(it.Purpose)
	}
	return it.Color
}
