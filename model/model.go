package model

import (
	"fmt"
	"sort"

	"github.com/rushteam/outfit/core"
)

// ConfidenceModel 是类别模型的最小抽象：在 (temp_avg, purpose_code, color_code)
// 特征上训练、以衣物名称为标签，查询时返回最大类别概率作为置信度。
//
// 约定：
//   - Train 总是从头训练，之前的状态被整体替换
//   - Confidence 永不报错；训练数据中未出现过的编码会退化为模型的先验概率
//   - 训练完成后只读，可并发调用 Confidence
type ConfidenceModel interface {
	Name() string
	Train(rows [][]float64, labels []string) error
	Confidence(row []float64) float64
}

// Factory 创建一个未训练的模型，每个类别各调用一次。
type Factory func() ConfidenceModel

// Params 是内置模型的可选参数，零值表示使用默认值。
type Params struct {
	MaxDepth        int // tree：最大深度，0 表示不限
	MinSamplesSplit int // tree：节点继续分裂所需的最少样本数，默认 2
	K               int // knn：近邻数，默认 3
}

// 内置模型名称
const (
	KindTree = "tree"
	KindKNN  = "knn"
)

// NewFactory 根据名称返回模型工厂。
func NewFactory(kind string, p Params) (Factory, error) {
	switch kind {
	case "", KindTree:
		return func() ConfidenceModel {
			return &DecisionTree{MaxDepth: p.MaxDepth, MinSamplesSplit: p.MinSamplesSplit}
		}, nil
	case KindKNN:
		return func() ConfidenceModel { return &KNN{K: p.K} }, nil
	default:
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			fmt.Sprintf("model: unknown kind %q (supported: %s, %s)", kind, KindTree, KindKNN))
	}
}

// validateTrainingSet 校验训练集，返回特征维度。
func validateTrainingSet(rows [][]float64, labels []string) (int, error) {
	if len(rows) == 0 {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInsufficient, "model: empty training set")
	}
	if len(rows) != len(labels) {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			fmt.Sprintf("model: %d rows but %d labels", len(rows), len(labels)))
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
				fmt.Sprintf("model: row %d has %d features, want %d", i, len(r), width))
		}
	}
	return width, nil
}

// indexClasses 将标签映射为按字典序排列的类别下标。
func indexClasses(labels []string) ([]string, []int) {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for l := range set {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	pos := make(map[string]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = pos[l]
	}
	return classes, y
}

// argmax 返回最大值下标与最大值，相等时取靠前者。
func argmax(p []float64) (int, float64) {
	best, bestV := -1, 0.0
	for i, v := range p {
		if best < 0 || v > bestV {
			best, bestV = i, v
		}
	}
	return best, bestV
}

func featureAt(row []float64, i int) float64 {
	if i < len(row) {
		return row[i]
	}
	return 0
}
