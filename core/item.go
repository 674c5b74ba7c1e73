package core

import (
	"strconv"

	"github.com/rushteam/outfit/pkg/utils"
)

// Category 是衣物类别。每件衣物只属于一个类别，两个类别各自独立建模。
type Category string

const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
)

// Categories 按固定顺序返回全部类别。
func Categories() []Category {
	return []Category{CategoryTop, CategoryBottom}
}

// ParseCategory 解析类别，越界取值返回 SCHEMA_ERROR。
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryTop, CategoryBottom:
		return c, nil
	default:
		return "", NewDomainError(ModuleCatalog, ErrorCodeSchema, "catalog: unknown type "+strconv.Quote(s))
	}
}

// Purpose 是穿着场合。
type Purpose string

const (
	PurposeCasual     Purpose = "casual"
	PurposeFormal     Purpose = "formal"
	PurposeCeremonial Purpose = "ceremonial"
)

// ParsePurpose 解析场合，越界取值返回 SCHEMA_ERROR。
func ParsePurpose(s string) (Purpose, error) {
	switch p := Purpose(s); p {
	case PurposeCasual, PurposeFormal, PurposeCeremonial:
		return p, nil
	default:
		return "", NewDomainError(ModuleCatalog, ErrorCodeSchema, "catalog: unknown purpose "+strconv.Quote(s))
	}
}

// ClothingItem 是衣橱中的一条记录，加载后不可变。
// TempAvg 在加载时计算一次：(TempMin+TempMax)/2。
type ClothingItem struct {
	Name    string   `json:"name" yaml:"name"`
	Type    Category `json:"type" yaml:"type"`
	Color   string   `json:"color" yaml:"color"`
	Purpose Purpose  `json:"purpose" yaml:"purpose"`
	TempMin float64  `json:"temp_min" yaml:"temp_min"`
	TempMax float64  `json:"temp_max" yaml:"temp_max"`
	Image   string   `json:"image" yaml:"image"`
	TempAvg float64  `json:"temp_avg" yaml:"-"`
}

// EncodedItem 是附加了整数编码的衣物，由 Catalog 持有，请求期间只读共享。
type EncodedItem struct {
	ClothingItem
	ColorCode   int `json:"color_code"`
	PurposeCode int `json:"purpose_code"`
	// Index 是该衣物在所属类别分区中的顺序（从 0 开始）
	Index int `json:"-"`
}

// 特征向量的列下标
const (
	FeatureTempAvg = iota
	FeaturePurposeCode
	FeatureColorCode
	NumFeatures
)

// FeatureNames 与特征向量列一一对应
var FeatureNames = [NumFeatures]string{"temp_avg", "purpose_code", "color_code"}

// Features 返回训练用的特征向量 (temp_avg, purpose_code, color_code)。
func (it *EncodedItem) Features() []float64 {
	return []float64{it.TempAvg, float64(it.PurposeCode), float64(it.ColorCode)}
}

// ScoredItem 是单次请求内的候选：引用共享的 EncodedItem，分数与标签只属于本次请求。
type ScoredItem struct {
	Item   *EncodedItem
	Score  float64
	Labels map[string]utils.Label
}

// NewScoredItem 为共享衣物创建一个请求级候选。
func NewScoredItem(item *EncodedItem) *ScoredItem {
	return &ScoredItem{
		Item:   item,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *ScoredItem) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// RankedPair 是一组上下装搭配及其得分。
type RankedPair struct {
	Top    *ScoredItem
	Bottom *ScoredItem
	Score  float64
}
