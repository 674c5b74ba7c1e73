package filter

import (
	"context"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/feature"
)

// TemperatureFilter 保留 temp_min <= 查询温度 <= temp_max 的衣物；查询未给温度时不过滤。
type TemperatureFilter struct{}

func (f *TemperatureFilter) Name() string { return "filter.temperature" }

func (f *TemperatureFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredItem,
) (bool, error) {
	if rctx == nil || rctx.Query.Temperature == nil {
		return false, nil
	}
	t := *rctx.Query.Temperature
	return !(item.Item.TempMin <= t && t <= item.Item.TempMax), nil
}

// ColorFilter 保留颜色与查询完全一致的衣物（查询已归一化为小写）；查询颜色为空时不过滤。
type ColorFilter struct{}

func (f *ColorFilter) Name() string { return "filter.color" }

func (f *ColorFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredItem,
) (bool, error) {
	if rctx == nil || rctx.Query.Color == "" {
		return false, nil
	}
	return item.Item.Color != rctx.Query.Color, nil
}

// PurposeFilter 保留 purpose_code 等于查询场合编码的衣物；查询场合为空时不过滤。
// 查询的场合未被编码器见过时返回 UNKNOWN_CATEGORY。
type PurposeFilter struct {
	Encoder *feature.LabelEncoder
}

func (f *PurposeFilter) Name() string { return "filter.purpose" }

// CheckQuery 查询场合未出现在衣橱中时返回 UNKNOWN_CATEGORY，与候选数量无关。
func (f *PurposeFilter) CheckQuery(_ context.Context, rctx *core.RecommendContext) error {
	if rctx == nil || rctx.Query.Purpose == "" || f.Encoder.Has(rctx.Query.Purpose) {
		return nil
	}
	return core.NewUnknownCategoryError(core.ModuleFilter, f.Encoder.Attr, rctx.Query.Purpose)
}

func (f *PurposeFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredItem,
) (bool, error) {
	if rctx == nil || rctx.Query.Purpose == "" {
		return false, nil
	}
	code, err := f.Encoder.Encode(rctx.Query.Purpose)
	if err != nil {
		return false, err
	}
	return item.Item.PurposeCode != code, nil
}

// QueryFilters 返回按查询条件过滤的三个标准过滤器：温度、颜色、场合。
func QueryFilters(purposes *feature.LabelEncoder) []Filter {
	return []Filter{
		&TemperatureFilter{},
		&ColorFilter{},
		&PurposeFilter{Encoder: purposes},
	}
}
