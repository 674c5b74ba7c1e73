// Package catalog 负责加载衣橱数据并完成编码，得到请求期间只读共享的 Catalog。
//
// 加载流程：读取 Source → 解析为记录 → 校验 → 计算 temp_avg →
// 在全部衣物上拟合 color / purpose 编码器 → 按类别分区。
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/feature"
)

// RowPolicy 决定 temp_min > temp_max 的行如何处理。
type RowPolicy string

const (
	// RowPolicyDrop 丢弃该行并记录一条 warn 日志（默认）
	RowPolicyDrop RowPolicy = "drop"
	// RowPolicyReject 整份数据加载失败，返回 LOAD_ERROR
	RowPolicyReject RowPolicy = "reject"
)

// ParseRowPolicy 解析行策略，空字符串视为 drop。
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch RowPolicy(s) {
	case "", RowPolicyDrop:
		return RowPolicyDrop, nil
	case RowPolicyReject:
		return RowPolicyReject, nil
	default:
		return "", core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: unknown row policy %q", s))
	}
}

// Catalog 是编码后的衣橱：全部衣物、按类别的有序分区，以及共享的编码器。
// 构建完成后不可变，可被多个请求并发读取。
type Catalog struct {
	items    []*core.EncodedItem
	parts    map[core.Category][]*core.EncodedItem
	colors   *feature.LabelEncoder
	purposes *feature.LabelEncoder
	dropped  int
}

type options struct {
	policy RowPolicy
	logger zerolog.Logger
}

// Option 是加载选项。
type Option func(*options)

// WithRowPolicy 设置 temp_min > temp_max 的处理策略。
func WithRowPolicy(p RowPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger 设置加载日志。
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{policy: RowPolicyDrop, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load 从 src 加载衣橱。
// 数据缺失、无法解析或缺少必需列返回 LOAD_ERROR；type / purpose 越界返回 SCHEMA_ERROR。
func Load(ctx context.Context, src Source, opts ...Option) (*Catalog, error) {
	o := newOptions(opts)

	data, format, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	records, err := parseRecords(data, format)
	if err != nil {
		return nil, err
	}

	items := make([]core.ClothingItem, 0, len(records))
	for i, rec := range records {
		it, err := toItem(i+1, rec)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	c, err := build(items, o)
	if err != nil {
		return nil, err
	}
	o.logger.Info().
		Str("source", src.Name()).
		Int("tops", len(c.parts[core.CategoryTop])).
		Int("bottoms", len(c.parts[core.CategoryBottom])).
		Int("dropped", c.dropped).
		Msg("catalog loaded")
	return c, nil
}

// New 由内存中的衣物构建 Catalog，校验与归一化规则与 Load 相同；TempAvg 会被重新计算。
// 传入的切片不会被修改。
func New(items []core.ClothingItem, opts ...Option) (*Catalog, error) {
	normalized := make([]core.ClothingItem, 0, len(items))
	for i, it := range items {
		n, err := normalizeItem(i+1, it)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, n)
	}
	return build(normalized, newOptions(opts))
}

func build(items []core.ClothingItem, o *options) (*Catalog, error) {
	kept := make([]core.ClothingItem, 0, len(items))
	dropped := 0
	for i, it := range items {
		if it.TempMin > it.TempMax {
			if o.policy == RowPolicyReject {
				return nil, loadErr("row %d (%s): temp_min %v > temp_max %v", i+1, it.Name, it.TempMin, it.TempMax)
			}
			o.logger.Warn().
				Int("row", i+1).
				Str("name", it.Name).
				Float64("temp_min", it.TempMin).
				Float64("temp_max", it.TempMax).
				Msg("dropping row with temp_min > temp_max")
			dropped++
			continue
		}
		it.TempAvg = (it.TempMin + it.TempMax) / 2
		kept = append(kept, it)
	}

	colorValues := make([]string, 0, len(kept))
	purposeValues := make([]string, 0, len(kept))
	for _, it := range kept {
		colorValues = append(colorValues, it.Color)
		purposeValues = append(purposeValues, string(it.Purpose))
	}

	c := &Catalog{
		items:    make([]*core.EncodedItem, 0, len(kept)),
		parts:    make(map[core.Category][]*core.EncodedItem, 2),
		colors:   feature.FitLabelEncoder("color", colorValues),
		purposes: feature.FitLabelEncoder("purpose", purposeValues),
		dropped:  dropped,
	}

	for _, it := range kept {
		// 编码器在同一批数据上拟合，这里不会失败
		colorCode, err := c.colors.Encode(it.Color)
		if err != nil {
			return nil, err
		}
		purposeCode, err := c.purposes.Encode(string(it.Purpose))
		if err != nil {
			return nil, err
		}
		enc := &core.EncodedItem{
			ClothingItem: it,
			ColorCode:    colorCode,
			PurposeCode:  purposeCode,
			Index:        len(c.parts[it.Type]),
		}
		c.items = append(c.items, enc)
		c.parts[it.Type] = append(c.parts[it.Type], enc)
	}
	return c, nil
}

// All 返回全部衣物（加载顺序），用于浏览页。返回的切片可以随意修改，元素只读。
func (c *Catalog) All() []*core.EncodedItem {
	return append([]*core.EncodedItem(nil), c.items...)
}

// Category 返回某个类别的有序分区。
func (c *Catalog) Category(cat core.Category) []*core.EncodedItem {
	return append([]*core.EncodedItem(nil), c.parts[cat]...)
}

// Tops 返回全部上装
func (c *Catalog) Tops() []*core.EncodedItem { return c.Category(core.CategoryTop) }

// Bottoms 返回全部下装
func (c *Catalog) Bottoms() []*core.EncodedItem { return c.Category(core.CategoryBottom) }

// Colors 返回颜色编码器
func (c *Catalog) Colors() *feature.LabelEncoder { return c.colors }

// Purposes 返回场合编码器
func (c *Catalog) Purposes() *feature.LabelEncoder { return c.purposes }

// Len 返回衣物总数
func (c *Catalog) Len() int { return len(c.items) }

// Dropped 返回加载时按 RowPolicyDrop 丢弃的行数
func (c *Catalog) Dropped() int { return c.dropped }
