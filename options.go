package outfit

import (
	"github.com/rs/zerolog"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/filter"
	"github.com/rushteam/outfit/model"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/rank"
)

type options struct {
	logger     zerolog.Logger
	candidates int
	factory    model.Factory
	colors     rank.ColorTable
	extra      []filter.Filter
	nodes      []pipeline.Node
}

// Option 是 Engine 的构建选项。
type Option func(*options)

func defaultOptions() *options {
	cfg := &core.DefaultRecommendConfig{}
	return &options{
		logger:     zerolog.Nop(),
		candidates: cfg.DefaultCandidates(),
		factory:    func() model.ConfidenceModel { return &model.DecisionTree{} },
	}
}

// WithLogger 设置日志，Engine 会派生 component=outfit 的子 logger。
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCandidates 设置每个类别进入配对前保留的候选数 K，k <= 0 时忽略。
func WithCandidates(k int) Option {
	return func(o *options) {
		if k > 0 {
			o.candidates = k
		}
	}
}

// WithModel 替换类别模型，每个类别调用一次 factory。
func WithModel(factory model.Factory) Option {
	return func(o *options) {
		if factory != nil {
			o.factory = factory
		}
	}
}

// WithColorTable 替换颜色搭配表，nil 表示默认表。
func WithColorTable(t rank.ColorTable) Option {
	return func(o *options) { o.colors = t }
}

// WithExtraFilters 在查询过滤器之后追加过滤器（例如 UnavailableFilter / ExprFilter）。
func WithExtraFilters(filters ...filter.Filter) Option {
	return func(o *options) { o.extra = append(o.extra, filters...) }
}

// WithExtraNodes 追加配置驱动的 Node：过滤类插在查询过滤之后、打分之前，
// ReRank 类插在打分之后、TopN 之前。两个类别的 Pipeline 共用同一组 Node，Node 必须是无状态的。
func WithExtraNodes(nodes ...pipeline.Node) Option {
	return func(o *options) { o.nodes = append(o.nodes, nodes...) }
}
