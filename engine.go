package outfit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/outfit/catalog"
	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/filter"
	"github.com/rushteam/outfit/model"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/pkg/utils"
	"github.com/rushteam/outfit/rank"
	"github.com/rushteam/outfit/rerank"
)

// Engine 持有已编码的衣橱、两个类别模型和每个类别的 Pipeline。
// New 之后状态不再变化，可被多个请求并发使用。
type Engine struct {
	catalog    *catalog.Catalog
	models     map[core.Category]model.ConfidenceModel
	pipelines  map[core.Category]*pipeline.Pipeline
	scorer     *rank.PairScorer
	candidates int
	logger     zerolog.Logger
}

// Result 是一次推荐的结果。
type Result struct {
	// Query 是归一化之后的查询
	Query core.Query `json:"query"`

	// Pairs 是完整的排序结果（最多 K×K 条），由调用方截断
	Pairs []core.RankedPair `json:"pairs"`

	// NoMatch 为 true 表示没有可推荐的搭配：某一侧过滤后为空，或查询取值未在衣橱中出现
	NoMatch bool `json:"no_match"`

	// Labels 是请求级标签
	Labels map[string]utils.Label `json:"labels,omitempty"`
}

// New 在 cat 上训练两个类别模型并组装 Pipeline。
// 任一类别没有衣物时返回 INSUFFICIENT_DATA。
func New(cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "outfit: nil catalog")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	e := &Engine{
		catalog:    cat,
		models:     make(map[core.Category]model.ConfidenceModel, 2),
		pipelines:  make(map[core.Category]*pipeline.Pipeline, 2),
		scorer:     rank.NewPairScorer(o.colors),
		candidates: o.candidates,
		logger:     o.logger.With().Str("component", "outfit").Logger(),
	}

	categories := core.Categories()
	trained := make([]model.ConfidenceModel, len(categories))

	// 两个类别的数据互不相关，并发训练
	var g errgroup.Group
	for i, c := range categories {
		c := c
		m := o.factory()
		trained[i] = m
		g.Go(func() error {
			return e.train(c, m)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	queryFilters := filter.QueryFilters(cat.Purposes())
	for i, c := range categories {
		e.models[c] = trained[i]
		filters := make([]filter.Filter, 0, len(queryFilters)+len(o.extra))
		filters = append(filters, queryFilters...)
		filters = append(filters, o.extra...)
		e.pipelines[c] = &pipeline.Pipeline{Nodes: assemble(
			&filter.FilterNode{Filters: filters},
			&rank.ScoreNode{Model: trained[i], Purposes: cat.Purposes()},
			&rerank.TopNNode{N: o.candidates},
			o.nodes,
		)}
	}
	return e, nil
}

// assemble 按 Kind 插入附加 Node：ReRank 类放在打分之后、TopN 之前，其余放在打分之前。
func assemble(query, score, topN pipeline.Node, extra []pipeline.Node) []pipeline.Node {
	nodes := make([]pipeline.Node, 0, len(extra)+3)
	nodes = append(nodes, query)
	var post []pipeline.Node
	for _, n := range extra {
		if n.Kind() == pipeline.KindReRank {
			post = append(post, n)
			continue
		}
		nodes = append(nodes, n)
	}
	nodes = append(nodes, score)
	nodes = append(nodes, post...)
	return append(nodes, topN)
}

func (e *Engine) train(c core.Category, m model.ConfidenceModel) error {
	items := e.catalog.Category(c)
	if len(items) == 0 {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInsufficient,
			fmt.Sprintf("outfit: no %s items to train on", c))
	}
	rows := make([][]float64, 0, len(items))
	labels := make([]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.Features())
		labels = append(labels, it.Name)
	}
	if err := m.Train(rows, labels); err != nil {
		return fmt.Errorf("train %s model: %w", c, err)
	}
	e.logger.Info().
		Str("category", string(c)).
		Str("model", m.Name()).
		Int("rows", len(rows)).
		Strs("features", core.FeatureNames[:]).
		Msg("category model trained")
	return nil
}

// Recommend 按查询推荐搭配。
// 查询中出现衣橱未见过的取值（例如未知的 purpose）不是错误，返回 NoMatch。
func (e *Engine) Recommend(ctx context.Context, q core.Query) (*Result, error) {
	rctx := core.NewRecommendContext(q)
	res := &Result{Query: rctx.Query, Pairs: []core.RankedPair{}, Labels: rctx.Labels}
	e.logger.Debug().
		Interface("query", rctx.Query).
		Bool("unconstrained", rctx.Query.IsEmpty()).
		Msg("recommend")

	if p := rctx.Query.Purpose; p != "" {
		code, err := e.catalog.Purposes().Encode(p)
		if err != nil {
			return e.noMatch(res, err)
		}
		rctx.PurposeCode, rctx.HasPurposeCode = code, true
	}

	pools := make(map[core.Category][]*core.ScoredItem, 2)
	for _, c := range core.Categories() {
		out, err := e.pipelines[c].Run(ctx, rctx, pipeline.Candidates(e.catalog.Category(c)))
		if err != nil {
			if core.IsUnknownCategory(err) {
				return e.noMatch(res, err)
			}
			return nil, fmt.Errorf("%s pipeline: %w", c, err)
		}
		pools[c] = out
	}

	res.Pairs = rerank.RankPairs(pools[core.CategoryTop], pools[core.CategoryBottom], e.scorer)
	res.NoMatch = len(res.Pairs) == 0
	rctx.PutLabel("pairs", utils.NewLabel(strconv.Itoa(len(res.Pairs)), utils.SourcePair))
	res.Labels = rctx.Labels
	return res, nil
}

func (e *Engine) noMatch(res *Result, err error) (*Result, error) {
	e.logger.Debug().Err(err).Msg("no match")
	res.NoMatch = true
	return res, nil
}

// Catalog 返回底层衣橱，用于浏览页。
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Candidates 返回每个类别进入配对前保留的候选数 K。
func (e *Engine) Candidates() int {
	return e.candidates
}

// Model 返回某个类别的模型。
func (e *Engine) Model(c core.Category) model.ConfidenceModel {
	return e.models[c]
}
