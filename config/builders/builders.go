// Package builders 注册内置的配置驱动 Node。
// 在 main 中 import _ "github.com/rushteam/outfit/config/builders" 即可生效。
package builders

import (
	"fmt"

	"github.com/rushteam/outfit/config"
	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/filter"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/pkg/conv"
	"github.com/rushteam/outfit/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("filter.unavailable", BuildUnavailableNode)
	config.Register("filter.expr", BuildExprNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

// BuildDiversityNode 构建多样性节点：{attr: color, max_per_value: 1}
func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	n, err := rerank.NewDiversity(
		conv.ConfigGet(cfg, "attr", ""),
		conv.ConfigGetInt(cfg, "max_per_value", 1),
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// BuildFilterNode 由 filters 列表构建一个组合过滤节点：
//
//	config:
//	  filters:
//	    - {type: unavailable, names: [grey hoodie]}
//	    - {type: expr, expr: "item.temp_max >= 5"}
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	return buildFilterNode(cfg, nil)
}

// BuildUnavailableNode 使用配置中的 names 列表（不读存储）。
func BuildUnavailableNode(cfg map[string]any) (pipeline.Node, error) {
	return UnavailableBuilder(nil)(cfg)
}

// UnavailableBuilder 返回读取 s 中不可用列表的 builder，s 为 nil 时只使用 names。
// 入口处拿到 Store 后覆盖默认注册：factory.Register("filter.unavailable", builders.UnavailableBuilder(s))。
func UnavailableBuilder(s core.Store) pipeline.NodeBuilder {
	return func(cfg map[string]any) (pipeline.Node, error) {
		f, err := unavailableFilter(cfg, s)
		if err != nil {
			return nil, err
		}
		return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
	}
}

// StoreBuilders 返回依赖 s 的全部 builder，用于覆盖 DefaultFactory 中的同名项。
func StoreBuilders(s core.Store) map[string]pipeline.NodeBuilder {
	return map[string]pipeline.NodeBuilder{
		"filter.unavailable": UnavailableBuilder(s),
		"filter": func(cfg map[string]any) (pipeline.Node, error) {
			return buildFilterNode(cfg, s)
		},
	}
}

func BuildExprNode(cfg map[string]any) (pipeline.Node, error) {
	f, err := exprFilter(cfg)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

func buildFilterNode(cfg map[string]any, s core.Store) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "unavailable":
			f, err := unavailableFilter(filterMap, s)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		case "expr":
			f, err := exprFilter(filterMap)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func unavailableFilter(cfg map[string]any, s core.Store) (filter.Filter, error) {
	names := conv.SliceAnyToString(cfg["names"])
	key := conv.ConfigGet(cfg, "key", "")
	var adapter *filter.StoreAdapter
	if s != nil && key != "" {
		adapter = filter.NewStoreAdapter(s)
	}
	if len(names) == 0 && adapter == nil {
		return nil, fmt.Errorf("unavailable filter needs names or a store key")
	}
	return filter.NewUnavailableFilter(names, adapter, key), nil
}

func exprFilter(cfg map[string]any) (filter.Filter, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	f, err := filter.NewExprFilter(expr)
	if err != nil {
		return nil, err
	}
	return f, nil
}
