package filter

import (
	"context"

	"github.com/rushteam/outfit/core"
)

// UnavailableFilter 过滤掉暂时不能穿的衣物（送洗、借出等），按名称匹配。
type UnavailableFilter struct {
	// Names 是内存中的不可用衣物名称
	Names []string

	// Store 用于从存储中读取不可用列表（可选）
	Store UnavailableStore

	// Key 是 Store 中的 key（可选）
	Key string
}

// UnavailableStore 是不可用列表的存储接口。
type UnavailableStore interface {
	// GetUnavailable 获取不可用衣物名称列表
	GetUnavailable(ctx context.Context, key string) ([]string, error)
}

// NewUnavailableFilter 创建一个不可用衣物过滤器。
func NewUnavailableFilter(names []string, storeAdapter *StoreAdapter, key string) *UnavailableFilter {
	var store UnavailableStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &UnavailableFilter{
		Names: names,
		Store: store,
		Key:   key,
	}
}

func (f *UnavailableFilter) Name() string {
	return "filter.unavailable"
}

func (f *UnavailableFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.ScoredItem,
) (bool, error) {
	name := item.Item.Name

	// 从内存列表检查
	for _, n := range f.Names {
		if n == name {
			return true, nil
		}
	}

	// 从 Store 检查；读取失败（含 key 不存在）视为没有不可用衣物
	if f.Store != nil && f.Key != "" {
		names, err := f.Store.GetUnavailable(ctx, f.Key)
		if err == nil {
			for _, n := range names {
				if n == name {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
