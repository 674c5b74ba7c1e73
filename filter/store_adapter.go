package filter

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/rushteam/outfit/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 列表以 JSON 字符串数组存放，例如 ["white shirt","grey slacks"]。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetUnavailable 从 Store 读取不可用衣物名称列表。
func (a *StoreAdapter) GetUnavailable(ctx context.Context, key string) ([]string, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SetUnavailable 将不可用衣物名称列表写入 Store。
func (a *StoreAdapter) SetUnavailable(ctx context.Context, key string, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, key, data)
}
