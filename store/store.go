// Package store 提供 core.Store 的实现。
//
// 注意：此包只包含实现，接口定义在 core 包。
//
// 示例：
//
//	var s core.Store = store.NewMemoryStore()
//	_ = s.Set(ctx, "wardrobe:catalog", csvBytes)
package store

import "github.com/rushteam/outfit/core"

// ErrNotFound 与 core.ErrStoreNotFound 相同，便于在实现内直接返回。
var ErrNotFound = core.ErrStoreNotFound
