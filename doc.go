// Package outfit 从个人衣橱中推荐上下装搭配。
//
// 设计要点：
// - Catalog-first: 衣橱加载一次、编码一次，之后只读共享（见 catalog 包）
// - Pipeline-first: 每个类别的推荐逻辑通过 Node 串联（Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传，便于 explain / 观测
// - Model 可替换: 类别模型只需实现 model.ConfidenceModel
package outfit

import "github.com/rushteam/outfit/pipeline"

// 轻量 facade：便于用户直接 import "outfit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
