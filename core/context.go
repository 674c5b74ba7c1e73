package core

import "github.com/rushteam/outfit/pkg/utils"

// RecommendContext 承载单次请求的查询条件与编码结果，贯穿整个 Pipeline 透传。
// 每个请求新建一份，请求结束即丢弃。
type RecommendContext struct {
	// Query 是归一化之后的用户条件
	Query Query

	// PurposeCode 是 Query.Purpose 的编码结果，仅在 HasPurposeCode 为 true 时有效
	PurposeCode    int
	HasPurposeCode bool

	// Labels 是请求级标签，用于 explain / 观测
	Labels map[string]utils.Label
}

// NewRecommendContext 基于查询创建请求上下文，查询会先被归一化。
func NewRecommendContext(q Query) *RecommendContext {
	return &RecommendContext{
		Query:  q.Normalize(),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}
