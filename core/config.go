package core

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultCandidates 返回每个类别进入配对前保留的候选数（K）
	DefaultCandidates() int

	// DefaultLimit 返回展示层默认展示的搭配数
	DefaultLimit() int
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultCandidates() int {
	return 3
}

func (c *DefaultRecommendConfig) DefaultLimit() int {
	return 3
}
