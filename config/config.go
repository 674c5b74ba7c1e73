// Package config 加载 outfit 的运行配置。
//
// 加载顺序（后者覆盖前者）：结构体默认值 → YAML 文件 → OUTFIT_ 前缀的环境变量。
//
//	catalog:
//	  path: wardrobe.csv
//	  row_policy: drop
//	engine:
//	  candidates: 3
//	  limit: 3
//	  model: tree
//	colors:
//	  - {top: green, bottom: beige, score: 0.9}
//	pipeline:
//	  nodes:
//	    - type: filter.unavailable
//	      config: {key: "wardrobe:laundry"}
package config

import (
	"fmt"
	"strings"

	"github.com/rushteam/outfit/catalog"
	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/model"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/pkg/logging"
	"github.com/rushteam/outfit/pkg/validate"
	"github.com/rushteam/outfit/rank"
)

// Config 是完整的运行配置。
type Config struct {
	Catalog  CatalogConfig   `koanf:"catalog"`
	Engine   EngineConfig    `koanf:"engine"`
	Colors   []ColorOverride `koanf:"colors" validate:"dive"`
	Log      logging.Config  `koanf:"log"`
	Server   ServerConfig    `koanf:"server"`
	Redis    RedisConfig     `koanf:"redis"`
	Pipeline PipelineConfig  `koanf:"pipeline"`
}

// CatalogConfig 衣橱数据来源。
// Path 为空且配置了 Redis 时，从 Redis 的 Key 读取。
type CatalogConfig struct {
	Path      string `koanf:"path"`
	Key       string `koanf:"key"`
	Format    string `koanf:"format" validate:"omitempty,oneof=csv json yaml"`
	RowPolicy string `koanf:"row_policy" validate:"oneof=drop reject"`
}

// EngineConfig 推荐引擎参数。
type EngineConfig struct {
	Candidates int    `koanf:"candidates" validate:"min=1"`
	Limit      int    `koanf:"limit" validate:"min=1"`
	Model      string `koanf:"model" validate:"oneof=tree knn"`
	MaxDepth   int    `koanf:"max_depth" validate:"min=0"`
	KNNK       int    `koanf:"knn_k" validate:"min=0"`
}

// ColorOverride 覆盖或补充颜色搭配表中的一条有向颜色对。
type ColorOverride struct {
	Top    string  `koanf:"top" validate:"required"`
	Bottom string  `koanf:"bottom" validate:"required"`
	Score  float64 `koanf:"score" validate:"min=0,max=1"`
}

// ServerConfig HTTP 服务参数。
type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
}

// RedisConfig 可选的 Redis 存储，Addr 为空表示不使用。
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// PipelineConfig 追加在查询过滤器之后的过滤节点。
type PipelineConfig struct {
	Name  string                `koanf:"name"`
	Nodes []pipeline.NodeConfig `koanf:"nodes"`
}

// Default 返回默认配置。
func Default() *Config {
	rc := &core.DefaultRecommendConfig{}
	return &Config{
		Catalog: CatalogConfig{
			Path:      "wardrobe.csv",
			Key:       "outfit:wardrobe",
			RowPolicy: string(catalog.RowPolicyDrop),
		},
		Engine: EngineConfig{
			Candidates: rc.DefaultCandidates(),
			Limit:      rc.DefaultLimit(),
			Model:      model.KindTree,
		},
		Log: logging.Config{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Validate 校验配置，包括 pipeline 中的 Node 类型均已注册。
func (c *Config) Validate() error {
	if err := validate.Struct("config", c); err != nil {
		return err
	}
	if err := ValidatePipelineConfig(c.PipelineConfig()); err != nil {
		return core.WrapDomainError("config", core.ErrorCodeInvalidInput, "config: pipeline", err)
	}
	return nil
}

// PipelineConfig 转换为 pipeline.Config，供 BuildNodes 使用。
func (c *Config) PipelineConfig() *pipeline.Config {
	pc := &pipeline.Config{}
	pc.Pipeline.Name = c.Pipeline.Name
	pc.Pipeline.Nodes = c.Pipeline.Nodes
	return pc
}

// ColorTable 返回叠加了 Colors 覆盖项的颜色搭配表。
// 覆盖项的颜色与衣橱一样统一为小写。
func (c *Config) ColorTable() rank.ColorTable {
	overrides := make(rank.ColorTable, len(c.Colors))
	for _, o := range c.Colors {
		pair := rank.ColorPair{Top: normalizeColor(o.Top), Bottom: normalizeColor(o.Bottom)}
		overrides[pair] = o.Score
	}
	return rank.DefaultColorTable().With(overrides)
}

func normalizeColor(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ModelFactory 返回 Engine 使用的类别模型工厂。
func (c *Config) ModelFactory() (model.Factory, error) {
	f, err := model.NewFactory(c.Engine.Model, model.Params{
		MaxDepth: c.Engine.MaxDepth,
		K:        c.Engine.KNNK,
	})
	if err != nil {
		return nil, fmt.Errorf("engine.model: %w", err)
	}
	return f, nil
}
