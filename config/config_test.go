package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/outfit/config"
	_ "github.com/rushteam/outfit/config/builders"
	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/model"
	"github.com/rushteam/outfit/pipeline"
	"github.com/rushteam/outfit/rank"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outfit.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.Candidates != 3 || cfg.Engine.Limit != 3 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Engine.Model != model.KindTree {
		t.Errorf("model = %q", cfg.Engine.Model)
	}
	if cfg.Catalog.RowPolicy != "drop" {
		t.Errorf("row_policy = %q", cfg.Catalog.RowPolicy)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: data/wardrobe.json
  row_policy: reject
engine:
  candidates: 4
  model: knn
  knn_k: 2
colors:
  - {top: green, bottom: beige, score: 0.9}
  - {top: red, bottom: black, score: 0.7}
pipeline:
  nodes:
    - type: filter.expr
      config:
        expr: "item.temp_max >= 5"
    - type: filter.unavailable
      config:
        names: [grey hoodie]
`)
	t.Setenv("OUTFIT_ENGINE_CANDIDATES", "5")
	t.Setenv("OUTFIT_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Path != "data/wardrobe.json" || cfg.Catalog.RowPolicy != "reject" {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	// 环境变量优先于文件
	if cfg.Engine.Candidates != 5 {
		t.Errorf("candidates = %d, want 5", cfg.Engine.Candidates)
	}
	if cfg.Engine.Limit != 3 {
		t.Errorf("limit = %d, want default 3", cfg.Engine.Limit)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
	if len(cfg.Pipeline.Nodes) != 2 || cfg.Pipeline.Nodes[0].Type != "filter.expr" {
		t.Fatalf("pipeline = %+v", cfg.Pipeline)
	}

	table := cfg.ColorTable()
	if got := table.Score("green", "beige"); got != 0.9 {
		t.Errorf("green/beige = %v", got)
	}
	if got := table.Score("red", "black"); got != 0.7 {
		t.Errorf("red/black = %v", got)
	}
	if got := table.Score("black", "white"); got != 1.0 {
		t.Errorf("black/white = %v, default entries must survive", got)
	}
	if got := rank.DefaultColorTable().Score("red", "black"); got != 0.6 {
		t.Errorf("default table mutated: %v", got)
	}

	factory, err := cfg.ModelFactory()
	if err != nil {
		t.Fatal(err)
	}
	if got := factory().Name(); got != "knn" {
		t.Errorf("model = %q", got)
	}

	nodes, err := cfg.PipelineConfig().BuildNodes(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildNodes: %v", err)
	}
	if len(nodes) != 2 {
		t.Errorf("nodes = %d", len(nodes))
	}
}

func TestConfig_ColorTableNormalizesOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Colors = []config.ColorOverride{
		{Top: " Green", Bottom: "BEIGE ", Score: 0.95},
		{Top: "Red", Bottom: "Black", Score: 0.7},
	}

	table := cfg.ColorTable()
	if got := table.Score("green", "beige"); got != 0.95 {
		t.Errorf("green/beige = %v, want 0.95", got)
	}
	if got := table.Score("red", "black"); got != 0.7 {
		t.Errorf("red/black = %v, want 0.7", got)
	}
	if _, ok := table[rank.ColorPair{Top: "Red", Bottom: "Black"}]; ok {
		t.Error("mixed-case key kept in table")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"candidates", func(c *config.Config) { c.Engine.Candidates = 0 }},
		{"model", func(c *config.Config) { c.Engine.Model = "svm" }},
		{"row policy", func(c *config.Config) { c.Catalog.RowPolicy = "skip" }},
		{"color score", func(c *config.Config) {
			c.Colors = []config.ColorOverride{{Top: "red", Bottom: "red", Score: 1.5}}
		}},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"node type", func(c *config.Config) {
			c.Pipeline.Nodes = append(c.Pipeline.Nodes, pipeline.NodeConfig{Type: "rank.lr"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if err := cfg.Validate(); err != nil {
				t.Fatalf("default config invalid: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); !core.IsInvalidInput(err) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "engine:\n  model: svm\n")
	if _, err := config.Load(path); !core.IsInvalidInput(err) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := config.SupportedTypes()
	want := map[string]bool{"filter": true, "filter.expr": true, "filter.unavailable": true}
	for _, typ := range types {
		delete(want, typ)
	}
	if len(want) != 0 {
		t.Errorf("missing types: %v (have %v)", want, types)
	}
}
