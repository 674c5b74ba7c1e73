package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 是环境变量前缀，例如 OUTFIT_ENGINE_CANDIDATES=5。
const EnvPrefix = "OUTFIT_"

// DefaultConfigPaths 是未指定路径时依次查找的配置文件。
var DefaultConfigPaths = []string{
	"outfit.yaml",
	"outfit.yml",
}

// envKeys 把环境变量名（去掉前缀并小写）映射到配置路径。
// 字段名本身带下划线，不能简单地把 "_" 换成 "."。
var envKeys = map[string]string{
	"catalog_path":       "catalog.path",
	"catalog_key":        "catalog.key",
	"catalog_format":     "catalog.format",
	"catalog_row_policy": "catalog.row_policy",
	"engine_candidates":  "engine.candidates",
	"engine_limit":       "engine.limit",
	"engine_model":       "engine.model",
	"engine_max_depth":   "engine.max_depth",
	"engine_knn_k":       "engine.knn_k",
	"log_level":          "log.level",
	"log_format":         "log.format",
	"server_addr":        "server.addr",
	"redis_addr":         "redis.addr",
	"redis_password":     "redis.password",
	"redis_db":           "redis.db",
}

// Load 加载配置。path 为空时查找 DefaultConfigPaths，找不到则只使用默认值与环境变量。
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransform 返回空字符串的变量会被 koanf 忽略。
func envTransform(key string) string {
	k := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envKeys[k]
}

func findConfigFile() string {
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
