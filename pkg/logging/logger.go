// Package logging 提供基于 zerolog 的日志初始化。
//
// 入口处调用一次 New，得到的 zerolog.Logger 通过参数注入到 Engine / Server，
// 各组件用 With().Str("component", ...) 派生子 logger。
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config 是日志配置。
type Config struct {
	// Level: trace, debug, info, warn, error（默认 info）
	Level string `koanf:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`

	// Format: json 或 console（默认 json）
	Format string `koanf:"format" yaml:"format" validate:"omitempty,oneof=json console"`

	// Output 为 nil 时写到 stderr
	Output io.Writer `koanf:"-" yaml:"-"`
}

// ParseLevel 解析日志级别，无法识别时返回 info。
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New 根据配置创建 logger。
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Output != nil {
		out = cfg.Output
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Nop 返回丢弃所有输出的 logger，测试与默认选项使用。
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
