package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/outfit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("query", cel.DynType),
			cel.CrossTypeNumericComparisons(true),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的布尔表达式，使用 CEL (Common Expression Language)。
// 编译一次，可在多个请求间并发复用。
//
// 可用变量：
//   - item.name / item.type / item.color / item.purpose / item.image
//   - item.temp_min / item.temp_max / item.temp_avg（double）
//   - item.color_code / item.purpose_code（int）
//   - item.score（double，打分前为 0）
//   - item.labels（map，label key -> value）
//   - query.temperature（double 或 null）/ query.purpose / query.color
//
// 示例：
//   - `item.temp_max >= 5.0`
//   - `item.color != "pink" && item.purpose != "ceremonial"`
//   - `query.temperature == null || item.temp_min <= query.temperature`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式，表达式结果必须是 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式
func (p *Program) String() string { return p.expr }

// Eval 对单个候选求值。
func (p *Program) Eval(item *core.ScoredItem, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Evaluate 是一次性编译并求值的便捷函数，空表达式视为 true。
func Evaluate(expr string, item *core.ScoredItem, rctx *core.RecommendContext) (bool, error) {
	if expr == "" {
		return true, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Eval(item, rctx)
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(it *core.ScoredItem, rctx *core.RecommendContext) map[string]any {
	item := map[string]any{}
	if it != nil && it.Item != nil {
		labels := make(map[string]any, len(it.Labels))
		for k, v := range it.Labels {
			labels[k] = v.Value
		}
		ci := it.Item
		item = map[string]any{
			"name":         ci.Name,
			"type":         string(ci.Type),
			"color":        ci.Color,
			"purpose":      string(ci.Purpose),
			"image":        ci.Image,
			"temp_min":     ci.TempMin,
			"temp_max":     ci.TempMax,
			"temp_avg":     ci.TempAvg,
			"color_code":   int64(ci.ColorCode),
			"purpose_code": int64(ci.PurposeCode),
			"score":        it.Score,
			"labels":       labels,
		}
	}

	query := map[string]any{
		"temperature": nil,
		"purpose":     "",
		"color":       "",
	}
	if rctx != nil {
		if rctx.Query.Temperature != nil {
			query["temperature"] = *rctx.Query.Temperature
		}
		query["purpose"] = rctx.Query.Purpose
		query["color"] = rctx.Query.Color
	}

	return map[string]any{
		"item":  item,
		"query": query,
	}
}
