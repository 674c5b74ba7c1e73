package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述额外的保留条件：表达式为 true 的候选保留，否则过滤。
// 变量见 dsl.Program。
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput,
			fmt.Sprintf("filter: invalid expression %q", expr), err)
	}
	return &ExprFilter{program: p}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

// Expr 返回原始表达式
func (f *ExprFilter) Expr() string {
	return f.program.String()
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredItem,
) (bool, error) {
	keep, err := f.program.Eval(item, rctx)
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", f.Name(), f.Expr(), err)
	}
	return !keep, nil
}
