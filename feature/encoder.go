package feature

import (
	"sort"
	"strconv"

	"github.com/rushteam/outfit/core"
)

// LabelEncoder Label 编码（标签编码）
// 将类别映射为整数 0..n-1。编码顺序为去重后的字典序（与拟合时的输入顺序无关），
// 因此同一份数据无论行顺序如何，得到的编码都相同。
//
// 拟合后只读，可在多个请求间并发使用。
type LabelEncoder struct {
	// Attr 是被编码的属性名（如 "color"），只用于错误信息
	Attr    string
	classes []string
	index   map[string]int
}

// FitLabelEncoder 在 values 上拟合编码器。
func FitLabelEncoder(attr string, values []string) *LabelEncoder {
	seen := make(map[string]struct{}, len(values))
	classes := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		classes = append(classes, v)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{Attr: attr, classes: classes, index: index}
}

// Encode 返回 value 的编码；拟合时未出现的取值返回 UNKNOWN_CATEGORY。
func (e *LabelEncoder) Encode(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, core.NewUnknownCategoryError(core.ModuleFeature, e.Attr, value)
	}
	return code, nil
}

// Decode 是 Encode 的逆运算。
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", core.NewUnknownCategoryError(core.ModuleFeature, e.Attr+" code", strconv.Itoa(code))
	}
	return e.classes[code], nil
}

// Has 判断取值是否在拟合时出现过
func (e *LabelEncoder) Has(value string) bool {
	_, ok := e.index[value]
	return ok
}

// Classes 返回按编码顺序排列的全部类别（拷贝）
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Len 返回类别数
func (e *LabelEncoder) Len() int { return len(e.classes) }
