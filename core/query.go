package core

import "strings"

// Query 是用户给出的可选约束。
//   - Temperature 为 nil 表示不按温度过滤
//   - Purpose / Color 为空字符串表示不按该字段过滤
type Query struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Purpose     string   `json:"purpose,omitempty"`
	Color       string   `json:"color,omitempty"`
}

// Normalize 去除首尾空白并统一为小写。
func (q Query) Normalize() Query {
	out := q
	out.Purpose = strings.ToLower(strings.TrimSpace(q.Purpose))
	out.Color = strings.ToLower(strings.TrimSpace(q.Color))
	if q.Temperature != nil {
		t := *q.Temperature
		out.Temperature = &t
	}
	return out
}

// IsEmpty 表示三个条件均未给出。
func (q Query) IsEmpty() bool {
	return q.Temperature == nil && q.Purpose == "" && q.Color == ""
}

// Temp 是构造 Temperature 的便捷函数。
func Temp(v float64) *float64 {
	return &v
}
