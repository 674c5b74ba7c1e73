package rank

// DefaultColorScore 是颜色表中未列出的有向颜色对的得分。
const DefaultColorScore = 0.5

// ColorPair 是有向颜色对 (上装颜色, 下装颜色)。
type ColorPair struct {
	Top    string
	Bottom string
}

// ColorTable 是有向的颜色搭配表，得分在 [0,1]。
// 表按有向对存储，不会自动对称化：(red, black) 与 (black, red) 可以不同。
type ColorTable map[ColorPair]float64

// DefaultColorTable 返回内置颜色搭配表。
// red→black 为 0.6 而 black→red 为 0.8，这一不对称保留原样。
func DefaultColorTable() ColorTable {
	return ColorTable{
		{"black", "white"}: 1.0,
		{"white", "black"}: 1.0,
		{"blue", "white"}:  0.9,
		{"white", "blue"}:  0.9,
		{"black", "blue"}:  0.8,
		{"blue", "black"}:  0.8,
		{"red", "black"}:   0.6,
		{"black", "red"}:   0.8,
		{"red", "white"}:   0.8,
		{"white", "red"}:   0.8,
	}
}

// Score 查表，未列出的颜色对返回 DefaultColorScore。
func (t ColorTable) Score(top, bottom string) float64 {
	if s, ok := t[ColorPair{Top: top, Bottom: bottom}]; ok {
		return s
	}
	return DefaultColorScore
}

// With 返回叠加了 overrides 的新表，原表不变。
func (t ColorTable) With(overrides ColorTable) ColorTable {
	out := make(ColorTable, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
