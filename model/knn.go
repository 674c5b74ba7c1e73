package model

import (
	"math"
	"sort"
)

// KNN 是 k 近邻分类器：置信度为 k 个最近训练样本中占比最高的标签的比例。
// 距离为欧氏距离，距离相同时按训练顺序取靠前的样本，结果确定。
type KNN struct {
	K int // 默认 3，超过样本数时取样本数

	rows    [][]float64
	y       []int
	classes []string
}

func (m *KNN) Name() string { return "knn" }

// Classes 返回训练时见过的全部标签（字典序）
func (m *KNN) Classes() []string { return append([]string(nil), m.classes...) }

func (m *KNN) Train(rows [][]float64, labels []string) error {
	if _, err := validateTrainingSet(rows, labels); err != nil {
		return err
	}
	classes, y := indexClasses(labels)

	m.rows = make([][]float64, len(rows))
	for i, r := range rows {
		m.rows[i] = append([]float64(nil), r...)
	}
	m.y = y
	m.classes = classes
	return nil
}

func (m *KNN) Confidence(row []float64) float64 {
	if len(m.rows) == 0 {
		return 0
	}
	k := m.K
	if k <= 0 {
		k = 3
	}
	if k > len(m.rows) {
		k = len(m.rows)
	}

	order := make([]int, len(m.rows))
	dist := make([]float64, len(m.rows))
	for i, r := range m.rows {
		order[i] = i
		dist[i] = euclidean(r, row)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist[order[a]] < dist[order[b]]
	})

	votes := make([]float64, len(m.classes))
	for _, i := range order[:k] {
		votes[m.y[i]]++
	}
	_, top := argmax(votes)
	return top / float64(k)
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - featureAt(b, i)
		sum += d * d
	}
	return math.Sqrt(sum)
}

var _ ConfidenceModel = (*KNN)(nil)
