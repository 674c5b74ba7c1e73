package model

import "sort"

// DecisionTree 是确定性的 CART 分类树（Gini 不纯度）。
//
// 分裂规则：
//   - 依次尝试每个特征，在相邻两个不同取值的中点处切分
//   - 选择加权 Gini 最小的切分；不纯度相同时保留先找到的（特征下标小、阈值小）
//   - 节点纯净、样本数不足 MinSamplesSplit、达到 MaxDepth 或所有特征取值相同时成为叶子
//
// 叶子保存训练样本的类别分布，Confidence 返回其中的最大概率。
// 相同的输入（含行顺序）总能得到相同的树，不依赖随机数。
type DecisionTree struct {
	MaxDepth        int // 0 表示不限
	MinSamplesSplit int // 默认 2

	classes []string
	root    *treeNode
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	proba     []float64 // 仅叶子节点
}

func (n *treeNode) leaf() bool { return n.left == nil }

func (m *DecisionTree) Name() string { return "decision_tree" }

// Classes 返回训练时见过的全部标签（字典序）
func (m *DecisionTree) Classes() []string { return append([]string(nil), m.classes...) }

func (m *DecisionTree) Train(rows [][]float64, labels []string) error {
	width, err := validateTrainingSet(rows, labels)
	if err != nil {
		return err
	}
	classes, y := indexClasses(labels)

	b := &treeBuilder{
		rows:       rows,
		y:          y,
		numClasses: len(classes),
		width:      width,
		maxDepth:   m.MaxDepth,
		minSplit:   m.MinSamplesSplit,
	}
	if b.minSplit < 2 {
		b.minSplit = 2
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}

	m.classes = classes
	m.root = b.build(idx, 0)
	return nil
}

// Confidence 返回样本落入叶子的最大类别概率；未训练时返回 0。
func (m *DecisionTree) Confidence(row []float64) float64 {
	_, p := m.Predict(row)
	return p
}

// Predict 返回概率最大的标签及其概率。
func (m *DecisionTree) Predict(row []float64) (string, float64) {
	proba := m.PredictProba(row)
	if proba == nil {
		return "", 0
	}
	i, p := argmax(proba)
	return m.classes[i], p
}

// PredictProba 返回各类别（按 Classes 顺序）的概率。
func (m *DecisionTree) PredictProba(row []float64) []float64 {
	if m.root == nil {
		return nil
	}
	n := m.root
	for !n.leaf() {
		if featureAt(row, n.feature) <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return append([]float64(nil), n.proba...)
}

// Depth 返回树的深度（只有根节点时为 0）
func (m *DecisionTree) Depth() int {
	var depth func(n *treeNode) int
	depth = func(n *treeNode) int {
		if n == nil || n.leaf() {
			return 0
		}
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(m.root)
}

type treeBuilder struct {
	rows       [][]float64
	y          []int
	numClasses int
	width      int
	maxDepth   int
	minSplit   int
}

func (b *treeBuilder) counts(idx []int) []int {
	c := make([]int, b.numClasses)
	for _, i := range idx {
		c[b.y[i]]++
	}
	return c
}

func (b *treeBuilder) leaf(counts []int, n int) *treeNode {
	proba := make([]float64, len(counts))
	for i, c := range counts {
		proba[i] = float64(c) / float64(n)
	}
	return &treeNode{proba: proba}
}

func (b *treeBuilder) build(idx []int, depth int) *treeNode {
	counts := b.counts(idx)
	if len(idx) < b.minSplit || gini(counts, len(idx)) == 0 ||
		(b.maxDepth > 0 && depth >= b.maxDepth) {
		return b.leaf(counts, len(idx))
	}

	feature, threshold, ok := b.bestSplit(idx, counts)
	if !ok {
		return b.leaf(counts, len(idx))
	}

	var left, right []int
	for _, i := range idx {
		if b.rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left, depth+1),
		right:     b.build(right, depth+1),
	}
}

func (b *treeBuilder) bestSplit(idx []int, total []int) (int, float64, bool) {
	n := len(idx)
	bestFeature, bestThreshold := -1, 0.0
	bestImpurity := 0.0

	sorted := make([]int, n)
	leftCounts := make([]int, b.numClasses)
	rightCounts := make([]int, b.numClasses)

	for f := 0; f < b.width; f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.rows[sorted[i]][f] < b.rows[sorted[j]][f]
		})
		for c := range leftCounts {
			leftCounts[c] = 0
			rightCounts[c] = total[c]
		}

		for pos := 1; pos < n; pos++ {
			moved := b.y[sorted[pos-1]]
			leftCounts[moved]++
			rightCounts[moved]--

			prev, cur := b.rows[sorted[pos-1]][f], b.rows[sorted[pos]][f]
			if cur <= prev {
				continue
			}
			nl, nr := pos, n-pos
			impurity := (float64(nl)*gini(leftCounts, nl) + float64(nr)*gini(rightCounts, nr)) / float64(n)
			if bestFeature < 0 || impurity < bestImpurity {
				bestFeature = f
				bestThreshold = prev + (cur-prev)/2
				bestImpurity = impurity
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

var _ ConfidenceModel = (*DecisionTree)(nil)
