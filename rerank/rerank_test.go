package rerank

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/rank"
)

func scored(name, color string, score float64) *core.ScoredItem {
	it := core.NewScoredItem(&core.EncodedItem{ClothingItem: core.ClothingItem{Name: name, Color: color}})
	it.Score = score
	return it
}

func itemNames(items []*core.ScoredItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Item.Name)
	}
	return out
}

func TestTopCandidates(t *testing.T) {
	tests := []struct {
		name  string
		items []*core.ScoredItem
		k     int
		want  []string
	}{
		{
			name:  "distinct scores",
			items: []*core.ScoredItem{scored("d", "", 0.3), scored("b", "", 0.7), scored("a", "", 0.9), scored("c", "", 0.5)},
			k:     3,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "ties keep first seen",
			items: []*core.ScoredItem{scored("x", "", 1), scored("y", "", 1), scored("z", "", 1), scored("w", "", 1)},
			k:     3,
			want:  []string{"x", "y", "z"},
		},
		{
			name:  "k larger than pool",
			items: []*core.ScoredItem{scored("a", "", 0.1), scored("b", "", 0.2)},
			k:     3,
			want:  []string{"b", "a"},
		},
		{
			name:  "k zero sorts only",
			items: []*core.ScoredItem{scored("a", "", 0.1), scored("b", "", 0.2)},
			k:     0,
			want:  []string{"b", "a"},
		},
		{
			name:  "empty pool",
			items: nil,
			k:     3,
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopCandidates(tt.items, tt.k)
			if g := itemNames(got); !reflect.DeepEqual(g, tt.want) {
				t.Errorf("TopCandidates() = %v, want %v", g, tt.want)
			}
		})
	}
}

func TestTopCandidates_ScoresDescending(t *testing.T) {
	items := []*core.ScoredItem{scored("a", "", 0.9), scored("b", "", 0.7), scored("c", "", 0.5), scored("d", "", 0.3)}
	got := TopCandidates(items, 3)
	want := []float64{0.9, 0.7, 0.5}
	for i, it := range got {
		if it.Score != want[i] {
			t.Errorf("TopCandidates()[%d].Score = %v, want %v", i, it.Score, want[i])
		}
	}
	// 输入切片保持原顺序
	if itemNames(items)[0] != "a" || itemNames(items)[3] != "d" {
		t.Errorf("input reordered: %v", itemNames(items))
	}
}

func TestTopNNode_Process(t *testing.T) {
	node := &TopNNode{N: 2}
	out, err := node.Process(context.Background(), nil,
		[]*core.ScoredItem{scored("a", "", 0.1), scored("b", "", 0.3), scored("c", "", 0.2)})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if g := itemNames(out); !reflect.DeepEqual(g, []string{"b", "c"}) {
		t.Errorf("Process() = %v", g)
	}
}

func TestRankPairs(t *testing.T) {
	scorer := rank.NewPairScorer(nil)
	tops := []*core.ScoredItem{scored("t1", "red", 1), scored("t2", "black", 1)}
	bottoms := []*core.ScoredItem{scored("b1", "black", 1), scored("b2", "white", 1)}

	pairs := RankPairs(tops, bottoms, scorer)
	if len(pairs) != 4 {
		t.Fatalf("RankPairs() len = %d, want 4", len(pairs))
	}

	// t2/b2 = 1.2+1.0, t1/b2 = 1.2+0.8, t1/b1 = 1.2+0.6, t2/b1 = 1.2+0.5
	want := [][2]string{{"t2", "b2"}, {"t1", "b2"}, {"t1", "b1"}, {"t2", "b1"}}
	for i, p := range pairs {
		got := [2]string{p.Top.Item.Name, p.Bottom.Item.Name}
		if got != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, got, want[i])
		}
		if i > 0 && pairs[i-1].Score < p.Score {
			t.Errorf("pairs not sorted descending at %d", i)
		}
	}
}

func TestRankPairs_TiesKeepEnumerationOrder(t *testing.T) {
	scorer := rank.NewPairScorer(nil)
	// 颜色均未列出，所有组合得分相同
	tops := []*core.ScoredItem{scored("t1", "green", 0.5), scored("t2", "green", 0.5)}
	bottoms := []*core.ScoredItem{scored("b1", "purple", 0.5), scored("b2", "purple", 0.5)}

	pairs := RankPairs(tops, bottoms, scorer)
	want := [][2]string{{"t1", "b1"}, {"t1", "b2"}, {"t2", "b1"}, {"t2", "b2"}}
	for i, p := range pairs {
		if got := [2]string{p.Top.Item.Name, p.Bottom.Item.Name}; got != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestRankPairs_EmptyPool(t *testing.T) {
	scorer := rank.NewPairScorer(nil)
	tops := []*core.ScoredItem{scored("t1", "red", 1)}

	if got := RankPairs(tops, nil, scorer); len(got) != 0 {
		t.Errorf("RankPairs(empty bottoms) = %v, want empty", got)
	}
	if got := RankPairs(nil, tops, scorer); len(got) != 0 {
		t.Errorf("RankPairs(empty tops) = %v, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	pairs := make([]core.RankedPair, 5)
	if got := len(Truncate(pairs, 3)); got != 3 {
		t.Errorf("Truncate(5, 3) len = %d", got)
	}
	if got := len(Truncate(pairs, 0)); got != 5 {
		t.Errorf("Truncate(5, 0) len = %d", got)
	}
	if got := len(Truncate(pairs, 10)); got != 5 {
		t.Errorf("Truncate(5, 10) len = %d", got)
	}
}

func TestDiversity(t *testing.T) {
	items := []*core.ScoredItem{
		scored("black tee", "black", 0.4),
		scored("black polo", "black", 0.9),
		scored("white shirt", "white", 0.6),
		scored("black hoodie", "black", 0.9),
	}

	tests := []struct {
		name string
		max  int
		want []string
	}{
		{"one per color", 1, []string{"black polo", "white shirt"}},
		{"two per color", 2, []string{"black polo", "black hoodie", "white shirt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewDiversity("color", tt.max)
			if err != nil {
				t.Fatal(err)
			}
			got, err := n.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatal(err)
			}
			if g := itemNames(got); !reflect.DeepEqual(g, tt.want) {
				t.Errorf("Process() = %v, want %v", g, tt.want)
			}
		})
	}

	if _, err := NewDiversity("size", 1); err == nil {
		t.Error("expected error for unsupported attr")
	}
}
