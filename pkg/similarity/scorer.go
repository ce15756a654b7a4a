package similarity

import (
	"github.com/agnivade/levenshtein"

	"github.com/moyu-x/dupe-finder/pkg/corpus"
	"github.com/moyu-x/dupe-finder/pkg/mediakind"
)

// 产品调优常数。编辑距离和稀有度加权集合重叠按固定凸组合合成，
// 集合分量携带稀有度信号，权重更高。
const (
	// EditWeight 编辑距离相似度的权重
	EditWeight = 0.4
	// OverlapWeight 加权 Sørensen-Dice 系数的权重
	OverlapWeight = 0.6
	// AcceptThreshold 判定为聚类边的最低得分
	AcceptThreshold = 0.75
)

// Scorer 候选对评分器。只读取不可变的语料库，可并发使用。
type Scorer struct {
	c *corpus.Corpus
}

func NewScorer(c *corpus.Corpus) *Scorer {
	return &Scorer{c: c}
}

// Score 计算候选对得分。ok 为 false 表示该对被语义过滤器拒绝
// 或得分低于阈值，不能作为聚类边。
func (s *Scorer) Score(p corpus.Pair) (score float64, ok bool) {
	a, b := s.c.Doc(p.A), s.c.Doc(p.B)

	if !mediakind.Compatible(a.Kind, b.Kind) {
		return 0, false
	}
	if SequentialPair(a.Norm, b.Norm) {
		return 0, false
	}

	editSim := editSimilarity(a.Joined, b.Joined)
	setSim := s.weightedDice(a.Tokens, b.Tokens)

	score = EditWeight*editSim + OverlapWeight*setSim
	return score, score >= AcceptThreshold
}

// editSimilarity 归一化编辑距离相似度：1 - lev(a,b)/max(len)
func editSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// weightedDice 稀有度加权的 Sørensen-Dice 系数：
// 2*Σ rarity(交集) / (Σ rarity(A) + Σ rarity(B))
func (s *Scorer) weightedDice(a, b []string) float64 {
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	var sumA, sumB, sumShared float64
	for _, t := range a {
		w := s.c.Rarity(t)
		sumA += w
		if _, shared := setB[t]; shared {
			sumShared += w
		}
	}
	for _, t := range b {
		sumB += s.c.Rarity(t)
	}

	if sumA+sumB == 0 {
		return 0
	}
	return 2 * sumShared / (sumA + sumB)
}
