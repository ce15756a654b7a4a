package corpus

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/tokenizer"
)

// Document 一个参与模糊比较的文件及其归一化结果
type Document struct {
	Index  int // records 切片中的下标
	Path   string
	Kind   internal.MediaKind
	Norm   string   // 保留词序的归一化词干
	Tokens []string // 有序去重的 token 集合
	Joined string   // Tokens 拼接串，供编辑距离使用
}

// Corpus 语料库：一次构建，之后只读，可被多个评分协程并发读取
type Corpus struct {
	docs     []Document
	freq     map[string]int   // token -> 文档频次
	postings map[string][]int // token -> 倒排表（文档下标，升序）
}

// Build 对所有文件记录做一次分词，构建词频表和倒排索引
func Build(records []internal.FileRecord) *Corpus {
	c := &Corpus{
		docs:     make([]Document, len(records)),
		freq:     make(map[string]int),
		postings: make(map[string][]int),
	}

	for i, rec := range records {
		stem := fileStem(rec.Path)
		tokens := tokenizer.Tokenize(stem)
		c.docs[i] = Document{
			Index:  i,
			Path:   rec.Path,
			Kind:   rec.Kind,
			Norm:   tokenizer.NormalizeStem(stem),
			Tokens: tokens,
			Joined: tokenizer.Joined(tokens),
		}

		// token 在 Tokenize 后已去重，每个文件对每个 token 只计一次
		for _, t := range tokens {
			c.freq[t]++
			c.postings[t] = append(c.postings[t], i)
		}
	}

	return c
}

// Doc 按下标取文档
func (c *Corpus) Doc(i int) *Document {
	return &c.docs[i]
}

// Len 文档总数
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Freq token 的文档频次
func (c *Corpus) Freq(token string) int {
	return c.freq[token]
}

// Rarity 稀有度权重：1 / ln(1+freq)，越少见的 token 权重越大
func (c *Corpus) Rarity(token string) float64 {
	f := c.freq[token]
	if f == 0 {
		return 0
	}
	return 1 / math.Log(1+float64(f))
}

// Pair 候选文件对，恒有 A < B
type Pair struct {
	A, B int
}

// CandidatePairs 从倒排表生成候选对：只比较至少共享一个 token 的文件，
// 同一对只生成一次，结果按 (A, B) 升序排列，保证运行之间顺序稳定。
func (c *Corpus) CandidatePairs() []Pair {
	seen := make(map[Pair]struct{})

	for _, posting := range c.postings {
		for i := 0; i < len(posting); i++ {
			for j := i + 1; j < len(posting); j++ {
				p := Pair{A: posting[i], B: posting[j]}
				seen[p] = struct{}{}
			}
		}
	}

	pairs := make([]Pair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
