package cluster

import "sort"

// UnionFind 并查集，扁平数组实现，带路径压缩和按大小合并。
// 每个根额外维护集合的运行平均相似度。
type UnionFind struct {
	parent []int
	size   []int
	avg    []float64 // 仅根下标有效
}

// New 创建 n 个单元素集合
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		size:   make([]int, n),
		avg:    make([]float64, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Find 查找根节点，沿途做路径压缩
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		uf.parent[x], x = root, uf.parent[x]
	}
	return root
}

// Union 按给定边得分合并两个集合。
// 合并后的平均相似度是两个输入平均值和新边得分的加权平均，
// 权重取各集合的内部边数（大小减一），单条离群边不会左右大集合的置信度。
// 两个元素已在同一集合时不做任何事。
func (uf *UnionFind) Union(x, y int, score float64) {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return
	}

	ex := float64(uf.size[rx] - 1)
	ey := float64(uf.size[ry] - 1)
	merged := (uf.avg[rx]*ex + uf.avg[ry]*ey + score) / (ex + ey + 1)

	// 小树挂到大树下
	if uf.size[rx] < uf.size[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	uf.avg[rx] = merged
}

// Size 集合大小
func (uf *UnionFind) Size(x int) int {
	return uf.size[uf.Find(x)]
}

// Avg 集合的运行平均相似度
func (uf *UnionFind) Avg(x int) float64 {
	return uf.avg[uf.Find(x)]
}

// Groups 返回所有大小 >= 2 的集合，成员按下标升序，
// 组之间按首个成员下标升序。
func (uf *UnionFind) Groups() [][]int {
	byRoot := make(map[int][]int)
	for i := range uf.parent {
		root := uf.Find(i)
		byRoot[root] = append(byRoot[root], i)
	}

	var groups [][]int
	for _, members := range byRoot {
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)
		groups = append(groups, members)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}
