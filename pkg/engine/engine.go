package engine

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/cluster"
	"github.com/moyu-x/dupe-finder/pkg/corpus"
	"github.com/moyu-x/dupe-finder/pkg/logger"
	"github.com/moyu-x/dupe-finder/pkg/mediakind"
	"github.com/moyu-x/dupe-finder/pkg/sampler"
	"github.com/moyu-x/dupe-finder/pkg/similarity"
)

type Options struct {
	SampleBytes int // 采样窗口大小，0 关闭内容采样
	Workers     int
	ChunkSize   int
}

// Engine 重复文件检测引擎。不修改文件系统，只对输入的文件记录分类。
// 一个实例只能 Run 一次，Run 返回时进度通道已关闭；再次检测请新建实例。
type Engine struct {
	opts     Options
	progress chan internal.ProgressUpdate
}

func New(opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = internal.DefaultWorkers
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = internal.DefaultChunkSize
	}
	return &Engine{
		opts:     opts,
		progress: make(chan internal.ProgressUpdate, internal.DefaultBufferSize),
	}
}

// Progress 引擎进度通道，Run 返回时关闭
func (e *Engine) Progress() <-chan internal.ProgressUpdate {
	return e.progress
}

// Run 执行一次完整检测：精确分组 + 模糊聚类。
// ctx 取消时尽快停止采样和评分，返回已完成部分并标记 Partial。
func (e *Engine) Run(ctx context.Context, fs afero.Fs, records []internal.FileRecord) *internal.DuplicateReport {
	defer close(e.progress)

	report := &internal.DuplicateReport{TotalFiles: len(records)}
	if len(records) == 0 {
		return report
	}

	// 精确重复：按大小分组后采样比较
	smp := sampler.New(fs, e.opts.SampleBytes)
	groups, errs, partial := smp.ExactGroups(ctx, records)
	report.ExactGroups = groups
	report.SampleErrors = errs
	for _, g := range groups {
		report.ExactDuplicates += len(g.Paths) - 1
	}
	e.send(internal.ProgressUpdate{
		Phase:        internal.PhaseSampling,
		SampledFiles: smp.SampledCount(),
		TotalFiles:   len(records),
	})
	logger.Get().Info().Msgf("精确分组完成: %d 组, 采样 %d/%d 个文件",
		len(groups), smp.SampledCount(), len(records))

	if partial {
		report.Partial = true
		return report
	}

	// 模糊重复：分词 -> 倒排索引 -> 并行评分 -> 并查集聚类
	e.refineKinds(fs, records)
	c := corpus.Build(records)
	pairs := c.CandidatePairs()
	logger.Get().Info().Msgf("倒排索引生成 %d 个候选对", len(pairs))

	edges, cancelled := e.scorePairs(ctx, c, pairs)
	if cancelled {
		report.Partial = true
	}

	// 并查集由单一消费者按候选对的规范顺序合并，保证成员关系确定
	uf := cluster.New(len(records))
	for _, edge := range edges {
		uf.Union(edge.pair.A, edge.pair.B, edge.score)
	}

	for _, members := range uf.Groups() {
		paths := make([]string, len(members))
		for i, idx := range members {
			paths[i] = records[idx].Path
		}
		sort.Strings(paths)
		report.FuzzyGroups = append(report.FuzzyGroups, internal.FuzzyGroup{
			Paths:      paths,
			Similarity: uf.Avg(members[0]),
		})
		report.FuzzyDuplicates += len(members) - 1
	}
	sort.Slice(report.FuzzyGroups, func(i, j int) bool {
		return report.FuzzyGroups[i].Paths[0] < report.FuzzyGroups[j].Paths[0]
	})

	return report
}

type edge struct {
	pair  corpus.Pair
	score float64
}

// scorePairs 把候选对切块后交给协程池并行评分。
// 评分只读取不可变的语料库；接受的边按块序收集，整体保持规范顺序。
func (e *Engine) scorePairs(ctx context.Context, c *corpus.Corpus, pairs []corpus.Pair) ([]edge, bool) {
	if len(pairs) == 0 {
		return nil, ctx.Err() != nil
	}

	chunks := chunkPairs(pairs, e.opts.ChunkSize)
	results := make([][]edge, len(chunks))
	scorer := similarity.NewScorer(c)

	pool, err := ants.NewPool(e.opts.Workers)
	if err != nil {
		logger.Get().Error().Err(err).Msg("创建评分协程池失败，退回单协程")
		for i, chunk := range chunks {
			results[i] = scoreChunk(ctx, scorer, chunk)
		}
		return mergeResults(results), ctx.Err() != nil
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var completed atomic.Int64

	for i, chunk := range chunks {
		i, chunk := i, chunk
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i] = scoreChunk(ctx, scorer, chunk)
			done := completed.Add(1)
			e.send(internal.ProgressUpdate{
				Phase:           internal.PhaseScoring,
				CompletedChunks: int(done),
				TotalChunks:     len(chunks),
			})
		})
		if submitErr != nil {
			// 池已关闭等异常情况，当前块在本协程内完成
			results[i] = scoreChunk(ctx, scorer, chunk)
			wg.Done()
		}
	}
	wg.Wait()

	return mergeResults(results), ctx.Err() != nil
}

// scoreChunk 为一块候选对评分，块开头检查一次取消信号
func scoreChunk(ctx context.Context, scorer *similarity.Scorer, chunk []corpus.Pair) []edge {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	var edges []edge
	for _, p := range chunk {
		if score, ok := scorer.Score(p); ok {
			edges = append(edges, edge{pair: p, score: score})
		}
	}
	return edges
}

func chunkPairs(pairs []corpus.Pair, size int) [][]corpus.Pair {
	var chunks [][]corpus.Pair
	for len(pairs) > size {
		chunks = append(chunks, pairs[:size])
		pairs = pairs[size:]
	}
	return append(chunks, pairs)
}

func mergeResults(results [][]edge) []edge {
	var edges []edge
	for _, chunk := range results {
		edges = append(edges, chunk...)
	}
	return edges
}

// refineKinds 对没有扩展名的文件嗅探头部字节补全媒体类型
func (e *Engine) refineKinds(fs afero.Fs, records []internal.FileRecord) {
	for i := range records {
		if records[i].Kind != internal.KindUnknown || filepath.Ext(records[i].Path) != "" {
			continue
		}

		head, err := readHead(fs, records[i].Path)
		if err != nil {
			continue
		}
		records[i].Kind = mediakind.DetectBytes(head)
	}
}

func readHead(fs afero.Fs, path string) ([]byte, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	return buf[:n], nil
}

// send 非阻塞地投递进度更新，没有消费者时直接丢弃
func (e *Engine) send(update internal.ProgressUpdate) {
	select {
	case e.progress <- update:
	default:
	}
}
