package sampler

import (
	"context"
	"sort"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/logger"
)

// ExactGroups 按大小和内容指纹对文件分组。
// 大小在整个集合中唯一的文件不可能有精确副本，完全跳过采样；
// 窗口大小为 0 时退化为只按大小分组。
// 单文件采样错误只把该文件从分组中剔除并记录，不影响其他文件。
// 返回的 partial 为 true 表示运行被取消，分组只覆盖已处理的部分。
func (s *Sampler) ExactGroups(ctx context.Context, records []internal.FileRecord) (groups []internal.ExactGroup, errs []internal.SampleError, partial bool) {
	bySize := make(map[int64][]internal.FileRecord)
	for _, rec := range records {
		bySize[rec.Size] = append(bySize[rec.Size], rec)
	}

	// 大小排序保证分组输出顺序与输入顺序无关
	sizes := make([]int64, 0, len(bySize))
	for size, group := range bySize {
		if len(group) > 1 {
			sizes = append(sizes, size)
		}
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	for _, size := range sizes {
		select {
		case <-ctx.Done():
			logger.Get().Warn().Msg("采样被取消，返回部分精确分组")
			return groups, errs, true
		default:
		}

		group := bySize[size]

		if s.window == 0 {
			// 采样关闭，大小相同即视为精确重复
			paths := make([]string, len(group))
			for i, rec := range group {
				paths[i] = rec.Path
			}
			sort.Strings(paths)
			groups = append(groups, internal.ExactGroup{Size: size, Paths: paths})
			continue
		}

		byFp := make(map[uint64][]string, len(group))
		for _, rec := range group {
			fp, err := s.Fingerprint(rec.Path, rec.Size)
			if err != nil {
				errs = append(errs, internal.SampleError{Path: rec.Path, Err: err})
				continue
			}
			byFp[fp] = append(byFp[fp], rec.Path)
		}

		fps := make([]uint64, 0, len(byFp))
		for fp, paths := range byFp {
			if len(paths) > 1 {
				fps = append(fps, fp)
			}
		}
		sort.Slice(fps, func(i, j int) bool { return fps[i] < fps[j] })

		for _, fp := range fps {
			paths := byFp[fp]
			sort.Strings(paths)
			groups = append(groups, internal.ExactGroup{Size: size, Paths: paths})
		}
	}

	return groups, errs, false
}
