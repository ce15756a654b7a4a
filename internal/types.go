package internal

import "time"

// MediaKind 文件媒体类型分类
type MediaKind string

const (
	KindVideo    MediaKind = "video"
	KindAudio    MediaKind = "audio"
	KindImage    MediaKind = "image"
	KindSubtitle MediaKind = "subtitle"
	KindArchive  MediaKind = "archive"
	KindDocument MediaKind = "document"
	KindUnknown  MediaKind = "unknown"
)

// FileRecord 扫描器收集的文件记录，引擎运行期间只读
type FileRecord struct {
	Path      string
	Size      int64
	CreatedAt time.Time
	Kind      MediaKind
}

// SampleError 采样阶段的单文件错误，不中断整体运行
type SampleError struct {
	Path string
	Err  error
}

// ExactGroup 精确重复组：大小相同且采样窗口一致的文件
type ExactGroup struct {
	Size  int64
	Paths []string
}

// FuzzyGroup 模糊重复组：文件名相似度聚类
type FuzzyGroup struct {
	Paths      []string
	Similarity float64
}

// DuplicateReport 一次运行的最终报告
type DuplicateReport struct {
	TotalFiles      int
	ExactGroups     []ExactGroup
	FuzzyGroups     []FuzzyGroup
	ExactDuplicates int // 精确重复文件数（每组除第一个以外的文件）
	FuzzyDuplicates int // 模糊重复文件数
	SampleErrors    []SampleError
	Partial         bool // 运行被取消，报告只包含已完成的部分
}

// Phase 引擎阶段
type Phase string

const (
	PhaseSampling Phase = "sampling"
	PhaseScoring  Phase = "scoring"
)

// ProgressUpdate 引擎进度
type ProgressUpdate struct {
	Phase           Phase
	SampledFiles    int
	TotalFiles      int
	CompletedChunks int
	TotalChunks     int
}
