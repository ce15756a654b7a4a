package internal

const (
	// DefaultSampleSize 内容采样窗口大小（字节），0 表示关闭采样
	DefaultSampleSize = 2 * 1024

	// DefaultWorkers 相似度计算的默认工作协程数
	DefaultWorkers = 8

	// DefaultChunkSize 每个评分任务包含的候选对数量
	DefaultChunkSize = 256

	// DefaultHistoryPath 扫描历史数据库默认路径
	DefaultHistoryPath = "~/.dupe-finder/history.db"

	// DefaultBufferSize 进度通道缓冲区大小
	DefaultBufferSize = 100
)
