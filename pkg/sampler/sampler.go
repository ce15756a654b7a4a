package sampler

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupe-finder/pkg/logger"
)

// Sampler 内容采样器：从文件的头、中、尾各读一个固定窗口，
// 用窗口内容的 xxhash 摘要作为内容指纹。
type Sampler struct {
	fs      afero.Fs
	window  int
	sampled int // 实际采样过的文件数
}

// New 创建采样器。window 为每个窗口的字节数，0 表示关闭采样。
func New(fs afero.Fs, window int) *Sampler {
	return &Sampler{fs: fs, window: window}
}

// Window 返回配置的窗口大小
func (s *Sampler) Window() int {
	return s.window
}

// SampledCount 返回已采样的文件数，用于验证单一大小文件被跳过
func (s *Sampler) SampledCount() int {
	return s.sampled
}

// Fingerprint 计算文件的内容指纹。
// 三个窗口的偏移分别是 0、size/2-window/2 和 size-window，负值取 0；
// 文件比窗口小时各窗口会重叠，对相等性判断没有影响。
func (s *Sampler) Fingerprint(path string, size int64) (uint64, error) {
	s.sampled++

	file, err := s.fs.Open(path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("打开文件失败: %s", path)
		return 0, err
	}
	defer file.Close()

	digest := xxhash.New()
	window := int64(s.window)

	offsets := []int64{0, size/2 - window/2, size - window}
	buf := make([]byte, window)

	for _, offset := range offsets {
		if offset < 0 {
			offset = 0
		}
		if offset >= size {
			continue
		}

		n, err := readFullAt(file, buf, offset)
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("读取采样窗口失败: %s @%d", path, offset)
			return 0, err
		}
		digest.Write(buf[:n])
	}

	return digest.Sum64(), nil
}

// readFullAt 从 offset 起尽量读满 buf，到文件尾为止
func readFullAt(file afero.File, buf []byte, offset int64) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := file.ReadAt(buf[read:], offset+int64(read))
		read += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return read, err
		}
	}
	return read, nil
}
