package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/logger"
	"github.com/moyu-x/dupe-finder/pkg/mediakind"
)

// Scanner 递归收集文件记录。
// 隐藏文件和隐藏目录默认跳过，路径可用正则包含/排除。
type Scanner struct {
	fs            afero.Fs
	IncludeHidden bool
	include       *regexp.Regexp
	exclude       *regexp.Regexp
}

func New(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// SetInclude 只收集路径匹配该正则的文件（大小写不敏感）
func (s *Scanner) SetInclude(expr string) error {
	re, err := compile(expr)
	if err != nil {
		return fmt.Errorf("无效的 include 正则 %q: %w", expr, err)
	}
	s.include = re
	return nil
}

// SetExclude 排除路径匹配该正则的文件（大小写不敏感）
func (s *Scanner) SetExclude(expr string) error {
	re, err := compile(expr)
	if err != nil {
		return fmt.Errorf("无效的 exclude 正则 %q: %w", expr, err)
	}
	s.exclude = re
	return nil
}

func compile(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	return regexp.Compile("(?i)" + expr)
}

// Collect 遍历所有根目录，返回文件记录。
// 遍历中消失或无法访问的条目记录日志后跳过。
func (s *Scanner) Collect(roots []string) ([]internal.FileRecord, error) {
	var records []internal.FileRecord

	for _, root := range roots {
		logger.Get().Debug().Msgf("扫描目录: %s", root)

		err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				logger.Get().Warn().Err(err).Msgf("跳过无法访问的条目: %s", path)
				return nil
			}

			hidden := strings.HasPrefix(filepath.Base(path), ".")

			if info.IsDir() {
				if hidden && !s.IncludeHidden && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if hidden && !s.IncludeHidden {
				return nil
			}
			if s.include != nil && !s.include.MatchString(path) {
				return nil
			}
			if s.exclude != nil && s.exclude.MatchString(path) {
				return nil
			}

			records = append(records, internal.FileRecord{
				Path:      path,
				Size:      info.Size(),
				CreatedAt: info.ModTime(),
				Kind:      mediakind.DetectPath(path),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("遍历目录失败 %s: %w", root, err)
		}
	}

	logger.Get().Info().Msgf("扫描完成，共收集 %d 个文件", len(records))
	return records, nil
}
