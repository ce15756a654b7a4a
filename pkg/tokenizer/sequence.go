package tokenizer

import (
	"regexp"
	"strconv"
	"strings"
)

// Sequence 文件名词干尾部的序列号标记
type Sequence struct {
	Len int // 命中的字符数，从词干尾部剥离
	Num int // 序列值
}

// 支持的尾部序列样式：`foo-3`、`foo 3`、`foo copy 3`、`foo (3)`
var reSeq = regexp.MustCompile(`(?:[- ](\d+)| copy (\d+)| \((\d+)\))$`)

// ExtractSequence 提取词干尾部的序列号，没有则返回 nil。
// macOS 移动时第一次 "Keep both files" 生成的 " copy" 没有数字，按 2 处理。
func ExtractSequence(stem string) *Sequence {
	if strings.HasSuffix(stem, " copy") {
		return &Sequence{Len: len(" copy"), Num: 2}
	}

	m := reSeq.FindStringSubmatch(stem)
	if m == nil {
		return nil
	}
	for _, g := range m[1:] {
		if g != "" {
			num, err := strconv.Atoi(g)
			if err != nil {
				num = 1
			}
			return &Sequence{Len: len(m[0]), Num: num}
		}
	}
	return nil
}

// StripSequence 反复剥离尾部序列号，支持 `foo-3 copy 2` 这类叠加的情况
func StripSequence(stem string) string {
	for {
		seq := ExtractSequence(stem)
		if seq == nil {
			return stem
		}
		stem = stem[:len(stem)-seq.Len]
	}
}
