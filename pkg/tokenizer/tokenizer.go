package tokenizer

import (
	"sort"
	"strings"
	"unicode"
)

// NormalizeStem 归一化文件名词干：剥离序列号和媒体标记、折叠重音、
// 恢复驼峰词界、小写化，并把分隔符统一为单个空格。
// 输出保留原始词序，供编辑距离和序列号位置分析使用。
func NormalizeStem(stem string) string {
	name := StripSequence(stem)
	name = StripTags(name)
	name = foldAccents(name)
	name = splitCamel(name)
	name = strings.ToLower(name)

	fields := strings.FieldsFunc(name, isSeparator)
	return strings.Join(fields, " ")
}

// Tokenize 把文件名词干拆成有序去重的 token 集合。
// 停用词、纯数字 token 和单个 ASCII 字符会被丢弃。
func Tokenize(stem string) []string {
	fields := strings.Fields(NormalizeStem(stem))

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) == 1 && f[0] < 0x80 {
			continue
		}
		if IsStopword(f) {
			continue
		}
		if isNumeric(f) {
			continue
		}
		tokens = append(tokens, f)
	}

	sort.Strings(tokens)
	return dedup(tokens)
}

// Joined 返回供编辑距离比较的归一化 token 串
func Joined(tokens []string) string {
	return strings.Join(tokens, " ")
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// splitCamel 在小写/数字到大写的边界插入空格，"FooBar" -> "Foo Bar"。
// 全大写的名字没有可恢复的词界，原样保留。
func splitCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	prev := rune(0)
	for _, r := range s {
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, t := range sorted {
		if i == 0 || sorted[i-1] != t {
			out = append(out, t)
		}
	}
	return out
}
