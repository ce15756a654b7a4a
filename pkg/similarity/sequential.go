package similarity

import "unicode"

type chunk struct {
	numeric bool
	text    string
}

// splitChunks 把字符串切成数字段和文本段交替的序列
func splitChunks(s string) []chunk {
	var chunks []chunk
	start := 0
	curNumeric := false

	for i, r := range s {
		isNum := unicode.IsDigit(r)
		if i == 0 {
			curNumeric = isNum
			continue
		}
		if isNum != curNumeric {
			chunks = append(chunks, chunk{numeric: curNumeric, text: s[start:i]})
			start = i
			curNumeric = isNum
		}
	}
	if len(s) > 0 {
		chunks = append(chunks, chunk{numeric: curNumeric, text: s[start:]})
	}
	return chunks
}

// SequentialPair 判断两个归一化词干是否只在数字位置上不同。
// "show s01e01" 和 "show s01e02" 是同一系列的相邻条目而非副本，
// 这类文件对在评分前被整体排除。
func SequentialPair(a, b string) bool {
	ca, cb := splitChunks(a), splitChunks(b)
	if len(ca) != len(cb) {
		return false
	}

	numericDiff := false
	for i := range ca {
		if ca[i].numeric != cb[i].numeric {
			return false
		}
		if ca[i].text == cb[i].text {
			continue
		}
		if !ca[i].numeric {
			// 文本段不同，不是单纯的序列号差异
			return false
		}
		numericDiff = true
	}
	return numericDiff
}
