package tokenizer

// 内置停用词表。词条按 foldAccents 折叠后的形式存储，
// 匹配发生在归一化之后，所以 "não" 会以 "nao" 命中。

var englishStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
	"he", "her", "his", "if", "in", "is", "it", "its", "my", "no", "not",
	"of", "on", "or", "our", "she", "so", "than", "that", "the", "their",
	"then", "this", "to", "too", "was", "were", "will", "with", "your",
}

var portugueseStopwords = []string{
	"a", "ao", "aos", "as", "com", "como", "da", "das", "de", "do", "dos",
	"e", "em", "entre", "esse", "essa", "este", "esta", "isso", "isto",
	"ja", "mais", "mas", "meu", "minha", "na", "nao", "nas", "no", "nos",
	"o", "os", "ou", "para", "pela", "pelo", "por", "que", "se", "sem",
	"seu", "sua", "sob", "sobre", "um", "uma", "umas", "uns",
}

var stopwordSet = buildStopwordSet()

func buildStopwordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(englishStopwords)+len(portugueseStopwords))
	for _, w := range englishStopwords {
		set[w] = struct{}{}
	}
	for _, w := range portugueseStopwords {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword 判断归一化后的 token 是否为停用词
func IsStopword(token string) bool {
	_, ok := stopwordSet[token]
	return ok
}
