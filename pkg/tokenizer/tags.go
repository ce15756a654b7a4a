package tokenizer

import "regexp"

// 常见媒体标记：分辨率、编码、来源、发布组等，不参与相似度判断
var reTags = []*regexp.Regexp{
	// 分辨率
	regexp.MustCompile(`(?i)\b(480p|576p|720p|1080p|1440p|2160p|4k|8k)\b`),
	// 视频/音频编码
	regexp.MustCompile(`(?i)\b(x264|x265|h264|h265|hevc|avc|av1|xvid|divx|10bit|hdr10?|aac|ac3|eac3|dts|truehd|atmos|flac)\b`),
	// 来源和版本标记
	regexp.MustCompile(`(?i)\b(bluray|blu-ray|bdrip|brrip|webrip|web-dl|webdl|hdtv|dvdrip|dvdscr|hdrip|camrip|remux|proper|repack|extended|unrated|remastered|legendado|dublado)\b`),
	// 方括号内的发布组标记
	regexp.MustCompile(`\[[^\]]*\]`),
}

// StripTags 去掉词干中的媒体标记
func StripTags(stem string) string {
	for _, re := range reTags {
		stem = re.ReplaceAllString(stem, " ")
	}
	return stem
}
