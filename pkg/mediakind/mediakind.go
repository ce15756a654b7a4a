package mediakind

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	"github.com/moyu-x/dupe-finder/internal"
)

// 扩展名分类表，覆盖常见格式；不认识的扩展名归为 unknown
var extKinds = map[string]internal.MediaKind{}

func init() {
	register(internal.KindVideo, "mp4", "mkv", "mov", "webm", "avi", "wmv",
		"mpg", "mpeg", "flv", "3gp", "rmvb", "m4v", "ts", "vob")
	register(internal.KindSubtitle, "srt", "ass", "ssa", "sub", "vtt", "idx")
	register(internal.KindAudio, "mp3", "flac", "aac", "ogg", "wav", "wma",
		"m4a", "opus", "ape")
	register(internal.KindImage, "jpg", "jpeg", "png", "gif", "webp", "bmp",
		"tiff", "heic")
	register(internal.KindArchive, "zip", "rar", "7z", "tar", "gz", "bz2", "xz")
	register(internal.KindDocument, "pdf", "doc", "docx", "xls", "xlsx", "ppt",
		"pptx", "txt", "rtf", "md", "epub", "mobi", "odt", "ods", "odp")
}

func register(kind internal.MediaKind, exts ...string) {
	for _, ext := range exts {
		extKinds[ext] = kind
	}
}

// DetectPath 根据扩展名判断文件的媒体类型
func DetectPath(path string) internal.MediaKind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if kind, ok := extKinds[ext]; ok {
		return kind
	}
	return internal.KindUnknown
}

// DetectBytes 根据文件头部字节嗅探媒体类型，用于扩展名不可靠的文件
func DetectBytes(head []byte) internal.MediaKind {
	t, err := filetype.Match(head)
	if err != nil || t == types.Unknown {
		return internal.KindUnknown
	}

	switch t.MIME.Type {
	case "video":
		return internal.KindVideo
	case "audio":
		return internal.KindAudio
	case "image":
		return internal.KindImage
	}

	switch t.Extension {
	case "zip", "tar", "gz", "bz2", "rar", "7z", "xz":
		return internal.KindArchive
	case "pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "epub", "mobi":
		return internal.KindDocument
	}

	return internal.KindUnknown
}

// Compatible 判断两个媒体类型是否允许聚成同一个模糊重复组。
// 两边类型都已知且不同才拒绝（视频和它的字幕不是彼此的副本）；
// 识别不了的文件不做限制。
func Compatible(a, b internal.MediaKind) bool {
	if a == internal.KindUnknown || b == internal.KindUnknown {
		return true
	}
	return a == b
}
