package sampler

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupe-finder/internal"
)

func writeFile(t *testing.T, fs afero.Fs, path string, content []byte) internal.FileRecord {
	t.Helper()
	if err := afero.WriteFile(fs, path, content, 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	return internal.FileRecord{Path: path, Size: int64(len(content))}
}

// 生成 size 字节的可区分内容，mark 写在中段
func contentWithMiddle(size int, mark byte) []byte {
	buf := bytes.Repeat([]byte{0xAB}, size)
	buf[size/2] = mark
	return buf
}

func TestFingerprint_IdenticalContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := contentWithMiddle(10000, 1)
	a := writeFile(t, fs, "/a.bin", content)
	b := writeFile(t, fs, "/b.bin", content)

	s := New(fs, 2048)

	fpA, err := s.Fingerprint(a.Path, a.Size)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	fpB, err := s.Fingerprint(b.Path, b.Size)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}

	if fpA != fpB {
		t.Error("identical content should produce identical fingerprints")
	}
}

func TestFingerprint_MiddleWindowDetectsDifference(t *testing.T) {
	fs := afero.NewMemMapFs()
	a := writeFile(t, fs, "/a.bin", contentWithMiddle(10000, 1))
	b := writeFile(t, fs, "/b.bin", contentWithMiddle(10000, 2))

	s := New(fs, 2048)

	fpA, _ := s.Fingerprint(a.Path, a.Size)
	fpB, _ := s.Fingerprint(b.Path, b.Size)

	if fpA == fpB {
		t.Error("files differing in the middle window should differ in fingerprint")
	}
}

func TestFingerprint_SmallAndEmptyFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	small := writeFile(t, fs, "/small.bin", []byte("tiny"))
	empty := writeFile(t, fs, "/empty.bin", nil)

	s := New(fs, 2048)

	if _, err := s.Fingerprint(small.Path, small.Size); err != nil {
		t.Errorf("small file should sample fine: %v", err)
	}
	if _, err := s.Fingerprint(empty.Path, empty.Size); err != nil {
		t.Errorf("zero-byte file should sample fine: %v", err)
	}
}

func TestFingerprint_MissingFile(t *testing.T) {
	s := New(afero.NewMemMapFs(), 2048)

	if _, err := s.Fingerprint("/gone.bin", 100); err == nil {
		t.Error("expected error for vanished file")
	}
}

func TestExactGroups_DifferentSizesNeverGroup(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		writeFile(t, fs, "/a.bin", bytes.Repeat([]byte{1}, 100)),
		writeFile(t, fs, "/b.bin", bytes.Repeat([]byte{1}, 200)),
	}

	s := New(fs, 2048)
	groups, errs, partial := s.ExactGroups(context.Background(), records)

	if len(groups) != 0 || len(errs) != 0 || partial {
		t.Errorf("different sizes must not group: groups=%v errs=%v", groups, errs)
	}
}

func TestExactGroups_SingletonSizesSkipSampling(t *testing.T) {
	fs := afero.NewMemMapFs()
	var records []internal.FileRecord

	// 两个同大小文件，八个大小唯一的文件
	shared := bytes.Repeat([]byte{7}, 500)
	records = append(records,
		writeFile(t, fs, "/dup1.bin", shared),
		writeFile(t, fs, "/dup2.bin", shared),
	)
	for i := 0; i < 8; i++ {
		records = append(records, writeFile(t, fs, "/uniq"+string(rune('a'+i))+".bin",
			bytes.Repeat([]byte{9}, 1000+i)))
	}

	s := New(fs, 2048)
	groups, _, _ := s.ExactGroups(context.Background(), records)

	if len(groups) != 1 {
		t.Fatalf("expected 1 exact group, got %d", len(groups))
	}
	if s.SampledCount() != 2 {
		t.Errorf("sampled %d files, want 2 (singleton sizes must be skipped)", s.SampledCount())
	}
}

func TestExactGroups_SampleDisabledFallsBackToSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		writeFile(t, fs, "/a.bin", []byte("aaaa")),
		writeFile(t, fs, "/b.bin", []byte("bbbb")), // 内容不同，大小相同
	}

	s := New(fs, 0)
	groups, _, _ := s.ExactGroups(context.Background(), records)

	if len(groups) != 1 || len(groups[0].Paths) != 2 {
		t.Fatalf("sample=0 should group by size alone, got %v", groups)
	}
	if s.SampledCount() != 0 {
		t.Errorf("sample=0 must not read any file, sampled %d", s.SampledCount())
	}
}

func TestExactGroups_IOErrorExcludesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := bytes.Repeat([]byte{3}, 300)
	records := []internal.FileRecord{
		writeFile(t, fs, "/a.bin", content),
		writeFile(t, fs, "/b.bin", content),
		{Path: "/vanished.bin", Size: 300}, // 同大小但文件不存在
	}

	s := New(fs, 2048)
	groups, errs, partial := s.ExactGroups(context.Background(), records)

	if partial {
		t.Error("per-file errors must not mark the run partial")
	}
	if len(errs) != 1 || errs[0].Path != "/vanished.bin" {
		t.Fatalf("expected one sample error for /vanished.bin, got %v", errs)
	}
	if len(groups) != 1 || len(groups[0].Paths) != 2 {
		t.Errorf("remaining files should still group: %v", groups)
	}
}

func TestExactGroups_NameAgnostic(t *testing.T) {
	// 扩展名无关紧要：video.mp4 和 video.mpg.bak 大小和内容一致即成组
	fs := afero.NewMemMapFs()
	content := contentWithMiddle(2400000, 5)
	records := []internal.FileRecord{
		writeFile(t, fs, "/video.mp4", content),
		writeFile(t, fs, "/video.mpg.bak", content),
	}

	s := New(fs, 2048)
	groups, _, _ := s.ExactGroups(context.Background(), records)

	if len(groups) != 1 || len(groups[0].Paths) != 2 {
		t.Fatalf("expected one exact group of 2, got %v", groups)
	}
}

func TestExactGroups_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := bytes.Repeat([]byte{1}, 100)
	records := []internal.FileRecord{
		writeFile(t, fs, "/a.bin", content),
		writeFile(t, fs, "/b.bin", content),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(fs, 2048)
	_, _, partial := s.ExactGroups(ctx, records)

	if !partial {
		t.Error("cancelled context should yield a partial result")
	}
}
