package engine

import (
	"bytes"
	"context"
	"math/rand"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/mediakind"
)

func addFile(t *testing.T, fs afero.Fs, path string, size int) internal.FileRecord {
	t.Helper()
	if err := afero.WriteFile(fs, path, bytes.Repeat([]byte{0x5A}, size), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	return internal.FileRecord{
		Path: path,
		Size: int64(size),
		Kind: mediakind.DetectPath(path),
	}
}

func runEngine(t *testing.T, fs afero.Fs, records []internal.FileRecord) *internal.DuplicateReport {
	t.Helper()
	eng := New(Options{SampleBytes: 1024, Workers: 4})
	return eng.Run(context.Background(), fs, records)
}

func TestRun_EmptyInput(t *testing.T) {
	report := runEngine(t, afero.NewMemMapFs(), nil)

	if report.TotalFiles != 0 || report.Partial {
		t.Errorf("empty input should yield an empty non-partial report: %+v", report)
	}
	if len(report.ExactGroups) != 0 || len(report.FuzzyGroups) != 0 {
		t.Errorf("empty input must not produce groups: %+v", report)
	}
}

func TestRun_NameVariantsCluster(t *testing.T) {
	// 大小全部不同，只能靠文件名相似聚类
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/Foo Bar.mp4", 1000),
		addFile(t, fs, "/foo_bar.mp4", 2000),
		addFile(t, fs, "/FooBar.mp4", 3000),
	}

	report := runEngine(t, fs, records)

	if len(report.ExactGroups) != 0 {
		t.Errorf("distinct sizes must not form exact groups: %v", report.ExactGroups)
	}
	if len(report.FuzzyGroups) != 1 {
		t.Fatalf("expected 1 fuzzy group, got %v", report.FuzzyGroups)
	}
	g := report.FuzzyGroups[0]
	if len(g.Paths) != 3 {
		t.Errorf("all three name variants should cluster: %v", g.Paths)
	}
	if g.Similarity < 0.75 || g.Similarity > 1 {
		t.Errorf("cluster similarity %v out of expected range", g.Similarity)
	}
	if report.FuzzyDuplicates != 2 {
		t.Errorf("FuzzyDuplicates = %d, want 2", report.FuzzyDuplicates)
	}
}

func TestRun_ExactDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/video.mp4", 5000),
		addFile(t, fs, "/backup/video.mp4", 5000),
		addFile(t, fs, "/other.mp4", 7777),
	}

	report := runEngine(t, fs, records)

	if len(report.ExactGroups) != 1 {
		t.Fatalf("expected 1 exact group, got %v", report.ExactGroups)
	}
	if report.ExactDuplicates != 1 {
		t.Errorf("ExactDuplicates = %d, want 1", report.ExactDuplicates)
	}
}

func TestRun_CrossMediaKindNotClustered(t *testing.T) {
	// 视频和对应字幕名字几乎一样，但媒体类型不同，不应聚为重复
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/movie.mkv", 1000),
		addFile(t, fs, "/movie.srt", 2000),
	}

	report := runEngine(t, fs, records)

	if len(report.FuzzyGroups) != 0 {
		t.Errorf("video/subtitle pair must not cluster: %v", report.FuzzyGroups)
	}
}

func TestRun_EpisodePairNotClustered(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/show s01e01.mkv", 1000),
		addFile(t, fs, "/show s01e02.mkv", 2000),
	}

	report := runEngine(t, fs, records)

	if len(report.FuzzyGroups) != 0 {
		t.Errorf("sequential episodes must not cluster: %v", report.FuzzyGroups)
	}
}

func TestRun_TrailingCopyNumeralsCluster(t *testing.T) {
	// 结尾的副本序号（" 1"、" (2)"）在分词时被剥掉，两个名字归一化后
	// 完全相同，按副本聚类；s01e01 这类内嵌集数才会被顺序过滤器拒绝
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/show 1.mp4", 1000),
		addFile(t, fs, "/show 2.mp4", 2000),
	}

	report := runEngine(t, fs, records)

	if len(report.FuzzyGroups) != 1 || len(report.FuzzyGroups[0].Paths) != 2 {
		t.Fatalf("trailing copy numerals should cluster, got %v", report.FuzzyGroups)
	}
}

func TestRun_InputOrderIrrelevant(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/Foo Bar.mp4", 1000),
		addFile(t, fs, "/foo_bar.mp4", 2000),
		addFile(t, fs, "/FooBar.mp4", 3000),
		addFile(t, fs, "/holiday photo.jpg", 4000),
		addFile(t, fs, "/holiday-photo (1).jpg", 5000),
		addFile(t, fs, "/unrelated.pdf", 6000),
	}

	base := runEngine(t, fs, records)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]internal.FileRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		report := runEngine(t, fs, shuffled)
		if !reflect.DeepEqual(report.FuzzyGroups, base.FuzzyGroups) {
			t.Fatalf("trial %d: fuzzy groups depend on input order:\n%v\nvs\n%v",
				trial, report.FuzzyGroups, base.FuzzyGroups)
		}
		if !reflect.DeepEqual(report.ExactGroups, base.ExactGroups) {
			t.Fatalf("trial %d: exact groups depend on input order", trial)
		}
	}
}

func TestRun_CancelledMarksPartial(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/a.mp4", 1000),
		addFile(t, fs, "/b.mp4", 1000),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(Options{SampleBytes: 1024, Workers: 4})
	report := eng.Run(ctx, fs, records)

	if !report.Partial {
		t.Error("cancelled run must be marked partial")
	}
}

func TestRun_NoDuplicatesIsNotPartial(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/alpha.mp4", 1000),
		addFile(t, fs, "/completely different.pdf", 2000),
	}

	report := runEngine(t, fs, records)

	if report.Partial {
		t.Error("a clean run with no duplicates must not be partial")
	}
	if report.ExactDuplicates != 0 || report.FuzzyDuplicates != 0 {
		t.Errorf("unexpected duplicates: %+v", report)
	}
}

func TestRun_ProgressChannelCloses(t *testing.T) {
	fs := afero.NewMemMapFs()
	records := []internal.FileRecord{
		addFile(t, fs, "/a.mp4", 1000),
		addFile(t, fs, "/b.mp4", 1000),
	}

	eng := New(Options{SampleBytes: 1024, Workers: 2})
	done := make(chan struct{})
	go func() {
		for range eng.Progress() {
		}
		close(done)
	}()

	eng.Run(context.Background(), fs, records)
	<-done // Run 返回后进度通道必须关闭
}
