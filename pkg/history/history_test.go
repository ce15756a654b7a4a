package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moyu-x/dupe-finder/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("创建测试数据库失败: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_AppendAndRecent(t *testing.T) {
	store := newTestStore(t)

	report := &internal.DuplicateReport{
		TotalFiles:      42,
		ExactDuplicates: 3,
		FuzzyDuplicates: 5,
		Partial:         true,
	}
	started := time.Now().Add(-time.Minute)
	if err := store.Append(started, 1500*time.Millisecond, "/data/media", report); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Recent() returned %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.ID == "" {
		t.Error("record ID should be assigned")
	}
	if rec.Roots != "/data/media" {
		t.Errorf("Roots = %q, want /data/media", rec.Roots)
	}
	if rec.TotalFiles != 42 || rec.ExactDupes != 3 || rec.FuzzyDupes != 5 {
		t.Errorf("counts not persisted: %+v", rec)
	}
	if !rec.Partial {
		t.Error("Partial flag not persisted")
	}
	if rec.DurationMS != 1500 {
		t.Errorf("DurationMS = %d, want 1500", rec.DurationMS)
	}
}

func TestStore_RecentOrderAndLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		report := &internal.DuplicateReport{TotalFiles: i}
		if err := store.Append(base.Add(time.Duration(i)*time.Minute), time.Second, "/data", report); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	records, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Recent(3) returned %d records", len(records))
	}

	// 开始时间倒序，最新的记录在前
	for i := 0; i < len(records)-1; i++ {
		if records[i].StartedAt.Before(records[i+1].StartedAt) {
			t.Errorf("records not in descending order: %v before %v",
				records[i].StartedAt, records[i+1].StartedAt)
		}
	}
	if records[0].TotalFiles != 4 {
		t.Errorf("newest record TotalFiles = %d, want 4", records[0].TotalFiles)
	}
}

func TestStore_RecentEmpty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("empty store should return no records, got %d", len(records))
	}
}
