package history

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/logger"
)

// ScanRecord 一次扫描的回执，写入本地 SQLite。
// 引擎自身的数据结构每次运行重建，这里只保留汇总数字。
type ScanRecord struct {
	ID         string    `gorm:"primaryKey"`
	StartedAt  time.Time `gorm:"not null;index"`
	DurationMS int64     `gorm:"not null"`
	Roots      string    `gorm:"not null"`
	TotalFiles int       `gorm:"not null"`
	ExactDupes int       `gorm:"not null"`
	FuzzyDupes int       `gorm:"not null"`
	Partial    bool      `gorm:"not null"`
}

func (ScanRecord) TableName() string {
	return "scan_history"
}

type Store struct {
	db *gorm.DB
}

func NewStore(dbPath string) (*Store, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	dsn := expandedPath + "?_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	if err := db.AutoMigrate(&ScanRecord{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("扫描历史数据库就绪: %s", expandedPath)
	return &Store{db: db}, nil
}

// Append 写入一条扫描回执
func (s *Store) Append(startedAt time.Time, duration time.Duration, roots string, report *internal.DuplicateReport) error {
	rec := &ScanRecord{
		ID:         uuid.NewString(),
		StartedAt:  startedAt,
		DurationMS: duration.Milliseconds(),
		Roots:      roots,
		TotalFiles: report.TotalFiles,
		ExactDupes: report.ExactDuplicates,
		FuzzyDupes: report.FuzzyDuplicates,
		Partial:    report.Partial,
	}

	if err := s.db.Create(rec).Error; err != nil {
		logger.Get().Error().Err(err).Msg("写入扫描历史失败")
		return err
	}
	return nil
}

// Recent 返回最近的 n 条扫描记录，按开始时间倒序
func (s *Store) Recent(n int) ([]ScanRecord, error) {
	var records []ScanRecord
	err := s.db.Order("started_at DESC").Limit(n).Find(&records).Error
	return records, err
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
