package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/engine"
	"github.com/moyu-x/dupe-finder/pkg/history"
	"github.com/moyu-x/dupe-finder/pkg/logger"
	"github.com/moyu-x/dupe-finder/pkg/scanner"
)

type ScanOptions struct {
	Roots         []string
	SampleBytes   int
	Workers       int
	IncludeHidden bool
	Include       string
	Exclude       string
	NoHistory     bool
	HistoryPath   string
	Verbose       bool
	LogLevel      string
	LogFile       string
}

// RunScan 执行一次完整扫描：收集文件 -> 引擎检测 -> 写历史回执。
// Ctrl+C 触发协作式取消，引擎返回已完成部分的报告。
func RunScan(opts *ScanOptions) (*internal.DuplicateReport, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, opts.LogFile); err != nil {
		return nil, err
	}

	logger.Get().Info().Msgf("开始扫描，目录数: %d, 采样窗口: %d bytes, 工作协程: %d",
		len(opts.Roots), opts.SampleBytes, opts.Workers)

	fs := afero.NewOsFs()

	sc := scanner.New(fs)
	sc.IncludeHidden = opts.IncludeHidden
	if err := sc.SetInclude(opts.Include); err != nil {
		return nil, err
	}
	if err := sc.SetExclude(opts.Exclude); err != nil {
		return nil, err
	}

	records, err := sc.Collect(opts.Roots)
	if err != nil {
		return nil, fmt.Errorf("收集文件失败: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(engine.Options{
		SampleBytes: opts.SampleBytes,
		Workers:     opts.Workers,
	})

	go logProgress(eng.Progress())

	startedAt := time.Now()
	report := eng.Run(ctx, fs, records)
	duration := time.Since(startedAt)

	logger.Get().Info().Msgf("检测完成，总耗时: %v", duration)
	if report.Partial {
		logger.Get().Warn().Msg("运行被中断，报告只包含已完成的部分")
	}

	if !opts.NoHistory {
		if err := appendHistory(opts, startedAt, duration, report); err != nil {
			// 历史记录失败不影响本次报告
			logger.Get().Warn().Err(err).Msg("写入扫描历史失败")
		}
	}

	return report, nil
}

func appendHistory(opts *ScanOptions, startedAt time.Time, duration time.Duration, report *internal.DuplicateReport) error {
	store, err := history.NewStore(opts.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Append(startedAt, duration, strings.Join(opts.Roots, string(os.PathListSeparator)), report)
}

func logProgress(updates <-chan internal.ProgressUpdate) {
	for u := range updates {
		switch u.Phase {
		case internal.PhaseSampling:
			logger.Get().Debug().Msgf("采样完成: %d/%d 个文件", u.SampledFiles, u.TotalFiles)
		case internal.PhaseScoring:
			if u.CompletedChunks == u.TotalChunks || u.CompletedChunks%16 == 0 {
				logger.Get().Debug().Msgf("评分进度: %d/%d 块", u.CompletedChunks, u.TotalChunks)
			}
		}
	}
}
