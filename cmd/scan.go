package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupe-finder/app"
	"github.com/moyu-x/dupe-finder/config"
	"github.com/moyu-x/dupe-finder/internal"
)

var scanCmd = &cobra.Command{
	Use:   "scan <directories...>",
	Short: "扫描目录并报告可能重复的文件",
	Long: `递归扫描指定目录，报告精确重复组和文件名相似的模糊重复组。
采样窗口大小可调（--sample 0 关闭内容采样，退化为只按大小比较）。
扫描结果汇总会写入本地历史数据库（--no-history 关闭）。`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetInt("sample")
	if !cmd.Flags().Changed("sample") {
		sample = cfg.Engine.SampleBytes
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if !cmd.Flags().Changed("workers") {
		workers = cfg.Engine.Workers
	}
	hidden, _ := cmd.Flags().GetBool("hidden")
	include, _ := cmd.Flags().GetString("include")
	exclude, _ := cmd.Flags().GetString("exclude")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := &app.ScanOptions{
		Roots:         args,
		SampleBytes:   sample,
		Workers:       workers,
		IncludeHidden: hidden,
		Include:       include,
		Exclude:       exclude,
		NoHistory:     noHistory || cfg.History.Disabled,
		HistoryPath:   cfg.History.Path,
		Verbose:       verbose,
		LogLevel:      cfg.Logging.Level,
		LogFile:       cfg.Logging.File,
	}

	report, err := app.RunScan(opts)
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func printReport(report *internal.DuplicateReport) {
	fmt.Println("-- 精确重复")
	for _, g := range report.ExactGroups {
		fmt.Printf("\n%s x%d\n", formatBytes(g.Size), len(g.Paths))
		for _, p := range g.Paths {
			fmt.Printf("  %s\n", p)
		}
	}

	fmt.Println("\n-- 模糊重复")
	for _, g := range report.FuzzyGroups {
		fmt.Printf("\n相似度 %.0f%% x%d\n", g.Similarity*100, len(g.Paths))
		for _, p := range g.Paths {
			fmt.Printf("  %s\n", p)
		}
	}

	if len(report.SampleErrors) > 0 {
		fmt.Printf("\n采样失败 %d 个文件:\n", len(report.SampleErrors))
		for _, e := range report.SampleErrors {
			fmt.Printf("  %s: %v\n", e.Path, e.Err)
		}
	}

	fmt.Printf("\n总文件数: %d%s\n", report.TotalFiles, partialMark(report))
	fmt.Printf("  精确重复: %d\n", report.ExactDuplicates)
	fmt.Printf("  模糊重复: %d\n", report.FuzzyDuplicates)
}

func partialMark(report *internal.DuplicateReport) string {
	if report.Partial {
		return " (部分结果，运行被中断)"
	}
	return ""
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func init() {
	scanCmd.Flags().IntP("sample", "s", internal.DefaultSampleSize, "采样窗口大小（字节），0 关闭内容采样")
	scanCmd.Flags().IntP("workers", "w", internal.DefaultWorkers, "相似度评分的工作协程数")
	scanCmd.Flags().Bool("hidden", false, "包含隐藏文件和隐藏目录")
	scanCmd.Flags().String("include", "", "只收集路径匹配该正则的文件")
	scanCmd.Flags().String("exclude", "", "排除路径匹配该正则的文件")
	scanCmd.Flags().Bool("no-history", false, "不写扫描历史")
	scanCmd.Flags().Bool("verbose", false, "显示详细日志")

	rootCmd.AddCommand(scanCmd)
}
