package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/dupe-finder/config"
	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/logger"
	"github.com/moyu-x/dupe-finder/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "交互式扫描界面",
	Long:  `启动交互式 TUI：添加目录、查看评分进度、浏览重复组。`,
	RunE:  runTui,
}

func runTui(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// TUI 占用终端，日志只写文件
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetInt("sample")
	if !cmd.Flags().Changed("sample") {
		sample = cfg.Engine.SampleBytes
	}

	return tui.Run(&tui.Config{
		SampleBytes: sample,
		Workers:     cfg.Engine.Workers,
	})
}

func init() {
	tuiCmd.Flags().IntP("sample", "s", internal.DefaultSampleSize, "采样窗口大小（字节），0 关闭内容采样")

	rootCmd.AddCommand(tuiCmd)
}
