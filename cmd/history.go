package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupe-finder/config"
	"github.com/moyu-x/dupe-finder/pkg/history"
	"github.com/moyu-x/dupe-finder/pkg/logger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看最近的扫描记录",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("还没有扫描记录")
		return nil
	}

	for _, rec := range records {
		mark := ""
		if rec.Partial {
			mark = " (部分)"
		}
		fmt.Printf("%s  %s  文件 %d, 精确重复 %d, 模糊重复 %d, 耗时 %v%s\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Roots,
			rec.TotalFiles, rec.ExactDupes, rec.FuzzyDupes,
			time.Duration(rec.DurationMS)*time.Millisecond, mark)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "显示的记录条数")

	rootCmd.AddCommand(historyCmd)
}
