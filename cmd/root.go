package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dupe-finder",
	Short: "检测可能重复的文件",
	Long: `Dupe Finder 是一个命令行工具，用于在大量文件中找出可能的重复项。

检测分两路进行:
- 精确重复: 文件大小相同且头/中/尾三个采样窗口内容一致
- 模糊重复: 文件名归一化分词后，按稀有度加权相似度聚类

引擎只做分类，不会修改任何文件。`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
