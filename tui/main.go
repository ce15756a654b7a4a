package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/dupe-finder/pkg/logger"
)

// Config TUI 运行参数，来自 CLI 层
type Config struct {
	SampleBytes int
	Workers     int
}

var cfg *Config

func Run(config *Config) error {
	cfg = config

	logger.Get().Info().Msg("启动 TUI 界面")

	m := initialModel()
	p := tea.NewProgram(&m, tea.WithAltScreen())

	_, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
	} else {
		logger.Get().Info().Msg("TUI 正常退出")
	}

	return err
}
