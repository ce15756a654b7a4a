package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/dupe-finder/internal"
)

type State int

const (
	StateConfig State = iota
	StateCounting
	StateProcessing
	StateComplete
)

type Focus int

const (
	FocusDirInput Focus = iota
	FocusDirList
)

type model struct {
	state  State
	focus  Focus
	err    error
	cancel context.CancelFunc

	// 扫描状态
	totalFiles      int
	completedChunks int
	totalChunks     int
	report          *internal.DuplicateReport
	reportCh        chan *internal.DuplicateReport
	progressCh      <-chan internal.ProgressUpdate

	dirInput    textinput.Model
	dirList     list.Model
	progressBar progress.Model
	spinner     spinner.Model
}

func initialModel() model {
	dirInput := textinput.New()
	dirInput.Placeholder = "请输入要扫描的目录（按回车添加）"
	dirInput.Prompt = "> "
	dirInput.PromptStyle = focusedPromptStyle
	dirInput.TextStyle = textStyle
	dirInput.Focus()

	dirList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 5)
	dirList.Title = "已添加目录列表"
	dirList.SetShowStatusBar(false)
	dirList.SetFilteringEnabled(false)
	dirList.Styles.Title = titleStyle

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Width(4)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		state:       StateConfig,
		focus:       FocusDirInput,
		dirInput:    dirInput,
		dirList:     dirList,
		progressBar: progressBar,
		spinner:     s,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) scanDirs() []string {
	items := m.dirList.Items()
	dirs := make([]string, 0, len(items))
	for _, item := range items {
		dirs = append(dirs, item.(dirItem).path)
	}
	return dirs
}

type dirItem struct {
	path string
}

func (d dirItem) Title() string       { return d.path }
func (d dirItem) Description() string { return "" }
func (d dirItem) FilterValue() string { return d.path }
