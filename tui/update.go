package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupe-finder/internal"
	"github.com/moyu-x/dupe-finder/pkg/engine"
	"github.com/moyu-x/dupe-finder/pkg/scanner"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// 处理中先取消引擎，引擎会返回部分结果
			if m.state == StateProcessing && m.cancel != nil {
				m.cancel()
				return m, nil
			}
			return m, tea.Quit
		}

		if msg.String() == "q" && m.state == StateComplete {
			return m, tea.Quit
		}

		if m.state == StateConfig {
			return m.updateConfigPhase(msg)
		}

	case tea.WindowSizeMsg:
		m.dirList.SetSize(msg.Width-4, 8)
		m.progressBar.Width = msg.Width - 8

	case countFilesMsg:
		m.totalFiles = len(msg.records)
		m.state = StateProcessing
		return m, tea.Batch(
			m.startEngine(msg.records),
			m.waitProgress(),
			m.waitReport(),
		)

	case progressMsg:
		if msg.Phase == internal.PhaseScoring {
			m.completedChunks = msg.CompletedChunks
			m.totalChunks = msg.TotalChunks
			if m.totalChunks > 0 {
				percent := float64(m.completedChunks) / float64(m.totalChunks)
				cmds = append(cmds, m.progressBar.SetPercent(percent))
			}
		}
		cmds = append(cmds, m.waitProgress())
		return m, tea.Batch(cmds...)

	case progressClosedMsg:
		return m, nil

	case scanCompleteMsg:
		m.state = StateComplete
		m.report = msg.report
		return m, nil

	case errMsg:
		m.err = msg
		m.state = StateComplete
		return m, nil

	case spinner.TickMsg:
		if m.state == StateCounting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == StateConfig {
		var cmd tea.Cmd
		m.dirInput, cmd = m.dirInput.Update(msg)
		cmds = append(cmds, cmd)

		m.dirList, cmd = m.dirList.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.state == StateProcessing {
		model, cmd := m.progressBar.Update(msg)
		m.progressBar = model.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) updateConfigPhase(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focus == FocusDirInput {
			m.focus = FocusDirList
			m.dirInput.Blur()
		} else {
			m.focus = FocusDirInput
			m.dirInput.Focus()
		}
		return m, nil

	case "enter":
		if m.focus == FocusDirInput && m.dirInput.Value() != "" {
			path := m.dirInput.Value()
			m.dirInput.SetValue("")
			m.dirList.InsertItem(len(m.dirList.Items()), dirItem{path: path})
			return m, nil
		}
		if len(m.dirList.Items()) > 0 {
			m.state = StateCounting
			return m, tea.Batch(m.startCounting(), m.spinner.Tick)
		}
		return m, nil

	case "delete", "backspace":
		if m.focus == FocusDirList && m.dirList.Index() >= 0 {
			m.dirList.RemoveItem(m.dirList.Index())
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == FocusDirInput {
		m.dirInput, cmd = m.dirInput.Update(msg)
	} else {
		m.dirList, cmd = m.dirList.Update(msg)
	}
	return m, cmd
}

// startCounting 收集文件记录
func (m *model) startCounting() tea.Cmd {
	dirs := m.scanDirs()
	return func() tea.Msg {
		sc := scanner.New(afero.NewOsFs())
		records, err := sc.Collect(dirs)
		if err != nil {
			return errMsg(err)
		}
		return countFilesMsg{records: records}
	}
}

// startEngine 后台运行引擎，进度和报告走各自的通道
func (m *model) startEngine(records []internal.FileRecord) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	eng := engine.New(engine.Options{
		SampleBytes: cfg.SampleBytes,
		Workers:     cfg.Workers,
	})
	m.progressCh = eng.Progress()
	m.reportCh = make(chan *internal.DuplicateReport, 1)

	go func() {
		m.reportCh <- eng.Run(ctx, afero.NewOsFs(), records)
	}()

	return nil
}

func (m *model) waitProgress() tea.Cmd {
	ch := m.progressCh
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(update)
	}
}

func (m *model) waitReport() tea.Cmd {
	ch := m.reportCh
	return func() tea.Msg {
		return scanCompleteMsg{report: <-ch}
	}
}
