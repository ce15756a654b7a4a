package tui

import (
	"fmt"
	"strings"

	"github.com/moyu-x/dupe-finder/internal"
)

func (m *model) View() string {
	switch m.state {
	case StateConfig:
		return m.configView()
	case StateCounting:
		return m.countingView()
	case StateProcessing:
		return m.processingView()
	case StateComplete:
		return m.completeView()
	default:
		return "未知状态"
	}
}

func (m *model) configView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 重复文件检测工具") + "\n\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n\n")

	b.WriteString(labelStyle.Render("输入要扫描的目录：") + "\n")
	if m.focus == FocusDirInput {
		b.WriteString(focusedStyle.Render(m.dirInput.View()) + "\n\n")
	} else {
		b.WriteString(normalStyle.Render(m.dirInput.View()) + "\n\n")
	}

	b.WriteString(labelStyle.Render("已添加目录列表：") + "\n")
	if m.focus == FocusDirList {
		b.WriteString(focusedStyle.Render(m.dirList.View()) + "\n\n")
	} else {
		b.WriteString(normalStyle.Render(m.dirList.View()) + "\n\n")
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("操作提示：") + "\n")
	b.WriteString("  • Tab 键切换焦点\n")
	b.WriteString("  • Enter 添加目录 / 开始扫描\n")
	b.WriteString("  • Delete 删除已添加的目录\n")
	b.WriteString("  • Ctrl+C 退出程序\n")

	return b.String()
}

func (m *model) countingView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 重复文件检测工具") + "\n\n")
	b.WriteString(fmt.Sprintf("%s 正在扫描目录...\n", m.spinner.View()))

	return b.String()
}

func (m *model) processingView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 重复文件检测工具") + "\n\n")
	b.WriteString(fmt.Sprintf("共 %d 个文件\n\n", m.totalFiles))

	b.WriteString(labelStyle.Render("相似度评分进度：") + "\n")
	b.WriteString(m.progressBar.View() + "\n")
	if m.totalChunks > 0 {
		b.WriteString(fmt.Sprintf("  %d/%d 块\n", m.completedChunks, m.totalChunks))
	}

	b.WriteString("\n" + hintStyle.Render("Ctrl+C 中断（已完成的部分会保留）") + "\n")

	return b.String()
}

func (m *model) completeView() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(titleStyle.Render("❌ 扫描失败") + "\n\n")
		b.WriteString(fmt.Sprintf("%v\n\n", m.err))
		b.WriteString(hintStyle.Render("按 q 退出") + "\n")
		return b.String()
	}

	title := "✅ 扫描完成"
	if m.report.Partial {
		title = "⚠️ 扫描被中断（部分结果）"
	}
	b.WriteString(successTitleStyle.Render(title) + "\n\n")

	var stats strings.Builder
	stats.WriteString(fmt.Sprintf("总文件数:   %d\n", m.report.TotalFiles))
	stats.WriteString(fmt.Sprintf("精确重复:   %d\n", m.report.ExactDuplicates))
	stats.WriteString(fmt.Sprintf("模糊重复:   %d", m.report.FuzzyDuplicates))
	b.WriteString(statsBoxStyle.Render(stats.String()) + "\n\n")

	b.WriteString(m.renderGroups())
	b.WriteString(hintStyle.Render("按 q 退出") + "\n")

	return b.String()
}

// renderGroups 最多展示前几组，完整结果用 scan 命令输出
func (m *model) renderGroups() string {
	const maxGroups = 5

	var b strings.Builder

	if len(m.report.ExactGroups) > 0 {
		b.WriteString(labelStyle.Render("精确重复组：") + "\n")
		b.WriteString(renderGroupPaths(exactPaths(m.report.ExactGroups), maxGroups))
	}

	if len(m.report.FuzzyGroups) > 0 {
		b.WriteString(labelStyle.Render("模糊重复组：") + "\n")
		b.WriteString(renderGroupPaths(fuzzyPaths(m.report.FuzzyGroups), maxGroups))
	}

	return b.String()
}

func exactPaths(groups []internal.ExactGroup) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = g.Paths
	}
	return out
}

func fuzzyPaths(groups []internal.FuzzyGroup) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = g.Paths
	}
	return out
}

func renderGroupPaths(groups [][]string, max int) string {
	var b strings.Builder
	for i, paths := range groups {
		if i >= max {
			b.WriteString(hintStyle.Render(fmt.Sprintf("  ... 还有 %d 组", len(groups)-max)) + "\n")
			break
		}
		for _, p := range paths {
			b.WriteString(groupPathStyle.Render("  "+p) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
