package tui

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kamer1337/quantum-storage-system/internal/plot"
	"github.com/kamer1337/quantum-storage-system/pkg/health"
	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

func buildFileTable(files []storage.TrackedFile, now time.Time, width, height int) table.Model {
	columns, rows := buildFileTableData(files, now)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(fileTableStyles())
	return t
}

func buildFileTableData(files []storage.TrackedFile, now time.Time) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Name", Width: nameColWidth},
		{Title: "Virtual", Width: 11},
		{Title: "Physical", Width: 11},
		{Title: "Ratio", Width: 6},
		{Title: "Tier", Width: 6},
		{Title: "Reads", Width: 5},
	}
	rows := make([]table.Row, 0, len(files))
	for _, f := range files {
		rows = append(rows, table.Row{
			truncateName(f.Name, nameColWidth),
			f.VirtualSize.Humanized(),
			f.PhysicalSize.Humanized(),
			fmt.Sprintf("%.0f%%", f.CompressionRatio*100),
			string(storage.TierFor(f.LastAccess, now)),
			strconv.Itoa(f.AccessCount),
		})
	}
	return columns, rows
}

func (m *Model) applyFileTable(width, height int) {
	files := m.sys.Files()
	cols, rows := buildFileTableData(files, m.sys.Now())
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	m.fileNames = names
	m.fileTable.SetColumns(cols)
	m.fileTable.SetRows(rows)
	m.fileLayout.rowCount = len(rows)
	m.fileLayout.colCount = len(cols)
	m.setFileTableSize(width, height)
	if m.fileTable.Cursor() >= len(rows) && len(rows) > 0 {
		m.fileTable.SetCursor(len(rows) - 1)
	}
}

func (m *Model) setFileTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.fileLayout.width == width && m.fileLayout.height == viewportHeight {
		return
	}
	m.fileLayout.width = width
	m.fileLayout.height = viewportHeight
	m.fileTable.SetWidth(width)
	m.fileTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustFileTableHeight(height)
	if m.fileLayout.height != viewportHeight {
		m.fileLayout.height = viewportHeight
		m.fileTable.SetHeight(viewportHeight)
	}
}

// adjustFileTableHeight nudges the inner table height until the rendered
// view matches the body height. The bubbles table adds its own chrome, so
// two correction passes are enough.
func (m *Model) adjustFileTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.fileTable.Height()
	viewHeight := lipgloss.Height(m.fileTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.fileTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.fileTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func fileTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderStatusTab(width int) string {
	st := m.sys.Status()
	rep := m.monitor.Evaluate(st)
	sections := []string{
		renderStatusCards(st, width),
		renderHealth(rep),
		renderOscillator(m.sys.State(), width),
		renderOptimizations(m.sys.Optimizations()),
	}
	return strings.TrimRight(strings.Join(sections, "\n\n"), "\n")
}

func renderStatusCards(st storage.Status, width int) string {
	cards := []string{
		metricCard("Multiplier", fmt.Sprintf("x%.2f", st.Multiplier)),
		metricCard("Virtual capacity", fmt.Sprintf("%.2f GB", st.VirtualCapacityGB)),
		metricCard("Virtual used", fmt.Sprintf("%.2f GB", st.UsedVirtualGB)),
		metricCard("Physical used", fmt.Sprintf("%.2f / %.2f GB", st.UsedPhysicalGB, st.PhysicalLimitGB)),
		metricCard("Efficiency", fmt.Sprintf("x%.2f", st.Efficiency)),
		metricCard("Files", fmt.Sprintf("%d", st.FileCount)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderHealth(rep health.Report) string {
	lines := []string{
		cardTitleStyle.Render("Health: ") + gradeStyle(rep.Overall).Render(string(rep.Overall)),
	}
	for _, a := range rep.Alerts {
		label := severityStyle(a.Severity).Render(strings.ToUpper(string(a.Severity)))
		lines = append(lines, fmt.Sprintf("  %s %s", label, a.Message))
	}
	return strings.Join(lines, "\n")
}

func gradeStyle(g health.Grade) lipgloss.Style {
	switch g {
	case health.GradeCritical:
		return errorStyle
	case health.GradeWarning:
		return noticeStyle
	default:
		return cardValueStyle
	}
}

func severityStyle(s health.Severity) lipgloss.Style {
	if s == health.SeverityCritical {
		return errorStyle
	}
	return noticeStyle
}

func renderOscillator(state storage.StateVector, width int) string {
	barWidth := minInt(32, maxInt(10, width/3))
	lines := []string{cardTitleStyle.Render("Oscillator")}
	for i, x := range state {
		fill := int(math.Abs(x)*float64(barWidth) + 0.5)
		if fill > barWidth {
			fill = barWidth
		}
		bar := strings.Repeat("█", fill) + strings.Repeat("░", barWidth-fill)
		lines = append(lines, fmt.Sprintf("  w%d %s %+.3f", i, bar, x))
	}
	return strings.Join(lines, "\n")
}

func renderOptimizations(opts []string) string {
	lines := []string{cardTitleStyle.Render("Active optimizations")}
	for _, opt := range opts {
		lines = append(lines, "  - "+opt)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAnalyticsTab(width int) string {
	a, err := m.sys.Analytics()
	if err != nil {
		return "No files tracked. Press n to register one."
	}
	names := make([]string, 0, len(a.FileCompressionPct))
	for name := range a.FileCompressionPct {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := []string{cardTitleStyle.Render("Compression")}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %-*s %5.1f%%", nameColWidth, truncateName(name, nameColWidth), a.FileCompressionPct[name]))
	}
	lines = append(lines, "",
		fmt.Sprintf("Average compression: %.1f%%", a.AvgCompressionPct),
		fmt.Sprintf("Predicted next multiplier: x%.2f", a.PredictedNextMultiplier),
		fmt.Sprintf("Predicted storage efficiency: %.1f%%", a.PredictedEfficiencyPct),
	)
	out := strings.Join(lines, "\n")
	if curve := renderTrajectory(m.multipliers, width); curve != "" {
		out += "\n\n" + curve
	}
	return strings.TrimRight(out, "\n")
}

func renderTrajectory(multipliers []float64, width int) string {
	if len(multipliers) < 2 {
		return ""
	}
	var buf bytes.Buffer
	if err := plot.Line(&buf, "Multiplier trajectory", multipliers, plot.WidthFor(width), plotHeight); err != nil {
		return fmt.Sprintf("Failed to render trajectory: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func truncateName(name string, width int) string {
	if runewidth.StringWidth(name) <= width {
		return name
	}
	return runewidth.Truncate(name, width, "…")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
