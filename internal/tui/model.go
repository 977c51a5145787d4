// Package tui provides the Bubble Tea dashboard interface.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kamer1337/quantum-storage-system/pkg/health"
	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

const (
	tabStatus = iota
	tabFiles
	tabAnalytics
)

const (
	plotHeight   = 8
	nameColWidth = 28
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea dashboard over a storage System.
type Model struct {
	sys     *storage.System
	monitor *health.Monitor

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	fileTable  table.Model
	fileNames  []string
	fileLayout tableLayout

	width  int
	height int

	formMode   bool
	formInputs []textinput.Model
	formIndex  int
	formError  string

	statusMsg string
	errMsg    string

	multipliers []float64
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
	colCount int
}

// NewModel constructs a dashboard model over a storage system.
func NewModel(sys *storage.System, monitor *health.Monitor) *Model {
	m := &Model{
		sys:     sys,
		monitor: monitor,
		tabs:    []string{"Status", "Files", "Analytics"},
	}
	m.multipliers = []float64{sys.Multiplier()}
	m.initInputs()
	m.initFileTable()
	m.initViewports()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.formMode {
			return m.updateForm(msg)
		}
		if m.activeTab == tabFiles {
			m.fileTable.Focus()
		} else {
			m.fileTable.Blur()
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "n":
			return m.startForm()
		case "a":
			if m.activeTab == tabFiles {
				m.accessSelected()
			}
			return m, nil
		case "x":
			if m.activeTab == tabFiles {
				m.removeSelected()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabFiles {
				m.fileTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabFiles {
				m.fileTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabFiles {
				var cmd tea.Cmd
				m.fileTable, cmd = m.fileTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.formMode {
		return fitLines(m.renderFormModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.formInputs = []textinput.Model{
		newFormInput("Name: "),
		newFormInput("Size (MB): "),
	}
	m.formInputs[0].Placeholder = "dataset_1.txt"
	m.formInputs[1].Placeholder = "800"
}

func (m *Model) initFileTable() {
	m.fileTable = buildFileTable(nil, time.Time{}, 0, 1)
}

func newFormInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.formMode && (m.errMsg != "" || m.statusMsg != "") {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setFileTableSize(m.width, vpHeight)
	for i := range m.formInputs {
		promptWidth := lipgloss.Width(m.formInputs[i].Prompt)
		m.formInputs[i].Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabFiles {
		m.fileTable.Focus()
	} else {
		m.fileTable.Blur()
	}
}

func (m *Model) refresh() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyFileTable(width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabStatus].SetContent(m.renderStatusTab(width))
	m.viewports[tabAnalytics].SetContent(m.renderAnalyticsTab(width))
}

func (m *Model) startForm() (tea.Model, tea.Cmd) {
	m.formMode = true
	m.formError = ""
	m.formInputs[0].SetValue("")
	m.formInputs[1].SetValue("")
	return m, m.setFormIndex(0)
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.formMode = false
		m.formError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyForm(); err != nil {
			m.formError = err.Error()
			return m, nil
		}
		m.formMode = false
		m.formError = ""
		m.refresh()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFormIndex(m.formIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFormIndex(m.formIndex - 1)
	}
	var cmd tea.Cmd
	m.formInputs[m.formIndex], cmd = m.formInputs[m.formIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFormIndex(idx int) tea.Cmd {
	count := len(m.formInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.formIndex = idx
	var cmd tea.Cmd
	for i := range m.formInputs {
		if i == m.formIndex {
			cmd = m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyForm() error {
	name := strings.TrimSpace(m.formInputs[0].Value())
	sizeInput := strings.TrimSpace(m.formInputs[1].Value())
	size, err := strconv.ParseInt(sizeInput, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size (use whole megabytes)")
	}
	f, err := m.sys.Register(name, size)
	if err != nil {
		return err
	}
	m.multipliers = append(m.multipliers, m.sys.Multiplier())
	m.statusMsg = fmt.Sprintf("registered %s (%s in %s)", f.Name, f.VirtualSize.Humanized(), f.PhysicalSize.Humanized())
	m.errMsg = ""
	return nil
}

func (m *Model) selectedFile() (string, bool) {
	idx := m.fileTable.Cursor()
	if idx < 0 || idx >= len(m.fileNames) {
		return "", false
	}
	return m.fileNames[idx], true
}

func (m *Model) accessSelected() {
	name, ok := m.selectedFile()
	if !ok {
		return
	}
	if err := m.sys.RecordAccess(name); err != nil {
		m.errMsg = err.Error()
		return
	}
	f, _ := m.sys.File(name)
	m.statusMsg = fmt.Sprintf("read %s (%d reads)", name, f.AccessCount)
	m.errMsg = ""
	m.refresh()
}

func (m *Model) removeSelected() {
	name, ok := m.selectedFile()
	if !ok {
		return
	}
	if err := m.sys.Remove(name); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.statusMsg = fmt.Sprintf("removed %s", name)
	m.errMsg = ""
	m.refresh()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := padLines(m.renderSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderSummary() string {
	st := m.sys.Status()
	rep := m.monitor.Evaluate(st)
	summary := fmt.Sprintf("Limit: %.2f GB  Files: %d  Multiplier: x%.2f  Health: %s",
		st.PhysicalLimitGB, st.FileCount, st.Multiplier, rep.Overall)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  New file: n  Quit: q"
	if m.activeTab == tabFiles {
		help = "Nav: left/right  Rows: up/down  New file: n  Read: a  Remove: x  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFormHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: register  esc: cancel")
}

func (m *Model) renderFooter() string {
	if m.formMode {
		return m.renderFormHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	if m.statusMsg != "" {
		return m.renderHelp() + "\n" + noticeStyle.Render(m.statusMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabFiles {
		if m.sys.FileCount() == 0 {
			return fitLines("No files tracked. Press n to register one.", m.width, height)
		}
		view := tableMutedStyle.Render(m.fileTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderFormModal() string {
	title := cardValueStyle.Render("Register File")
	body := []string{title}
	for _, input := range m.formInputs {
		body = append(body, input.View())
	}
	body = append(body,
		headerStyle.Render("Size is whole megabytes of virtual space."),
		headerStyle.Render("Enter to register / Esc to cancel"),
	)
	if m.formError != "" {
		body = append(body, errorStyle.Render(m.formError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}
