package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/filetasks/internal/io"
	"github.com/dustin/go-humanize"
)

const (
	pollInterval = 100 * time.Millisecond
	maxLogLines  = 100
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// errorStyle defines the style for a failed transfer's text.
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// TransferProgressMsg is a [tea.Msg] containing [io.Progress] information.
type TransferProgressMsg struct {
	t    time.Time
	data io.Progress
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler

	contentWidth int

	transferData     io.Progress
	transferProgress progress.Model
	logsViewport     viewport.Model
	logs             []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		uiHandler: uiHandler,
		transferProgress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(80),
		),
		logsViewport: viewport.New(80, 20),
		logs:         make([]string, 0, maxLogLines),
		cancel:       cancel,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	m.uiHandler.Initialized.Store(true)

	return tea.Batch(
		tea.EnterAltScreen,
		pollTransfer(m.uiHandler.transfer),
	)
}

// pollTransfer produces a [tea.Cmd] that returns a [TransferProgressMsg]
// with a current snapshot of the transfer after the poll interval.
func pollTransfer(transfer progressProvider) tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return TransferProgressMsg{
			t:    t,
			data: transfer.Snapshot(),
		}
	})
}

// Update is the principal message handling method of the model.
// It sets the internal state of the model, for later rendering.
//
//nolint:mnd,ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.contentWidth = m.width - 2

		m.transferProgress.Width = m.contentWidth

		// Borders, title and the help line.
		m.logsViewport.Width = m.contentWidth
		m.logsViewport.Height = max(m.height-transferPanelHeight-4, 1)
		m.refreshLogs()

		m.ready = true

	case TransferProgressMsg:
		m.transferData = msg.data

		cmds = append(cmds, m.transferProgress.SetPercent(m.transferData.Percentage/100))

		if !m.transferData.Finished && m.transferData.Err == nil {
			cmds = append(cmds, pollTransfer(m.uiHandler.transfer))
		}

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, string(msg))
		m.refreshLogs()

	case progress.FrameMsg:
		updated, cmd := m.transferProgress.Update(msg)
		if progressModel, ok := updated.(progress.Model); ok {
			m.transferProgress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *TeaModel) refreshLogs() {
	if len(m.logs) == 0 {
		return
	}

	logs := lipgloss.NewStyle().
		Width(m.logsViewport.Width).
		Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

	m.logsViewport.SetContent(logs)
	m.logsViewport.GotoBottom()
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	transferSection := borderStyle.
		Width(m.contentWidth).
		Render(m.formatTransferView())

	logsSection := borderStyle.
		Width(m.contentWidth).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.contentWidth).Render("Process Information"),
				lipgloss.NewStyle().Width(m.contentWidth).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.contentWidth).
		Render("q: quit gui • ctrl+c: cancel copy")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		transferSection,
		logsSection,
		helpSection,
	)
}

// transferPanelHeight is the amount of lines of the transfer panel,
// including its borders.
const transferPanelHeight = 10

// formatTransferView renders the content of the transfer panel.
func (m TeaModel) formatTransferView() string {
	p := m.transferData

	var details string
	switch {
	case p.Err != nil:
		details = errorStyle.Width(m.contentWidth).Render(fmt.Sprintf(
			"Failed: %v\nCopied: %s of %s\n",
			p.Err,
			humanize.IBytes(p.BytesTransferred),
			humanize.IBytes(p.BytesTotal),
		))
	case p.Finished:
		details = infoStyle.Width(m.contentWidth).Render(fmt.Sprintf(
			"Progress: %.2f%% (%s/%s)\n"+
				"Time: Started=%v, Finished=%v (%v)\n"+
				"Speed: %s/s\n",
			p.Percentage,
			humanize.IBytes(p.BytesTransferred),
			humanize.IBytes(p.BytesTotal),
			p.StartTime.Format("15:04:05"),
			p.EndTime.Format("15:04:05"),
			p.Elapsed.Round(time.Millisecond),
			humanize.IBytes(uint64(p.Rate)),
		))
	case p.Started:
		details = infoStyle.Width(m.contentWidth).Render(fmt.Sprintf(
			"Progress: %.2f%% (%s/%s)\n"+
				"Time: Started=%v, Remaining=%v\n"+
				"Speed: %s/s\n",
			p.Percentage,
			humanize.IBytes(p.BytesTransferred),
			humanize.IBytes(p.BytesTotal),
			p.StartTime.Format("15:04:05"),
			p.TimeRemaining.Round(time.Second),
			humanize.IBytes(uint64(p.Rate)),
		))
	default:
		details = infoStyle.Width(m.contentWidth).Render("Waiting for the transfer to start...\n")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.contentWidth).Render(m.uiHandler.title),
		"",
		m.transferProgress.View(),
		"",
		details,
	)
}
