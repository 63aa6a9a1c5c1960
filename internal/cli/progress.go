package cli

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/animcp/internal/fetch"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
	ProgressBg lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:     lipgloss.Color("#5FAFD7"), // light blue
	Success:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
	ProgressBg: lipgloss.Color("#3A3A3A"), // dark gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// batchEventMsg carries one batch progress event into the UI.
type batchEventMsg fetch.ProgressEvent

// batchDoneMsg signals that the batch finished, successfully or not.
type batchDoneMsg struct {
	summary *fetch.BatchSummary
	err     error
}

// batchModel is the bubbletea model for batch download progress.
type batchModel struct {
	total    int
	finished []fetch.DownloadRecord
	current  string
	progress progress.Model
	theme    Theme
	cancel   context.CancelFunc
	summary  *fetch.BatchSummary
	err      error
	done     bool
	quitting bool
}

// newBatchModel creates a progress model for a batch of the given size.
func newBatchModel(total int, cancel context.CancelFunc) batchModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return batchModel{
		total:    total,
		progress: prog,
		theme:    defaultTheme,
		cancel:   cancel,
	}
}

// Init returns the initial command.
func (m batchModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Cancel the batch; the done message arrives once the
			// current item unwinds.
			m.quitting = true
			m.cancel()
			return m, nil
		}

	case batchEventMsg:
		if msg.Record == nil {
			m.current = msg.Keyword
			return m, nil
		}
		m.finished = append(m.finished, *msg.Record)
		return m, nil

	case batchDoneMsg:
		m.done = true
		m.summary = msg.summary
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m batchModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m batchModel) renderContent() string {
	var out string
	for _, record := range m.finished {
		out += m.recordLine(record) + "\n"
	}

	if m.done {
		return out
	}

	var pct float64
	if m.total > 0 {
		pct = float64(len(m.finished)) / float64(m.total)
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%d/%d]", len(m.finished), m.total))
	progressBar := m.progress.ViewAs(pct)

	line := fmt.Sprintf("%s %s %s", status, progressBar, m.current)
	if m.quitting {
		line += m.theme.errorStyle().Render("  cancelling...")
	}

	hint := m.theme.hintStyle().Render("Press Ctrl+C to cancel")
	return fmt.Sprintf("%s%s\n%s\n", out, line, hint)
}

// recordLine renders one finished item.
func (m batchModel) recordLine(record fetch.DownloadRecord) string {
	if record.Success {
		check := m.theme.completedStyle().Render("✓")
		return fmt.Sprintf("%s %s → %s", check, record.Keyword, record.FilePath)
	}
	cross := m.theme.errorStyle().Render("✗")
	return fmt.Sprintf("%s %s: %s", cross, record.Keyword, record.Error)
}

// runBatchProgress runs the batch behind an interactive progress UI.
// Ctrl+C cancels the batch; the partial summary is still returned.
func runBatchProgress(ctx context.Context, keywords []string, opts fetch.BatchOptions) (*fetch.BatchSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newBatchModel(len(keywords), cancel)
	p := tea.NewProgram(model)

	go func() {
		opts.Progress = func(ev fetch.ProgressEvent) {
			p.Send(batchEventMsg(ev))
		}
		summary, err := service.FetchBatch(ctx, keywords, opts)
		p.Send(batchDoneMsg{summary: summary, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(batchModel); ok {
		return m.summary, m.err
	}
	return nil, nil
}
