package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/scfetch/internal/state"
)

// ErrAborted is returned by Run when the user quits before every transfer ends.
var ErrAborted = errors.New("aborted by user")

const (
	defaultPollTick = 100 * time.Millisecond
	defaultBarWidth = 40
	nameWidth       = 8
)

// Options configures the progress view.
type Options struct {
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	// Cancel is invoked when the user quits early.
	Cancel context.CancelFunc
	// OnThemeChange is invoked with the new theme name after cycling.
	OnThemeChange func(name string)
	// Output defaults to the terminal when nil.
	Output io.Writer
}

// Model is the Bubble Tea model for the download progress view.
type Model struct {
	store    *state.Store
	pollTick time.Duration
	cancel   context.CancelFunc
	onTheme  func(string)

	theme   Theme
	styles  Styles
	width   int
	bar     progress.Model
	spinner spinner.Model

	snapshot state.Snapshot
	quitting bool
	aborted  bool
}

// New creates a progress view model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultPollTick
	}

	theme := GetTheme(opts.ThemeName)
	m := Model{
		store:    opts.Store,
		pollTick: pollTick,
		cancel:   opts.Cancel,
		onTheme:  opts.OnThemeChange,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.applyTheme(theme)
	return m
}

func (m *Model) applyTheme(theme Theme) {
	m.theme = theme
	m.styles = theme.Styles()
	width := defaultBarWidth
	if m.width > 0 {
		width = barWidth(m.width)
	}
	m.bar = progress.New(
		progress.WithGradient(theme.BarStart, theme.BarEnd),
		progress.WithWidth(width),
	)
	m.spinner.Style = m.styles.AccentText
}

func barWidth(termWidth int) int {
	// name column, badge and size take roughly 30 cells
	w := termWidth - 30
	return max(10, min(w, 80))
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = barWidth(msg.Width)
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if m.snapshot.Finished() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		m.aborted = true
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "t":
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		if m.onTheme != nil {
			m.onTheme(m.theme.Name)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := m.snapshot.Title
	if title == "" {
		title = "resolving…"
	}
	b.WriteString(m.styles.Header.Render("scfetch"))
	b.WriteString(" ")
	b.WriteString(m.styles.AccentText.Render(truncate(title, max(20, m.width-12))))
	b.WriteString("\n\n")

	for _, t := range m.snapshot.Transfers {
		b.WriteString(m.renderTransfer(t))
		b.WriteString("\n")
	}

	if m.snapshot.LastError != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(m.snapshot.LastError.Error()))
		b.WriteString("\n")
	}

	if !m.quitting {
		b.WriteString("\n")
		b.WriteString(m.styles.FaintText.Render("q quit  t theme (" + m.theme.Name + ")"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTransfer(t state.Transfer) string {
	name := m.styles.Text.Render(fmt.Sprintf("%-*s", nameWidth, truncate(t.Name, nameWidth)))
	status := transferStatus(t)
	badge := m.styles.StatusStyle(status).Render(status)

	var body string
	switch {
	case status == statusWaiting:
		body = m.spinner.View() + " " + m.styles.MutedText.Render("size unknown")
	case t.Percent >= 0:
		body = m.bar.ViewAs(float64(t.Percent) / 100)
	default:
		body = m.styles.MutedText.Render("no progress reported")
	}

	line := name + " " + body + " " + badge
	switch {
	case t.Err != nil:
		line += " " + m.styles.DangerText.Render(t.Err.Error())
	case t.Done:
		line += " " + m.styles.MutedText.Render(formatBytes(t.Bytes)+" in "+humanizeDuration(t.Updated.Sub(t.Started)))
	}
	return line
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until every transfer in the
// store has ended, the user quits, or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output), tea.WithInput(nil))
	}

	p := tea.NewProgram(New(opts), progOpts...)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run ui: %w", err)
	}
	if m, ok := final.(Model); ok && m.aborted {
		return ErrAborted
	}
	return nil
}
