package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenelaunch/pkg/args"
	"github.com/matzehuels/scenelaunch/pkg/errors"
	"github.com/matzehuels/scenelaunch/pkg/pipeline"
	"github.com/matzehuels/scenelaunch/pkg/relay"
	"github.com/matzehuels/scenelaunch/pkg/settings"
)

// Form styles
var (
	formSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	formChosenStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	formOutputStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

const (
	// maxOutputLines is how many renderer lines the form keeps.
	maxOutputLines = 200

	defaultOutputHeight = 8
)

// =============================================================================
// Messages
// =============================================================================

// rendererLineMsg carries one renderer output line onto the UI loop.
type rendererLineMsg struct {
	line string
}

// rendererExitMsg reports that a renderer exited.
type rendererExitMsg struct {
	exit pipeline.Exit
}

// terminatedMsg reports the outcome of a terminate request.
type terminatedMsg struct {
	err error
}

// =============================================================================
// Sender
// =============================================================================

// sender forwards messages from pipeline goroutines to the running program.
// Once the form starts quitting it switches to fallback so late output is
// not lost.
type sender struct {
	mu       sync.Mutex
	send     func(tea.Msg)
	fallback func(tea.Msg)
}

func (s *sender) Send(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (s *sender) set(fn func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = fn
}

// detach routes all further messages to the fallback.
func (s *sender) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = s.fallback
}

// =============================================================================
// Form rows
// =============================================================================

// formRow is one setting in the form: a label, its choices and the setter
// that applies a choice to the model.
type formRow struct {
	label   string
	options []string
	apply   func(m *settings.Model, option string) error
	initial int
}

func newFormRows(presets []string) []formRow {
	qualities := make([]string, 0, 4)
	for _, q := range settings.Qualities() {
		qualities = append(qualities, string(q))
	}

	presets = slices.Clone(presets)
	if !slices.Contains(presets, settings.DefaultLighting) {
		presets = append([]string{settings.DefaultLighting}, presets...)
	}

	rows := []formRow{
		{
			label:   "Anti-aliasing",
			options: antiAliasingLabels,
			apply:   (*settings.Model).SetAntiAliasingLabel,
		},
		{
			label:   "Shadow quality",
			options: qualities,
			apply: func(m *settings.Model, o string) error {
				return m.SetShadowQuality(settings.Quality(o))
			},
		},
		{
			label:   "Shadow distance",
			options: qualities,
			apply: func(m *settings.Model, o string) error {
				return m.SetShadowDistance(settings.Quality(o))
			},
		},
		{
			label:   "Ambient occlusion",
			options: []string{"Off", "SSAO"},
			apply: func(m *settings.Model, o string) error {
				m.SetAmbientOcclusionLabel(o)
				return nil
			},
		},
		{
			label:   "Lighting",
			options: presets,
			apply: func(m *settings.Model, o string) error {
				m.SetLighting(o)
				return nil
			},
			initial: slices.Index(presets, settings.DefaultLighting),
		},
	}

	for _, a := range settings.Assets() {
		rows = append(rows, formRow{
			label:   strings.ToUpper(a.String()[:1]) + a.String()[1:] + " models",
			options: []string{"Off", "On"},
			apply: func(m *settings.Model, o string) error {
				return m.SetAsset(a, o == "On")
			},
		})
	}
	return rows
}

// =============================================================================
// SettingsForm - interactive settings and launch
// =============================================================================

// SettingsForm is the bubbletea model for choosing settings and launching
// the renderer. It is the only writer of its settings model.
type SettingsForm struct {
	rows   []formRow
	choice []int
	cursor int

	// Free-form lighting label entry.
	editing     bool
	input       textinput.Model
	lightingRow int

	model  *settings.Model
	runner *pipeline.Runner
	opts   pipeline.Options
	ctx    context.Context
	sender *sender

	run          *pipeline.Run
	running      int
	output       []string
	status       string
	statusStyle  lipgloss.Style
	outputHeight int
}

// NewSettingsForm creates a form with default settings.
func NewSettingsForm(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, presets []string) SettingsForm {
	f := SettingsForm{
		rows:         newFormRows(presets),
		model:        settings.New(),
		runner:       runner,
		opts:         opts,
		ctx:          ctx,
		sender:       &sender{},
		statusStyle:  formDimStyle,
		outputHeight: defaultOutputHeight,
	}
	f.choice = f.initialChoices()
	f.status = "Ready"

	for i, r := range f.rows {
		if r.label == "Lighting" {
			f.lightingRow = i
		}
	}
	ti := textinput.New()
	ti.Prompt = "Lighting: "
	ti.CharLimit = 64
	ti.ShowSuggestions = true
	ti.SetSuggestions(f.rows[f.lightingRow].options)
	f.input = ti

	return f
}

func (m SettingsForm) initialChoices() []int {
	out := make([]int, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.initial
	}
	return out
}

// Settings returns the current settings snapshot.
func (m SettingsForm) Settings() settings.RenderSettings {
	return m.model.Snapshot()
}

func (m SettingsForm) Init() tea.Cmd {
	return nil
}

func (m SettingsForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)

	case rendererLineMsg:
		m.output = append(m.output, msg.line)
		if len(m.output) > maxOutputLines {
			m.output = m.output[len(m.output)-maxOutputLines:]
		}

	case rendererExitMsg:
		m.running--
		if msg.exit.ExitCode == 0 {
			m.setStatus(StyleSuccess, "Renderer exited (%d lines)", msg.exit.Lines)
		} else {
			m.setStatus(StyleWarning, "Renderer exited with code %d", msg.exit.ExitCode)
		}
		if msg.exit.ReadErr != nil {
			m.output = append(m.output, StyleWarning.Render(errors.UserMessage(msg.exit.ReadErr)))
		}

	case terminatedMsg:
		if msg.err != nil {
			m.setStatus(StyleError, "Terminate failed: %s", msg.err)
		}

	case tea.WindowSizeMsg:
		m.outputHeight = msg.Height - len(m.rows) - 12
		if m.outputHeight < 3 {
			m.outputHeight = 3
		}
	}
	return m, nil
}

func (m SettingsForm) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "right", "l", " ":
		m.choose(m.choice[m.cursor] + 1)
	case "left", "h":
		m.choose(m.choice[m.cursor] - 1)
	case "r":
		m.model.Reset()
		m.choice = m.initialChoices()
		m.setStatus(formDimStyle, "Settings reset")
	case "e":
		if m.cursor != m.lightingRow {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.model.Snapshot().Lighting)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "enter":
		m.launch()
	case "t":
		if m.run == nil || m.running == 0 {
			m.setStatus(formDimStyle, "No renderer running")
			return m, nil
		}
		run, grace := m.run, m.opts.GracePeriod
		m.setStatus(StyleWarning, "Stopping renderer...")
		return m, func() tea.Msg {
			return terminatedMsg{err: terminate(run, grace)}
		}
	}
	return m, nil
}

// quit stops the program. Renderer output from here on bypasses the form.
func (m SettingsForm) quit() (tea.Model, tea.Cmd) {
	m.sender.detach()
	return m, tea.Quit
}

// updateInput handles keys while a custom lighting label is being typed.
// Enter applies the label, Esc abandons it.
func (m SettingsForm) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		label := m.input.Value()
		if err := errors.ValidateLightingLabel(label); err != nil {
			m.setStatus(StyleError, "%s", errors.UserMessage(err))
			return m, nil
		}
		m.editing = false
		m.input.Blur()

		row := &m.rows[m.lightingRow]
		i := slices.Index(row.options, label)
		if i < 0 {
			row.options = append(row.options, label)
			i = len(row.options) - 1
		}
		m.model.SetLighting(label)
		m.choice[m.lightingRow] = i
		m.setStatus(formDimStyle, "Lighting set to %q", label)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// choose selects option i of the current row, wrapping around, and applies it.
func (m *SettingsForm) choose(i int) {
	row := m.rows[m.cursor]
	n := len(row.options)
	i = ((i % n) + n) % n

	if err := row.apply(m.model, row.options[i]); err != nil {
		m.setStatus(StyleError, "%s", errors.UserMessage(err))
		return
	}
	m.choice[m.cursor] = i
}

// launch starts the renderer with the current snapshot. Output and exit
// events come back through the sender as messages.
func (m *SettingsForm) launch() {
	send := m.sender.Send
	ev := pipeline.Events{
		Sink: relay.SinkFunc(func(line string) {
			send(rendererLineMsg{line: line})
		}),
		OnExit: func(e pipeline.Exit) {
			send(rendererExitMsg{exit: e})
		},
	}

	run, err := m.runner.Launch(m.ctx, m.model.Snapshot(), m.opts, ev)
	if err != nil {
		m.setStatus(StyleError, "Launch failed: %s", errors.UserMessage(err))
		return
	}
	m.run = run
	m.running++
	m.output = nil
	m.setStatus(StyleSuccess, "Renderer started (pid %d)", run.Pid())
}

func (m *SettingsForm) setStatus(style lipgloss.Style, format string, a ...any) {
	m.status = fmt.Sprintf(format, a...)
	m.statusStyle = style
}

func (m SettingsForm) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Renderer Settings"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("↑/↓ field  ←/→ change  e edit lighting  ⏎ launch  t stop  r reset  q quit"))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		cursor := "  "
		labelStyle := formNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			labelStyle = formSelectedStyle
		}
		b.WriteString(cursor)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", row.label)))
		for j, opt := range row.options {
			b.WriteString(" ")
			if j == m.choice[i] {
				b.WriteString(formChosenStyle.Render("[" + opt + "]"))
			} else {
				b.WriteString(formDimStyle.Render(" " + opt + " "))
			}
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString("\n  ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formDimStyle.Render(iconArrow+" "+m.opts.Renderer+" ") + styleCommand.Render(args.String(m.model.Snapshot())))
	b.WriteString("\n")
	b.WriteString(m.statusStyle.Render(m.status))
	b.WriteString("\n")

	if len(m.output) > 0 {
		start := len(m.output) - m.outputHeight
		if start < 0 {
			start = 0
		}
		b.WriteString(formOutputStyle.Render(strings.Join(m.output[start:], "\n")))
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// tui command
// =============================================================================

// tuiCommand creates the interactive settings form.
func (c *CLI) tuiCommand() *cobra.Command {
	var renderer, dir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Choose settings interactively and launch the renderer",
		Long: `Open an interactive settings form. Each change is applied immediately;
Enter launches the renderer with the current settings and its output is shown
below the form. Quitting while the renderer is running waits for it to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd, renderer, dir)
		},
	}

	cmd.Flags().StringVar(&renderer, "renderer", "", "renderer executable (overrides config)")
	cmd.Flags().StringVar(&dir, "dir", "", "renderer working directory (overrides config)")
	return cmd
}

func (c *CLI) runTUI(cmd *cobra.Command, renderer, dir string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	po := launchOptions(cfg, renderer, dir)

	// The TUI owns the terminal; keep log lines out of the form.
	level := logger.GetLevel()
	logger.SetLevel(log.ErrorLevel)
	defer logger.SetLevel(level)

	form := NewSettingsForm(ctx, c.newRunner(), po, cfg.LightingPresets())
	p := tea.NewProgram(form, tea.WithContext(ctx), tea.WithOutput(cmd.ErrOrStderr()))

	// Once the form quits, output from a renderer still running goes
	// straight to stdout.
	out := relay.NewWriterSink(cmd.OutOrStdout())
	form.sender.fallback = stdoutFallback(out)
	form.sender.set(p.Send)

	final, err := p.Run()
	form.sender.detach()
	if err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	f, ok := final.(SettingsForm)
	if !ok || f.run == nil || f.running <= 0 {
		return nil
	}
	logger.SetLevel(level)

	printInfo("Renderer still running (pid %d); Ctrl-C to stop it", f.run.Pid())
	select {
	case <-f.run.Done():
	case <-ctx.Done():
		if err := terminate(f.run, po.GracePeriod); err != nil {
			logger.Warn("terminate renderer", "err", err)
		}
		<-f.run.Done()
	}
	exit := f.run.Wait()
	printSuccess("Renderer exited with code %d", exit.ExitCode)
	return nil
}

// stdoutFallback prints renderer lines to out and ignores other messages.
func stdoutFallback(out relay.Sink) func(tea.Msg) {
	return func(msg tea.Msg) {
		if line, ok := msg.(rendererLineMsg); ok {
			out.Line(line.line)
		}
	}
}
