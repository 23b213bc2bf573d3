package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/moodline/internal/controller"
	"github.com/five82/moodline/internal/logger"
	"github.com/five82/moodline/internal/state"
)

const (
	inputPlaceholder = "Enter conversation text... (one sentence per line)"
	inputHeight      = 6
	minResultsHeight = 3
)

// pane identifies which component receives unbound keys.
type pane int

const (
	paneInput pane = iota
	paneResults
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Controller   *controller.Controller
	BaseURL      string
	ThemeName    string
	PrefsPath    string
	InitialInput string
	Logger       logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *controller.Controller
	store     *state.Store
	baseURL   string
	prefsPath string
	log       logrus.FieldLogger

	// Store subscription
	snapshots   <-chan state.Snapshot
	unsubscribe func()
	snapshot    state.Snapshot

	// Components
	input   textarea.Model
	results viewport.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// UI state
	theme      Theme
	focus      pane
	width      int
	height     int
	ready      bool
	spinning   bool
	showHelp   bool
	feedback   string
	feedbackID int
}

// New creates a Model subscribed to the controller's store. Call Close when
// the model is no longer used.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	store := opts.Controller.Store()
	if opts.InitialInput != "" {
		store.SetInput(opts.InitialInput)
	}
	snaps, unsubscribe := store.Subscribe()

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(inputHeight)
	ta.SetValue(opts.InitialInput)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		ctrl:        opts.Controller,
		store:       store,
		baseURL:     opts.BaseURL,
		prefsPath:   opts.PrefsPath,
		log:         log,
		snapshots:   snaps,
		unsubscribe: unsubscribe,
		snapshot:    store.Snapshot(),
		input:       ta,
		results:     viewport.New(80, minResultsHeight),
		spinner:     sp,
		help:        help.New(),
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		focus:       paneInput,
	}
	m.applyTheme()
	return m
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model. It starts listening for snapshots and runs the
// startup health check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		waitForSnapshot(m.snapshots),
		dispatchCmd(m.ctx, m.ctrl, controller.CheckHealthCommand{}),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))

	case dispatchedMsg:
		if !msg.issued {
			m.log.WithField("command", commandName(msg.cmd)).Debug("command did not issue a request")
		}
		return m, nil

	case feedbackMsg:
		m.feedbackID++
		m.feedback = string(msg)
		return m, clearFeedbackCmd(m.feedbackID)

	case feedbackClearMsg:
		if msg.id == m.feedbackID {
			m.feedback = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	prev := m.snapshot
	m.snapshot = snap
	m.layout()

	cmds := []tea.Cmd{waitForSnapshot(m.snapshots)}
	if snap.Loading && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if !snap.Loading {
		m.spinning = false
	}
	if prev.Loading && !snap.Loading {
		m.results.GotoTop()
	}
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Analyze):
		return m.analyze()
	case key.Matches(msg, m.keys.Retry):
		return m, dispatchCmd(m.ctx, m.ctrl, controller.CheckHealthCommand{})
	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.store.SetInput("")
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyResults()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.focus == paneResults {
			m.toggleFocus()
		}
		return m, nil
	}

	if m.focus == paneResults {
		return m.handleResultsKey(msg)
	}
	return m.handleInputKey(msg)
}

// handleResultsKey processes keys while the results pane has focus.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.QuitResults):
		return m, tea.Quit
	case key.Matches(msg, m.keys.HelpResults):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CopyResults):
		return m.copyResults()
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	case key.Matches(msg, m.keys.Up):
		m.results.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.results.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.results.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.results.PageDown()
	case key.Matches(msg, m.keys.Top):
		m.results.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.results.GotoBottom()
	}
	return m, nil
}

// handleInputKey forwards typing to the textarea and mirrors edits into the
// store.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.store.SetInput(after)
	}
	return m, cmd
}

func (m Model) analyze() (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	if !snap.CanSubmit() {
		return m, nil
	}
	return m, dispatchCmd(m.ctx, m.ctrl, controller.AnalyzeCommand{Text: snap.Input})
}

func (m Model) copyResults() (tea.Model, tea.Cmd) {
	if len(m.snapshot.Results) == 0 {
		return m, func() tea.Msg { return feedbackMsg("Nothing to copy") }
	}
	return m, copyResultsCmd(m.snapshot.Results)
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyTheme()
	m.layout()
	return m, saveThemeCmd(m.prefsPath, m.theme.Name)
}

func (m *Model) toggleFocus() {
	if m.focus == paneInput {
		m.focus = paneResults
		m.input.Blur()
		return
	}
	m.focus = paneInput
	m.input.Focus()
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	placeholder := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))

	m.input.FocusedStyle.Base = text
	m.input.FocusedStyle.Text = text
	m.input.FocusedStyle.CursorLine = text
	m.input.FocusedStyle.Placeholder = placeholder
	m.input.BlurredStyle = m.input.FocusedStyle
	m.input.BlurredStyle.Text = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))

	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))

	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
}

// layout sizes the components for the current window and banner.
func (m *Model) layout() {
	inner := maxInt(m.width-4, 10)
	m.input.SetWidth(inner)
	m.help.Width = m.width

	const (
		headerLines = 1
		inputLines  = inputHeight + 2
		buttonLines = 1
		titleLines  = 1
		borderLines = 2
		footerLines = 1
	)
	bannerLines := 0
	if banner := m.renderBanner(); banner != "" {
		bannerLines = lipgloss.Height(banner)
	}
	vpHeight := m.height - headerLines - bannerLines - inputLines - buttonLines - titleLines - borderLines - footerLines
	m.results.Width = inner
	m.results.Height = maxInt(vpHeight, minResultsHeight)
	m.refreshResults()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	styles := m.theme.Styles()
	paneWidth := maxInt(m.width-2, 12)

	inputPane := styles.Pane
	resultsPane := styles.Pane
	if m.focus == paneInput {
		inputPane = styles.PaneFocused
	} else {
		resultsPane = styles.PaneFocused
	}

	parts := []string{m.renderHeader()}
	if banner := m.renderBanner(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts,
		inputPane.Width(paneWidth).Render(m.input.View()),
		m.renderAnalyzeButton(),
		m.renderResultsTitle(),
		resultsPane.Width(paneWidth).Render(m.results.View()),
		m.renderFooter(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderAnalyzeButton renders the analyze control in its current state.
func (m Model) renderAnalyzeButton() string {
	styles := m.theme.Styles()
	if m.snapshot.Loading {
		return styles.ButtonDisabled.Render("◌ Analyzing...") + " " + m.spinner.View()
	}
	label := "→ Analyze Sentiment (ctrl+s)"
	if m.snapshot.CanSubmit() {
		return styles.Button.Render(label)
	}
	return styles.ButtonDisabled.Render(label)
}

func (m Model) renderFooter() string {
	if m.feedback != "" {
		return m.theme.Styles().AccentText.Render(truncateText(m.feedback, m.width))
	}
	return m.help.View(m.keys)
}

func commandName(cmd controller.Command) string {
	switch cmd.(type) {
	case controller.CheckHealthCommand:
		return "check_health"
	case controller.AnalyzeCommand:
		return "analyze"
	default:
		return "unknown"
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
