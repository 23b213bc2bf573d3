package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/moodline/internal/controller"
	"github.com/five82/moodline/internal/prefs"
	"github.com/five82/moodline/internal/sentiment"
	"github.com/five82/moodline/internal/sentiment/sentimenttest"
	"github.com/five82/moodline/internal/state"
)

func newTestModel(t *testing.T, opts Options) (Model, *sentimenttest.Server, *state.Store) {
	t.Helper()
	srv := sentimenttest.NewServer()
	t.Cleanup(srv.Close)
	client, err := sentiment.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	store := &state.Store{}
	opts.Controller = controller.New(store, client, nil)
	opts.BaseURL = srv.URL
	m := New(opts)
	t.Cleanup(m.Close)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, srv, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func syncSnapshot(t *testing.T, m Model, store *state.Store) Model {
	t.Helper()
	m, _ = update(t, m, snapshotMsg(store.Snapshot()))
	return m
}

func TestView_BeforeWindowSize(t *testing.T) {
	srv := sentimenttest.NewServer()
	defer srv.Close()
	client, _ := sentiment.NewClient(srv.URL)
	m := New(Options{Controller: controller.New(&state.Store{}, client, nil)})
	defer m.Close()
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestInit_RunsHealthCheck(t *testing.T) {
	m, srv, store := newTestModel(t, Options{})

	msg := m.Init()()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("Init() produced %T, want tea.BatchMsg", msg)
	}
	for _, cmd := range batch {
		if cmd != nil {
			cmd()
		}
	}
	if srv.HealthCalls() != 1 {
		t.Fatalf("HealthCalls = %d, want 1", srv.HealthCalls())
	}
	if got := store.Snapshot().Status; got != state.StatusConnected {
		t.Fatalf("Status = %v, want connected", got)
	}
}

func TestTyping_MirrorsIntoStore(t *testing.T) {
	m, _, store := newTestModel(t, Options{})

	m, _ = update(t, m, keyRunes("hello"))
	if got := store.Snapshot().Input; got != "hello" {
		t.Fatalf("store Input = %q, want hello", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.input.Value() != "" || store.Snapshot().Input != "" {
		t.Fatalf("after clear: textarea=%q store=%q, want both empty", m.input.Value(), store.Snapshot().Input)
	}
}

func TestAnalyzeKey_IgnoredWhileError(t *testing.T) {
	m, srv, store := newTestModel(t, Options{})
	store.SetHealth(false, "Cannot reach sentiment service at "+srv.URL)
	m, _ = update(t, m, keyRunes("I am happy"))

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatalf("ctrl+s returned a command while in error")
	}
	if srv.PredictCalls() != 0 {
		t.Fatalf("PredictCalls = %d, want 0", srv.PredictCalls())
	}
}

func TestAnalyzeKey_IgnoredWhileLoading(t *testing.T) {
	m, srv, store := newTestModel(t, Options{})
	store.SetHealth(true, "")
	m, _ = update(t, m, keyRunes("I am happy"))
	store.BeginAnalysis()

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatalf("ctrl+s returned a command while loading")
	}
	if srv.PredictCalls() != 0 {
		t.Fatalf("PredictCalls = %d, want 0", srv.PredictCalls())
	}
}

func TestAnalyzeKey_DispatchesAndRendersResults(t *testing.T) {
	m, srv, store := newTestModel(t, Options{})
	store.SetHealth(true, "")
	m, _ = update(t, m, keyRunes("I love this"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("ctrl+s returned nil command, want dispatch")
	}
	msg, ok := cmd().(dispatchedMsg)
	if !ok || !msg.issued {
		t.Fatalf("dispatch result = %#v, want issued analyze", msg)
	}
	if srv.PredictCalls() != 1 {
		t.Fatalf("PredictCalls = %d, want 1", srv.PredictCalls())
	}

	m = syncSnapshot(t, m, store)
	view := m.View()
	for _, want := range []string{"Analysis Results", "1 Entry", "POSITIVE", "I love this", "● CONNECTED"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "(stale)") {
		t.Fatalf("View() marks fresh results stale:\n%s", view)
	}
}

func TestView_ErrorBannerAndStaleResults(t *testing.T) {
	m, _, store := newTestModel(t, Options{})
	store.BeginAnalysis()
	store.FinishAnalysis([]sentiment.Result{{Text: "fine", Sentiment: "neutral"}})
	store.SetHealth(false, "Cannot reach sentiment service at http://x")
	m = syncSnapshot(t, m, store)

	view := m.View()
	for _, want := range []string{"● ERROR", "Cannot reach sentiment service at http://x", "ctrl+r to retry", "(stale)", "NEUTRAL"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestView_LoadingButton(t *testing.T) {
	m, _, store := newTestModel(t, Options{})
	store.SetInput("x")
	store.BeginAnalysis()
	m, cmd := update(t, m, snapshotMsg(store.Snapshot()))

	if !m.spinning || cmd == nil {
		t.Fatalf("spinning=%v cmd=%v, want spinner started", m.spinning, cmd)
	}
	if !strings.Contains(m.View(), "◌ Analyzing...") {
		t.Fatalf("View() missing loading label:\n%s", m.View())
	}

	store.FinishAnalysis(nil)
	m = syncSnapshot(t, m, store)
	if m.spinning {
		t.Fatalf("spinning = true after analysis finished")
	}
	if !strings.Contains(m.View(), "→ Analyze Sentiment (ctrl+s)") {
		t.Fatalf("View() missing analyze label:\n%s", m.View())
	}
}

func TestRetryKey_DispatchesHealthCheck(t *testing.T) {
	m, srv, _ := newTestModel(t, Options{})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatalf("ctrl+r returned nil command")
	}
	cmd()
	if srv.HealthCalls() != 1 {
		t.Fatalf("HealthCalls = %d, want 1", srv.HealthCalls())
	}
}

func TestFocus_LetterKeysOnlyInResults(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	m, cmd := update(t, m, keyRunes("q"))
	if m.input.Value() != "q" {
		t.Fatalf("q in input pane: textarea = %q, want q typed", m.input.Value())
	}
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("q quit while typing")
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != paneResults {
		t.Fatalf("focus = %v after tab, want results", m.focus)
	}
	_, cmd = update(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatalf("q in results pane returned nil command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Fatalf("q in results pane did not quit")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != paneInput {
		t.Fatalf("focus = %v after esc, want input", m.focus)
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("f1 did not open help")
	}
	m, _ = update(t, m, keyRunes("x"))
	if m.showHelp {
		t.Fatalf("help still open after key press")
	}
	if m.input.Value() != "" {
		t.Fatalf("key that closed help was typed: %q", m.input.Value())
	}
}

func TestHelpOverlay_ListsKeyMap(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	view := m.View()
	for _, column := range m.keys.FullHelp() {
		for _, binding := range column {
			if !strings.Contains(view, binding.Help().Desc) {
				t.Errorf("help overlay missing %q", binding.Help().Desc)
			}
		}
	}
}

func TestResultsPane_ScrollKeys(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m.results.SetContent(strings.Repeat("line\n", 200))

	m, _ = update(t, m, keyRunes("j"))
	if m.results.YOffset != 1 {
		t.Fatalf("YOffset = %d after j, want 1", m.results.YOffset)
	}
	m, _ = update(t, m, keyRunes("k"))
	if m.results.YOffset != 0 {
		t.Fatalf("YOffset = %d after k, want 0", m.results.YOffset)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.results.YOffset != m.results.Height {
		t.Fatalf("YOffset = %d after pgdown, want %d", m.results.YOffset, m.results.Height)
	}
	m, _ = update(t, m, keyRunes("G"))
	if !m.results.AtBottom() {
		t.Fatalf("G did not reach the bottom")
	}
	m, _ = update(t, m, keyRunes("g"))
	if !m.results.AtTop() {
		t.Fatalf("g did not reach the top")
	}
}

func TestCtrlT_TransposesInInput(t *testing.T) {
	m, _, store := newTestModel(t, Options{})

	m, _ = update(t, m, keyRunes("ab"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if got := m.input.Value(); got != "ba" {
		t.Fatalf("input = %q after ctrl+t, want ba", got)
	}
	if got := store.Snapshot().Input; got != "ba" {
		t.Fatalf("store input = %q, want ba", got)
	}
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q after ctrl+t in input, want Nightfox", m.theme.Name)
	}
}

func TestCycleTheme_SavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m, _, _ := newTestModel(t, Options{PrefsPath: path})
	if m.theme.Name != "Nightfox" {
		t.Fatalf("default theme = %q, want Nightfox", m.theme.Name)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := update(t, m, keyRunes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q after T, want Kanagawa", m.theme.Name)
	}
	if got := cmd(); got != feedbackMsg("Theme: Kanagawa") {
		t.Fatalf("save command returned %#v", got)
	}
	if got := prefs.Load(path, ThemeNames()).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestCopy_NothingToCopy(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := cmd(); got != feedbackMsg("Nothing to copy") {
		t.Fatalf("copy command returned %#v, want Nothing to copy", got)
	}
}

func TestFeedback_ClearsOnlyLatest(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	m, _ = update(t, m, feedbackMsg("first"))
	m, _ = update(t, m, feedbackMsg("second"))
	m, _ = update(t, m, feedbackClearMsg{id: 1})
	if m.feedback != "second" {
		t.Fatalf("feedback = %q, want second kept", m.feedback)
	}
	m, _ = update(t, m, feedbackClearMsg{id: 2})
	if m.feedback != "" {
		t.Fatalf("feedback = %q, want cleared", m.feedback)
	}
}

func TestInitialInputPrefillsStore(t *testing.T) {
	m, _, store := newTestModel(t, Options{InitialInput: "line one\nline two"})
	if got := store.Snapshot().Input; got != "line one\nline two" {
		t.Fatalf("store Input = %q", got)
	}
	if got := m.input.Value(); got != "line one\nline two" {
		t.Fatalf("textarea = %q", got)
	}
}

func TestStatusChipText(t *testing.T) {
	cases := map[state.Status]string{
		state.StatusChecking:  "● CHECKING",
		state.StatusConnected: "● CONNECTED",
		state.StatusError:     "● ERROR",
	}
	for status, want := range cases {
		if got := statusChipText(status); got != want {
			t.Fatalf("statusChipText(%v) = %q, want %q", status, got, want)
		}
	}
}
