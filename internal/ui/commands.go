package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/moodline/internal/controller"
	"github.com/five82/moodline/internal/prefs"
	"github.com/five82/moodline/internal/report"
	"github.com/five82/moodline/internal/sentiment"
	"github.com/five82/moodline/internal/state"
)

const feedbackTimeout = 3 * time.Second

// Messages

type snapshotMsg state.Snapshot

type dispatchedMsg struct {
	cmd    controller.Command
	issued bool
}

type feedbackMsg string

type feedbackClearMsg struct {
	id int
}

// Commands

// waitForSnapshot blocks until the store publishes a new snapshot. Update
// re-arms it after every delivery.
func waitForSnapshot(snaps <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-snaps
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// dispatchCmd runs a controller command off the event loop. State changes
// arrive through the subscription; the returned message only reports whether
// a request went out.
func dispatchCmd(ctx context.Context, ctrl *controller.Controller, cmd controller.Command) tea.Cmd {
	return func() tea.Msg {
		return dispatchedMsg{cmd: cmd, issued: ctrl.Dispatch(ctx, cmd)}
	}
}

func copyResultsCmd(results []sentiment.Result) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(report.Plain(results)); err != nil {
			return feedbackMsg(fmt.Sprintf("Copy failed: %v", err))
		}
		return feedbackMsg(fmt.Sprintf("Copied %s", report.EntryCount(len(results))))
	}
}

func saveThemeCmd(path, theme string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return feedbackMsg("Theme: " + theme)
		}
		if err := prefs.Save(path, prefs.Prefs{Theme: theme}); err != nil {
			return feedbackMsg(fmt.Sprintf("Theme: %s (not saved: %v)", theme, err))
		}
		return feedbackMsg("Theme: " + theme)
	}
}

func clearFeedbackCmd(id int) tea.Cmd {
	return tea.Tick(feedbackTimeout, func(time.Time) tea.Msg {
		return feedbackClearMsg{id: id}
	})
}
