// Package ui provides the moodline terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never calls the sentiment service itself:
// key presses become controller.Command values that run inside tea.Cmd
// goroutines, and every state change comes back as a state.Snapshot delivered
// through a store subscription. The Model only renders the latest snapshot
// plus purely local concerns (focus, theme, help overlay, feedback line).
//
// # Package Structure
//
//   - app.go: Model, Update loop, layout and the Run entry point
//   - commands.go: tea.Cmd constructors and message types
//   - keys.go: key bindings and the help bar contents
//   - header.go: title bar, connectivity chip and error banner
//   - results.go: analysis result cards shown in the results viewport
//   - help.go: full keyboard shortcut overlay
//   - theme.go: color palettes and lipgloss styles
//   - strings.go: small text helpers built on muesli/reflow
//
// # Focus
//
// Two panes can hold focus: the conversation input (a textarea) and the
// results list (a viewport). Global chords such as ctrl+s work from either
// pane; single-letter shortcuts only apply while the results pane is focused
// so they never steal typed characters.
//
// # Themes
//
// Nightfox, Kanagawa and Slate are available. T in the results pane cycles
// them and the choice is written to the prefs file. ctrl+t is left to the
// textarea, where it transposes characters.
package ui
