// Package app is the composition root for moodline.
//
// # Overview
//
// New wires configuration, logging, the sentiment HTTP client, the shared
// state.Store and the controller. Run hands that wiring to the Bubble Tea UI;
// the headless check and analyze commands use New directly.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> LoadTranscript()      Optional --file/--last prefill
//	       ├─────> config.Load()         Config file, env, --api-url
//	       ├─────> logger.New()          logrus to the log file
//	       ├─────> sentiment.NewClient() HTTP client
//	       ├─────> controller.New()      State machine over state.Store
//	       └─────> ui.Run()              TUI (blocks)
//
// # Error Handling
//
// Fatal errors are returned from New and Run: an unparseable config, an
// unopenable log file, a malformed base URL or an unreadable transcript.
// Service failures never surface here; the controller folds them into the
// store and the UI renders them.
package app
