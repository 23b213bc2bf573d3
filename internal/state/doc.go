// Package state holds the client state shared by the controller and the UI.
//
// # Overview
//
// A single Store owns the four pieces of client state:
//
//   - Input: the conversation text as currently typed
//   - Results: per-sentence labels from the last successful analysis
//   - Loading: whether an analysis request is in flight
//   - Status / ErrorMessage: the client's belief about service connectivity
//
// The controller mutates the store; the UI reads immutable Snapshots.
//
// # Connectivity State Machine
//
//	          health ok / analysis ok
//	checking ─────────────────────────> connected
//	    │                                  │  ▲
//	    │ health fail / analysis fail      │  │ retry ok
//	    ▼                                  ▼  │
//	  error <──────────────────────────────┘  │
//	    │ ▲       analysis fail               │
//	    └─┘ retry fails (message updated)     │
//	    └─────────────────────────────────────┘
//
// Status starts at StatusChecking, which is also the zero value, so a zero
// Store is ready to use.
//
// # Submission Guard
//
// BeginAnalysis checks and flips Loading under the write lock. A submission is
// refused while another is in flight or while Status is StatusError, which is
// how the "at most one request" rule is enforced without a queue.
//
// # Subscriptions
//
// Subscribe returns a channel that receives a Snapshot after every mutation.
// Each channel buffers a single value; a newer snapshot replaces an unread one,
// so slow readers always see the latest state and never block writers.
//
//	snaps, cancel := store.Subscribe()
//	defer cancel()
//	for snap := range snaps {
//		render(snap)
//	}
//
// # Copies
//
// Results are cloned on the way in and on the way out; a Snapshot can be kept
// and read without holding any lock.
package state
