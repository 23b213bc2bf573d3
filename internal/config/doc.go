// Package config loads moodline's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/moodline/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. MOODLINE_API_URL, when set, replaces api_url
//
// Callers apply a command-line override last with Config.WithAPIURL.
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8000"
//	log_file = "~/.local/state/moodline/moodline.log"
//	log_level = "info"
//	request_timeout_seconds = 0
//
// All fields are optional. There is no default api_url: without one every
// request fails and the UI reports the service as unreachable.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, invalid
// TOML and negative timeouts. A missing file is not an error.
package config
