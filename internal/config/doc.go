// Package config loads the scfetch TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. An explicitly provided path
//  2. ~/.config/scfetch/config.toml
//  3. Built-in defaults when the file does not exist
//
// Fields that are missing or blank keep their defaults.
//
// # Default Values
//
//   - output_dir: ~/Music/scfetch
//   - log_dir: ~/.local/share/scfetch (log file: <log_dir>/scfetch.log)
//   - user_agent: the client default
//   - timeout_seconds: 30
//   - quality: hq
//   - prefer_original: false
//   - theme: Dracula
//
// # TOML Format
//
//	output_dir = "~/Music/soundcloud"
//	quality = "sq"
//	prefer_original = true
//
// The API endpoint is fixed by the soundcloud package and cannot be set here.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files (other
// than os.ErrNotExist), TOML syntax errors, and unknown quality values.
package config
