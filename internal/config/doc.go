// Package config loads the matchday TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/matchday/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or blank, use defaults
//
// Numeric fields are validated: timeouts and intervals must be positive and
// max_retries must not be negative. Zero retries disables retrying.
//
// # TOML Format
//
//	base_url = "https://ios-kaizen.github.io"
//	feed_path = "/MockSports/sports.json"
//	request_timeout_seconds = 15
//	max_retries = 3
//	client_platform = "terminal"
//	app_version = ""
//	language = "en"
//	log_file = "~/.local/state/matchday/matchday.log"
//	debug = false
//	connectivity_check = true
//	connectivity_interval_seconds = 5
//	reload_on_toggle = false
//	auto_expand_search = false
//
// Paths beginning with ~ are expanded to the user's home directory.
package config
