// Package config loads lotwatch settings.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. The config file: the -config flag, or ~/.config/lotwatch/config.toml
//  3. LOTWATCH_* environment variables
//
// A missing config file is not an error. Blank values fall back to defaults
// after every layer has been applied.
//
// # File Format
//
// TOML by default; files ending in .yaml or .yml are parsed as YAML with the
// same keys:
//
//	api_url = "http://127.0.0.1:5000"
//	poll_seconds = 5
//	log_file = "~/.local/state/lotwatch/lotwatch.log"
//	log_level = "info"
//	voucher_dir = "~/.local/share/lotwatch/tickets"
//	export_dir = "~/.local/share/lotwatch/reports"
//	printer_addr = "192.168.1.40:9100"
//	metrics_addr = "127.0.0.1:9102"
//
// printer_addr and metrics_addr are optional. Without a printer, tickets are
// only saved as PDF; without a metrics address no HTTP listener is started.
//
// # Environment
//
// Each key maps to LOTWATCH_<KEY>, for example LOTWATCH_API_URL or
// LOTWATCH_POLL_SECONDS.
//
// # Path Expansion
//
// Leading "~" is expanded to the home directory and relative paths are made
// absolute.
package config
