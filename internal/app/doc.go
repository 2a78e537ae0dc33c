// Package app is the composition root of lotwatch.
//
// Run loads the configuration, opens the JSON activity log, builds the
// parking client, optionally starts the /metrics endpoint and the network
// ticket printer, then starts the Poller and hands control to the UI until
// the operator quits or the context is cancelled.
//
// # Polling
//
// The Poller fetches the cubicle snapshot on a fixed interval (default five
// seconds), on manual refresh (rate limited) and after every successful
// mutation (never throttled). Each fetch runs in its own goroutine and is
// tagged with a sequence number from state.Store; a response that arrives
// after a newer one was applied is discarded, so a slow request can never
// overwrite fresher data. Failed fetches keep the previous cubicles and are
// recorded on the snapshot for the header to show.
//
//	Run()
//	  ├─> config.Load()        TOML/YAML file + LOTWATCH_* env
//	  ├─> newLogger()          slog JSON into log_file
//	  ├─> parking.NewClient()  HTTP client for the backend
//	  ├─> serveMetrics()       promhttp, when metrics_addr is set
//	  ├─> Poller.Start()       background refresh
//	  └─> ui.Run()             TUI (blocks)
package app
