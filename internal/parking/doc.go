// Package parking provides an HTTP client for the parking-lot backend API.
//
// # Overview
//
// The backend owns every piece of business state: cubicle assignment,
// charges, rate tables and history. This package only mirrors its JSON
// schema and exposes the handful of endpoints the console needs.
//
// # Architecture
//
//   - client.go: HTTP client, request execution, per-cubicle rate cache
//   - types.go: data structures mirroring the backend payloads
//   - errors.go: failure taxonomy (connectivity, rejection, precondition)
//   - metrics.go: Prometheus counters and histograms for every request
//
// # Client Usage
//
//	client, err := parking.NewClient("127.0.0.1:5000", logger)
//	if err != nil {
//		return err
//	}
//	cubicles, err := client.FetchSnapshot(ctx, "ABC")
//
// # API Endpoints
//
//   - GET  /api/estado_parqueadero?search=   cubicle snapshot
//   - GET  /api/tarifas                      all rate tables
//   - POST /api/tarifas                      save one rate table
//   - POST /api/finalizar_cobro              close a registration
//   - POST /api/cancelar-reserva             release a pending cubicle
//   - POST /api/editar_placa                 correct a plate
//   - GET  /api/tarifas_por_cubiculo/<name>  rate for one cubicle
//   - GET  /api/reporte?inicio=&fin=         charge history
//
// The payload keys are the backend's (Spanish) names; Go types use English
// field names with json tags.
//
// # Error Handling
//
// Every call makes a single attempt. Failures carry one of three markers
// that callers test with errors.Is from github.com/cockroachdb/errors:
//
//   - ErrConnectivity: network failure, non-JSON reply, or an HTTP error
//     without a decodable body
//   - ErrRejected: the backend answered success=false; the message is kept
//     verbatim and returned by Message
//   - ErrPrecondition: the caller supplied something unusable before any
//     request was made
//
// Mutation endpoints answer rejections with 4xx/5xx plus a JSON body, so
// those bodies are decoded rather than discarded.
package parking
