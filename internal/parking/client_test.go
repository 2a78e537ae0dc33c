package parking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIURL)
	}

	u, err = parseBaseURL("https://parking.local:8443/monitor?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestClient_FetchSnapshotDecodesCubicles(t *testing.T) {
	t.Parallel()

	var gotSearch, gotRequestID, gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/estado_parqueadero" {
			http.NotFound(w, r)
			return
		}
		gotSearch = r.URL.Query().Get("search")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"nombre":"A1","estado":"Ocupado","hora_ingreso":"2024-05-01 08:00:00","registro_id":17,"placa":"ABC123","tipo_vehiculo":"CARRO","tiempo_minutos":90,"cobro_actual":6000},
			{"nombre":"B2","estado":"Libre","hora_ingreso":null,"registro_id":null,"placa":null,"tipo_vehiculo":null,"tiempo_minutos":null,"cobro_actual":null}
		]`)
	})

	items, err := c.FetchSnapshot(testContext(t), "  abc ")
	if err != nil {
		t.Fatalf("FetchSnapshot returned error: %v", err)
	}
	if gotSearch != "abc" {
		t.Fatalf("search = %q, want %q", gotSearch, "abc")
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	occupied := items[0]
	if occupied.RegistrationID != "17" || occupied.State != StateOccupied || occupied.Plate != "ABC123" {
		t.Fatalf("occupied cubicle = %#v", occupied)
	}
	if occupied.ElapsedMinutes == nil || *occupied.ElapsedMinutes != 90 {
		t.Fatalf("ElapsedMinutes = %v, want 90", occupied.ElapsedMinutes)
	}
	free := items[1]
	if free.Active() || free.ElapsedMinutes != nil || free.Type() != VehicleMotorcycle {
		t.Fatalf("free cubicle = %#v, want inactive motorcycle slot", free)
	}
}

func TestClient_FetchSnapshotOmitsBlankSearch(t *testing.T) {
	t.Parallel()

	var rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	})
	if _, err := c.FetchSnapshot(testContext(t), "   "); err != nil {
		t.Fatalf("FetchSnapshot returned error: %v", err)
	}
	if rawQuery != "" {
		t.Fatalf("query = %q, want empty", rawQuery)
	}
}

func TestClient_MutationsSendExpectedBodies(t *testing.T) {
	t.Parallel()

	bodies := make(map[string]map[string]any)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		bodies[r.URL.Path] = body
		switch r.URL.Path {
		case "/api/finalizar_cobro":
			_, _ = io.WriteString(w, `{"success":true,"message":"ok","monto":9000,"minutos":125}`)
		default:
			_, _ = io.WriteString(w, `{"success":true,"message":"Guardado"}`)
		}
	})
	ctx := testContext(t)

	fin, err := c.FinalizeCharge(ctx, "17")
	if err != nil {
		t.Fatalf("FinalizeCharge returned error: %v", err)
	}
	if fin.Amount != 9000 || fin.Minutes != 125 {
		t.Fatalf("FinalizeCharge = %#v, want monto=9000 minutos=125", fin)
	}
	if _, err := c.CancelReservation(ctx, "A3"); err != nil {
		t.Fatalf("CancelReservation returned error: %v", err)
	}
	if _, err := c.EditPlate(ctx, "17", "XYZ987"); err != nil {
		t.Fatalf("EditPlate returned error: %v", err)
	}
	res, err := c.SaveRate(ctx, Rate{VehicleType: VehicleCar, FirstHourRate: 3000, SubsequentHourRate: 2000})
	if err != nil {
		t.Fatalf("SaveRate returned error: %v", err)
	}
	if res.Message != "Guardado" {
		t.Fatalf("SaveRate message = %q, want Guardado", res.Message)
	}

	if got := bodies["/api/finalizar_cobro"]["registro_id"]; got != float64(17) {
		t.Fatalf("finalize registro_id = %#v, want numeric 17", got)
	}
	if got := bodies["/api/cancelar-reserva"]["cubiculo_nombre"]; got != "A3" {
		t.Fatalf("cancel cubiculo_nombre = %#v, want A3", got)
	}
	if got := bodies["/api/editar_placa"]["nueva_placa"]; got != "XYZ987" {
		t.Fatalf("edit nueva_placa = %#v, want XYZ987", got)
	}
	rate := bodies["/api/tarifas"]
	if rate["tipo"] != "CARRO" || rate["tarifa_primera_hora"] != float64(3000) || rate["tarifa_hora_subsiguiente"] != float64(2000) {
		t.Fatalf("save rate body = %#v", rate)
	}
}

func TestClient_RejectionCarriesBackendMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":"El registro ya fue cerrado"}`)
	})

	_, err := c.FinalizeCharge(testContext(t), "5")
	if err == nil {
		t.Fatalf("FinalizeCharge returned nil error, want rejection")
	}
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("error %v is not ErrRejected", err)
	}
	if got := Message(err); got != "El registro ya fue cerrado" {
		t.Fatalf("Message = %q, want backend text", got)
	}
}

func TestClient_StatusWithoutBodyIsConnectivity(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.CancelReservation(testContext(t), "A1")
	if Classify(err) != KindConnectivity {
		t.Fatalf("Classify = %v, want connectivity (err=%v)", Classify(err), err)
	}
	if got := Message(err); got != ConnectivityMessage {
		t.Fatalf("Message = %q, want %q", got, ConnectivityMessage)
	}
}

func TestClient_NonJSONIsConnectivity(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	})
	_, err := c.FetchRates(testContext(t))
	if !errors.Is(err, ErrConnectivity) {
		t.Fatalf("error %v is not ErrConnectivity", err)
	}
}

func TestClient_UnreachableBackendIsConnectivity(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchSnapshot(testContext(t), "")
	if !errors.Is(err, ErrConnectivity) {
		t.Fatalf("error %v is not ErrConnectivity", err)
	}
}

func TestClient_CubicleRatesCachedUntilSave(t *testing.T) {
	t.Parallel()

	var lookups atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/tarifas_por_cubiculo/"):
			lookups.Add(1)
			_, _ = io.WriteString(w, `{"tipo":"CARRO","primera_hora":3000,"subsiguiente":2000}`)
		case r.URL.Path == "/api/tarifas":
			_, _ = io.WriteString(w, `{"success":true,"message":"ok"}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := testContext(t)

	for i := 0; i < 3; i++ {
		rates, err := c.FetchCubicleRates(ctx, "A1")
		if err != nil {
			t.Fatalf("FetchCubicleRates returned error: %v", err)
		}
		if rates.FirstHour != 3000 || rates.Subsequent != 2000 {
			t.Fatalf("rates = %#v", rates)
		}
	}
	if got := lookups.Load(); got != 1 {
		t.Fatalf("lookups = %d, want 1", got)
	}

	if _, err := c.SaveRate(ctx, Rate{VehicleType: VehicleCar}); err != nil {
		t.Fatalf("SaveRate returned error: %v", err)
	}
	if _, err := c.FetchCubicleRates(ctx, "A1"); err != nil {
		t.Fatalf("FetchCubicleRates returned error: %v", err)
	}
	if got := lookups.Load(); got != 2 {
		t.Fatalf("lookups after save = %d, want 2", got)
	}
}

func TestClient_CubicleRatesNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Tarifa no encontrada"}`)
	})
	_, err := c.FetchCubicleRates(testContext(t), "Z9")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("error %v is not ErrRejected", err)
	}
}

func TestClient_FetchReport(t *testing.T) {
	t.Parallel()

	var gotFrom, gotTo string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("inicio")
		gotTo = r.URL.Query().Get("fin")
		_, _ = io.WriteString(w, `{
			"historial":[{"id":3,"cubiculo":"A1","placa":"ABC123","hora_ingreso":"2024-05-01 08:00:00","hora_salida":"2024-05-01 09:30:00","tiempo_total_minutos":90,"monto_cobrado":5000,"tipo_vehiculo":"CARRO"}],
			"sumatoria_total":5000,
			"conteo_tipos":{"CARRO":{"total_cobrado":5000,"cantidad":1},"MOTO":{"total_cobrado":0,"cantidad":0}}
		}`)
	})

	report, err := c.FetchReport(testContext(t), "2024-05-01", "2024-05-02")
	if err != nil {
		t.Fatalf("FetchReport returned error: %v", err)
	}
	if gotFrom != "2024-05-01" || gotTo != "2024-05-02" {
		t.Fatalf("query = %q..%q", gotFrom, gotTo)
	}
	if report.Total != 5000 || len(report.History) != 1 || report.History[0].ID != "3" {
		t.Fatalf("report = %#v", report)
	}
	if report.ByType[VehicleCar].Count != 1 {
		t.Fatalf("car count = %d, want 1", report.ByType[VehicleCar].Count)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchSnapshot(context.Background(), ""); err == nil {
		t.Fatalf("expected error from nil client")
	}
}
