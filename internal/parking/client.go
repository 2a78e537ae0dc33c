package parking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// API is the set of backend operations the console uses. It is implemented
// by *Client and can be faked in tests.
type API interface {
	FetchSnapshot(ctx context.Context, search string) ([]Cubicle, error)
	FetchRates(ctx context.Context) ([]Rate, error)
	SaveRate(ctx context.Context, rate Rate) (ActionResult, error)
	FinalizeCharge(ctx context.Context, registrationID ID) (FinalizeResult, error)
	CancelReservation(ctx context.Context, cubicleName string) (ActionResult, error)
	EditPlate(ctx context.Context, registrationID ID, plate string) (ActionResult, error)
	FetchCubicleRates(ctx context.Context, cubicleName string) (CubicleRates, error)
	FetchReport(ctx context.Context, from, to string) (Report, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the parking backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	rates     *cache.Cache
}

const (
	defaultAPIURL    = "127.0.0.1:5000"
	defaultUserAgent = "lotwatch/0.1"
	requestTimeout   = 5 * time.Second
	rateCacheTTL     = 30 * time.Second
	maxBodyBytes     = 4 << 20
)

// NewClient builds a Client for the backend at apiURL (host:port or full
// URL). A nil logger discards request logs.
func NewClient(apiURL string, logger *slog.Logger) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    logger,
		rates:     cache.New(rateCacheTTL, 2*rateCacheTTL),
	}, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchSnapshot retrieves every cubicle, optionally filtered by a search term.
func (c *Client) FetchSnapshot(ctx context.Context, search string) ([]Cubicle, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	values := url.Values{}
	if term := strings.TrimSpace(search); term != "" {
		values.Set("search", term)
	}
	rel := &url.URL{Path: "/api/estado_parqueadero", RawQuery: values.Encode()}
	var payload []Cubicle
	if err := c.doURL(ctx, "snapshot", http.MethodGet, rel, nil, &payload, false); err != nil {
		return nil, err
	}
	observeSnapshot(payload)
	return payload, nil
}

// FetchRates retrieves the rate table for every vehicle type.
func (c *Client) FetchRates(ctx context.Context) ([]Rate, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	var payload []Rate
	if err := c.do(ctx, "rates", http.MethodGet, "/api/tarifas", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SaveRate replaces the rate record for rate.VehicleType.
func (c *Client) SaveRate(ctx context.Context, rate Rate) (ActionResult, error) {
	if c == nil {
		return ActionResult{}, errors.New("client is nil")
	}
	var result ActionResult
	rel := &url.URL{Path: "/api/tarifas"}
	if err := c.doURL(ctx, "save_rate", http.MethodPost, rel, rate, &result, true); err != nil {
		return ActionResult{}, err
	}
	if !result.Success {
		return result, Rejected(rejectionText(result.Message))
	}
	c.rates.Flush()
	return result, nil
}

// FinalizeCharge closes the registration and returns the final amount.
func (c *Client) FinalizeCharge(ctx context.Context, registrationID ID) (FinalizeResult, error) {
	if c == nil {
		return FinalizeResult{}, errors.New("client is nil")
	}
	body := struct {
		RegistrationID ID `json:"registro_id"`
	}{registrationID}
	var result FinalizeResult
	rel := &url.URL{Path: "/api/finalizar_cobro"}
	if err := c.doURL(ctx, "finalize", http.MethodPost, rel, body, &result, true); err != nil {
		return FinalizeResult{}, err
	}
	if !result.Success {
		return result, Rejected(rejectionText(result.Message))
	}
	return result, nil
}

// CancelReservation releases a pending cubicle.
func (c *Client) CancelReservation(ctx context.Context, cubicleName string) (ActionResult, error) {
	if c == nil {
		return ActionResult{}, errors.New("client is nil")
	}
	body := struct {
		CubicleName string `json:"cubiculo_nombre"`
	}{cubicleName}
	var result ActionResult
	rel := &url.URL{Path: "/api/cancelar-reserva"}
	if err := c.doURL(ctx, "cancel", http.MethodPost, rel, body, &result, true); err != nil {
		return ActionResult{}, err
	}
	if !result.Success {
		return result, Rejected(rejectionText(result.Message))
	}
	return result, nil
}

// EditPlate replaces the plate recorded on a registration.
func (c *Client) EditPlate(ctx context.Context, registrationID ID, plate string) (ActionResult, error) {
	if c == nil {
		return ActionResult{}, errors.New("client is nil")
	}
	body := struct {
		RegistrationID ID     `json:"registro_id"`
		Plate          string `json:"nueva_placa"`
	}{registrationID, plate}
	var result ActionResult
	rel := &url.URL{Path: "/api/editar_placa"}
	if err := c.doURL(ctx, "edit_plate", http.MethodPost, rel, body, &result, true); err != nil {
		return ActionResult{}, err
	}
	if !result.Success {
		return result, Rejected(rejectionText(result.Message))
	}
	return result, nil
}

// FetchCubicleRates returns the rate applicable to one cubicle. Results are
// cached briefly and dropped whenever a rate is saved.
func (c *Client) FetchCubicleRates(ctx context.Context, cubicleName string) (CubicleRates, error) {
	if c == nil {
		return CubicleRates{}, errors.New("client is nil")
	}
	name := strings.TrimSpace(cubicleName)
	if name == "" {
		return CubicleRates{}, Precondition("cubículo no válido")
	}
	if cached, ok := c.rates.Get(name); ok {
		return cached.(CubicleRates), nil
	}
	var payload struct {
		CubicleRates
		Error string `json:"error"`
	}
	rel := &url.URL{Path: "/api/tarifas_por_cubiculo/" + url.PathEscape(name)}
	if err := c.doURL(ctx, "cubicle_rates", http.MethodGet, rel, nil, &payload, true); err != nil {
		return CubicleRates{}, err
	}
	if payload.Error != "" {
		return CubicleRates{}, Rejected(payload.Error)
	}
	c.rates.Set(name, payload.CubicleRates, cache.DefaultExpiration)
	return payload.CubicleRates, nil
}

// FetchReport retrieves the charge history between two YYYY-MM-DD dates.
func (c *Client) FetchReport(ctx context.Context, from, to string) (Report, error) {
	if c == nil {
		return Report{}, errors.New("client is nil")
	}
	values := url.Values{}
	if from = strings.TrimSpace(from); from != "" {
		values.Set("inicio", from)
	}
	if to = strings.TrimSpace(to); to != "" {
		values.Set("fin", to)
	}
	rel := &url.URL{Path: "/api/reporte", RawQuery: values.Encode()}
	var payload Report
	if err := c.doURL(ctx, "report", http.MethodGet, rel, nil, &payload, false); err != nil {
		return Report{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, endpoint, method, rel, body, dest, false)
}

// doURL executes one request. When decodeErrors is set, a 4xx/5xx reply
// whose body decodes into dest is treated as an application answer rather
// than a transport failure.
func (c *Client) doURL(ctx context.Context, endpoint, method string, rel *url.URL, body, dest any, decodeErrors bool) error {
	started := time.Now()
	requestID := uuid.NewString()
	logger := c.logger.With("endpoint", endpoint, "request_id", requestID)

	err := c.exchange(ctx, method, rel, requestID, body, dest, decodeErrors)
	elapsed := time.Since(started)
	switch Classify(err) {
	case KindNone:
		observeRequest(endpoint, resultSuccess, elapsed)
		logger.Debug("api request", "method", method, "duration", elapsed)
	case KindRejected:
		observeRequest(endpoint, resultRejected, elapsed)
		logger.Info("api request rejected", "method", method, "duration", elapsed, "error", err)
	default:
		observeRequest(endpoint, resultError, elapsed)
		logger.Warn("api request failed", "method", method, "duration", elapsed, "error", err)
	}
	return err
}

func (c *Client) exchange(ctx context.Context, method string, rel *url.URL, requestID string, body, dest any, decodeErrors bool) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return connectivity(err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return connectivity(err, "read response")
	}

	if resp.StatusCode >= 400 {
		if decodeErrors && dest != nil && len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
		}
		return connectivity(fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode), "unexpected status")
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return connectivity(err, "decode response")
	}
	return nil
}

func rejectionText(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return "Operación rechazada por el servidor."
	}
	return msg
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "parse api_url %q", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
