// Package socrata fetches the public-investment dataset from the
// datos.gov.co Socrata API and coerces it into the core record type.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inversiones/internal/core"
)

const (
	DefaultBaseURL    = "https://www.datos.gov.co/resource"
	DefaultResourceID = "u3qu-swda"

	// The API truncates results server-side past a small default page
	// size; the bulk query must always override the limit explicitly.
	resultLimit = "99999999"

	selectColumns = "vigencia,departamento,municipio,fuentefinanciacion,valorpagado,sectorproyecto,nombreproyecto"
)

// rawRecord mirrors the wire format: every field arrives string-typed and
// numeric columns are coerced locally.
type rawRecord struct {
	Vigencia           string `json:"vigencia"`
	Departamento       string `json:"departamento"`
	Municipio          string `json:"municipio"`
	FuenteFinanciacion string `json:"fuentefinanciacion"`
	ValorPagado        string `json:"valorpagado"`
	SectorProyecto     string `json:"sectorproyecto"`
	NombreProyecto     string `json:"nombreproyecto"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	resourceID string
	years      core.YearRange
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests, custom timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different endpoint, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithResourceID selects a different Socrata dataset.
func WithResourceID(id string) Option {
	return func(c *Client) { c.resourceID = id }
}

// WithYearSpan overrides the fetched fiscal-year span.
func WithYearSpan(years core.YearRange) Option {
	return func(c *Client) { c.years = years }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    DefaultBaseURL,
		resourceID: DefaultResourceID,
		years:      core.FullRange(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// queryURL builds the bulk SoQL request: explicit column list, string-typed
// year-range predicate, and the high row limit.
func (c *Client) queryURL() string {
	q := url.Values{}
	q.Set("$select", selectColumns)
	q.Set("$where", fmt.Sprintf("vigencia >= '%d' AND vigencia <= '%d'", c.years.From, c.years.To))
	q.Set("$limit", resultLimit)
	return fmt.Sprintf("%s/%s.json?%s", c.baseURL, c.resourceID, q.Encode())
}

// Fetch performs the single bulk request and returns the cleaned base table.
// Transport, HTTP and parse failures yield an empty slice plus the error;
// the caller decides whether that is fatal. Rows whose fiscal year or amount
// fail numeric coercion are dropped and counted, never surfaced one by one.
func (c *Client) Fetch(ctx context.Context) ([]core.Record, error) {
	records, _, err := c.FetchWithStats(ctx)
	return records, err
}

// FetchWithStats is Fetch plus the count of rows dropped during coercion,
// for callers that audit snapshot refreshes.
func (c *Client) FetchWithStats(ctx context.Context) ([]core.Record, int, error) {
	reqURL := c.queryURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}

	var raw []rawRecord
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("decode dataset response: %w", err)
	}

	records, dropped := clean(raw)
	slog.InfoContext(ctx, "Dataset fetched",
		"component", "socrata",
		"rows", len(records),
		"dropped_rows", dropped,
		"duration_ms", time.Since(start).Milliseconds())
	return records, dropped, nil
}

// clean coerces the string-typed wire rows to typed records, discarding any
// row where year or amount is missing or non-numeric.
func clean(raw []rawRecord) (records []core.Record, dropped int) {
	records = make([]core.Record, 0, len(raw))
	for _, r := range raw {
		year, err := strconv.Atoi(strings.TrimSpace(r.Vigencia))
		if err != nil {
			dropped++
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(r.ValorPagado), 64)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, core.Record{
			Year:          year,
			Department:    r.Departamento,
			Municipality:  r.Municipio,
			FundingSource: r.FuenteFinanciacion,
			AmountPaid:    amount,
			Sector:        r.SectorProyecto,
			Project:       r.NombreProyecto,
		})
	}
	return records, dropped
}
