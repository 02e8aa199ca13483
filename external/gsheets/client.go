package gsheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4"
	maxBodyBytes   = 16 << 20
)

type ClientConfig struct {
	HTTPClient    *http.Client
	BaseURL       string
	SpreadsheetID string
	APIKey        string
	Timeout       time.Duration
	Logger        *logging.Logger
}

// Client reads a spreadsheet as a raw 2D cell grid through the values
// endpoint. Cells come back as rendered strings; rows may be shorter than
// the sheet width when trailing cells are empty.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	apiKey        string
	logger        *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		spreadsheetID: strings.TrimSpace(cfg.SpreadsheetID),
		apiKey:        strings.TrimSpace(cfg.APIKey),
		logger:        logger,
	}
}

type valuesEnvelope struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

func (c *Client) FetchGrid(ctx context.Context, sheetName string) ([][]string, error) {
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		return nil, fmt.Errorf("sheet name is required")
	}
	if c.spreadsheetID == "" {
		return nil, crerr.New("spreadsheet id is not configured")
	}

	fullURL := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.baseURL,
		url.PathEscape(c.spreadsheetID),
		url.PathEscape(sheetName),
	)
	if c.apiKey != "" {
		fullURL += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %q: %w", sheetName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read sheet response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet provider status=%d", resp.StatusCode)
	}

	var env valuesEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode sheet payload: %w", err)
	}

	grid := make([][]string, len(env.Values))
	for i, row := range env.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = stringifyCell(cell)
		}
		grid[i] = cells
	}

	c.logger.DebugContext(ctx, "sheet grid fetched", "sheet", sheetName, "rows", len(grid))
	return grid, nil
}

// stringifyCell tolerates providers that render numeric cells as JSON
// numbers instead of strings.
func stringifyCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
