package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/brownbull-back/pkg/config"
)

const (
	functionIntraday    = "TIME_SERIES_INTRADAY"
	functionGlobalQuote = "GLOBAL_QUOTE"

	// DemoAPIKey is Alpha Vantage's public key, only good for a handful of symbols
	DemoAPIKey = "demo"

	maxResponseBytes = 4 << 20
)

var (
	// ErrRateLimited is returned when either the local limiter or the upstream refuses a call
	ErrRateLimited = errors.New("alpha vantage rate limit reached")
	// ErrUpstream is returned when the upstream answers with an error message
	ErrUpstream = errors.New("alpha vantage rejected the request")
)

// FetchError is returned by every failed upstream call
type FetchError struct {
	Function string
	Symbol   string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("alpha vantage %s %s: %v", e.Function, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=external_test -destination=mock_http_client_test.go -source=alpha_vantage_client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AlphaVantageClient handles Alpha Vantage API interactions for commodity futures
type AlphaVantageClient struct {
	httpClient HTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Entry

	// Nil when no local quota is configured
	limiter *rate.Limiter
}

// AlphaVantageOption configures an AlphaVantageClient
type AlphaVantageOption func(*AlphaVantageClient)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient HTTPClient) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.httpClient = httpClient
	}
}

// WithLimiter replaces the local rate limiter
func WithLimiter(limiter *rate.Limiter) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.limiter = limiter
	}
}

// GlobalQuote represents the latest quote for a symbol, as strings from the wire
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"` // e.g. "1.2000%"
}

// IntradayBar represents one entry of an intraday series
type IntradayBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// IntradaySeries represents an intraday series keyed by upstream timestamp.
// Bars is nil when the response carried no series.
type IntradaySeries struct {
	Symbol   string
	Interval string
	TimeZone string
	Bars     map[string]IntradayBar
}

// notices are the fields Alpha Vantage uses instead of HTTP status codes
type notices struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (n notices) err() error {
	switch {
	case n.Note != "":
		return errors.Wrap(ErrRateLimited, n.Note)
	case n.Information != "":
		return errors.Wrap(ErrRateLimited, n.Information)
	case n.ErrorMessage != "":
		return errors.Wrap(ErrUpstream, n.ErrorMessage)
	}
	return nil
}

// NewAlphaVantageClient creates a new Alpha Vantage client
func NewAlphaVantageClient(cfg *config.AlphaVantageConfig, logger *logrus.Logger, opts ...AlphaVantageOption) *AlphaVantageClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &AlphaVantageClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		logger:     logger.WithField("component", "alpha-vantage"),
	}

	if cfg.RequestsPerMinute > 0 {
		client.limiter = NewLimiter(cfg.RequestsPerMinute, cfg.Burst)
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// UsingDemoKey reports whether the client runs on the public demo key
func (c *AlphaVantageClient) UsingDemoKey() bool {
	return c.apiKey == "" || c.apiKey == DemoAPIKey
}

// GetIntradaySeries fetches the intraday series for a symbol at the given interval (e.g. "30min")
func (c *AlphaVantageClient) GetIntradaySeries(ctx context.Context, symbol, interval string) (*IntradaySeries, error) {
	body, err := c.get(ctx, functionIntraday, symbol, url.Values{
		"interval":   {interval},
		"outputsize": {"compact"},
	})
	if err != nil {
		return nil, &FetchError{Function: functionIntraday, Symbol: symbol, Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &FetchError{Function: functionIntraday, Symbol: symbol, Err: errors.Wrap(err, "failed to decode response")}
	}

	series := &IntradaySeries{Symbol: symbol, Interval: interval, TimeZone: "UTC"}

	if meta, ok := raw["Meta Data"]; ok {
		var fields map[string]string
		if err := json.Unmarshal(meta, &fields); err == nil {
			if tz := fields["6. Time Zone"]; tz != "" {
				series.TimeZone = tz
			}
		}
	}

	seriesKey := fmt.Sprintf("Time Series (%s)", interval)
	payload, ok := raw[seriesKey]
	if !ok {
		c.logger.WithFields(logrus.Fields{
			"symbol":   symbol,
			"interval": interval,
		}).Warn("Intraday response carried no series")
		return series, nil
	}

	if err := json.Unmarshal(payload, &series.Bars); err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Intraday series is malformed")
		series.Bars = nil
		return series, nil
	}

	c.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"bars":   len(series.Bars),
	}).Debug("Fetched intraday series from Alpha Vantage")

	return series, nil
}

// GetGlobalQuote fetches the latest quote for a symbol
func (c *AlphaVantageClient) GetGlobalQuote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	body, err := c.get(ctx, functionGlobalQuote, symbol, nil)
	if err != nil {
		return nil, &FetchError{Function: functionGlobalQuote, Symbol: symbol, Err: err}
	}

	var quote struct {
		GlobalQuote GlobalQuote `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, &FetchError{Function: functionGlobalQuote, Symbol: symbol, Err: errors.Wrap(err, "failed to decode response")}
	}

	c.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"price":  quote.GlobalQuote.Price,
	}).Debug("Fetched global quote from Alpha Vantage")

	return &quote.GlobalQuote, nil
}

// get performs one API call and returns the body once it is known not to be a notice
func (c *AlphaVantageClient) get(ctx context.Context, function, symbol string, params url.Values) ([]byte, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, errors.Wrap(ErrRateLimited, "local quota exhausted")
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("function", function)
	query.Set("symbol", symbol)
	query.Set("apikey", c.apiKey)

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sep+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(redactError(err), "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	var n notices
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}
	if err := n.err(); err != nil {
		return nil, err
	}

	return body, nil
}

// redactError strips the API key from URLs embedded in transport errors
func redactError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	redacted := *urlErr
	redacted.URL = redactURL(urlErr.URL)
	return &redacted
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
