package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/stocktools/core/config"
	"github.com/stocktools/core/errors"
	"github.com/stocktools/core/logging"
)

// validIntervals is the set of intraday bar sizes the API accepts.
var validIntervals = map[string]bool{
	"1min":  true,
	"5min":  true,
	"15min": true,
	"30min": true,
	"60min": true,
}

// Client fetches stock market data from the Alpha Vantage API. It
// performs structural response checks (API errors, rate limiting) and
// retries timed-out requests; everything else is passed through.
type Client struct {
	apiKey     string
	baseURL    string
	maxRetries int
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewClient creates a Client from the api section of stock.yml.
func NewClient(cfg config.APIConfig) (*Client, error) {
	if cfg.Key == "" {
		return nil, errors.MissingAPIKey()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &Client{
		apiKey:     cfg.Key,
		baseURL:    baseURL,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:     logging.NewLogger("marketdata"),
	}, nil
}

// doRequest performs a GET against the API and returns the raw response
// body after checking it for error and rate-limit payloads. Only
// timed-out requests are retried, with exponential backoff up to
// maxRetries attempts; connection failures and API-level errors are
// permanent.
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", c.apiKey)

	var body []byte
	operation := func() error {
		c.logger.WithField("function", params.Get("function")).Debug("Making API request")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to build request"))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				c.logger.Warn("Request timed out, retrying")
				return errors.Wrap(err, errors.ErrCodeAPIConnection, "request timed out")
			}
			return backoff.Permanent(errors.Connection(err))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(errors.APIRequest(fmt.Sprintf("unexpected status %s", resp.Status)).
				WithDetail("status", resp.StatusCode))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeAPIConnection, "failed to read response body")
		}

		if err := checkPayload(data); err != nil {
			c.logger.WithError(err).Error("API returned an error payload")
			return backoff.Permanent(err)
		}

		body = data
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return body, nil
}

// checkPayload inspects a response body for the API's in-band error and
// rate-limit markers.
func checkPayload(data []byte) error {
	var envelope struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
		Information  string `json:"Information"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode API response")
	}

	if envelope.ErrorMessage != "" {
		return errors.APIRequest(envelope.ErrorMessage)
	}
	if envelope.Note != "" {
		return errors.RateLimited(envelope.Note)
	}
	if envelope.Information != "" {
		return errors.RateLimited(envelope.Information)
	}
	return nil
}

// Quote fetches a real-time quote for a stock symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	c.logger.WithField("symbol", symbol).Info("Fetching quote")

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		GlobalQuote GlobalQuote `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode quote response")
	}

	if resp.GlobalQuote.Symbol == "" {
		c.logger.WithField("symbol", symbol).Warn("No quote data found")
		return nil, errors.DataNotFound("quote", symbol)
	}

	return &resp.GlobalQuote, nil
}

// Daily fetches daily historical data for a stock symbol. With full set,
// the API returns up to twenty years of history instead of the last
// hundred data points.
func (c *Client) Daily(ctx context.Context, symbol string, full bool) (*TimeSeries, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{"symbol": symbol, "full": full}).Info("Fetching daily data")

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", outputSize(full))

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	series, err := decodeTimeSeries(body, "daily")
	if err != nil {
		return nil, err
	}
	if len(series.Bars) == 0 {
		c.logger.WithField("symbol", symbol).Warn("No daily data found")
		return nil, errors.DataNotFound("daily data", symbol)
	}

	return series, nil
}

// Intraday fetches intraday data for a stock symbol at the given
// interval (1min, 5min, 15min, 30min or 60min).
func (c *Client) Intraday(ctx context.Context, symbol, interval string, full bool) (*TimeSeries, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if !validIntervals[interval] {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("interval must be one of: 1min, 5min, 15min, 30min, 60min (got '%s')", interval)).
			WithDetail("interval", interval)
	}
	c.logger.WithFields(logrus.Fields{"symbol": symbol, "interval": interval}).Info("Fetching intraday data")

	params := url.Values{}
	params.Set("function", "TIME_SERIES_INTRADAY")
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("outputsize", outputSize(full))

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	series, err := decodeTimeSeries(body, interval)
	if err != nil {
		return nil, err
	}
	if len(series.Bars) == 0 {
		c.logger.WithField("symbol", symbol).Warn("No intraday data found")
		return nil, errors.DataNotFound("intraday data", symbol)
	}

	return series, nil
}

// Search searches for stocks matching the given keywords.
func (c *Client) Search(ctx context.Context, keywords string) ([]SearchMatch, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "keywords must be a non-empty string")
	}
	c.logger.WithField("keywords", keywords).Info("Searching stocks")

	params := url.Values{}
	params.Set("function", "SYMBOL_SEARCH")
	params.Set("keywords", keywords)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		BestMatches []SearchMatch `json:"bestMatches"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode search response")
	}

	c.logger.WithField("matches", len(resp.BestMatches)).Info("Search finished")
	return resp.BestMatches, nil
}

// CompanyOverview fetches company fundamentals for a symbol.
func (c *Client) CompanyOverview(ctx context.Context, symbol string) (*CompanyOverview, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	c.logger.WithField("symbol", symbol).Info("Fetching company overview")

	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", symbol)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var overview CompanyOverview
	if err := json.Unmarshal(body, &overview); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode overview response")
	}

	// An unknown symbol yields an empty object
	if overview.Name == "" {
		c.logger.WithField("symbol", symbol).Warn("No company overview found")
		return nil, errors.DataNotFound("company overview", symbol)
	}

	return &overview, nil
}

// MarketStatus fetches the current open/closed status of global markets.
func (c *Client) MarketStatus(ctx context.Context) (*MarketStatus, error) {
	c.logger.Info("Fetching market status")

	params := url.Values{}
	params.Set("function", "MARKET_STATUS")

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var status MarketStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode market status response")
	}

	if len(status.Markets) == 0 {
		return nil, errors.New(errors.ErrCodeDataNotFound, "no market status data found")
	}

	return &status, nil
}

// TopMovers fetches the day's top gainers, losers and most active tickers.
func (c *Client) TopMovers(ctx context.Context) (*TopMovers, error) {
	c.logger.Info("Fetching top gainers and losers")

	params := url.Values{}
	params.Set("function", "TOP_GAINERS_LOSERS")

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var movers TopMovers
	if err := json.Unmarshal(body, &movers); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode movers response")
	}

	if len(movers.TopGainers) == 0 && len(movers.TopLosers) == 0 {
		return nil, errors.New(errors.ErrCodeDataNotFound, "no gainers/losers data found")
	}

	return &movers, nil
}

// normalizeSymbol trims and upper-cases a stock symbol.
func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "symbol must be a non-empty string")
	}
	return symbol, nil
}

func outputSize(full bool) string {
	if full {
		return "full"
	}
	return "compact"
}

// decodeTimeSeries extracts the metadata and the series map from a time
// series response. The series key varies with the requested interval
// ("Time Series (Daily)", "Time Series (5min)", ...), so the top level
// is scanned for it.
func decodeTimeSeries(body []byte, interval string) (*TimeSeries, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode time series response")
	}

	series := &TimeSeries{Interval: interval, Bars: map[string]OHLCV{}}

	if meta, ok := raw["Meta Data"]; ok {
		if err := json.Unmarshal(meta, &series.Meta); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode series metadata")
		}
	}

	for key, value := range raw {
		if !strings.Contains(key, "Time Series") {
			continue
		}
		if err := json.Unmarshal(value, &series.Bars); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeAPIRequest, "failed to decode series bars")
		}
		break
	}

	return series, nil
}
