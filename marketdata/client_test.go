package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktools/core/config"
	"github.com/stocktools/core/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.APIConfig{
		Key:        "test-key",
		BaseURL:    srv.URL,
		MaxRetries: 1,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(config.APIConfig{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingAPIKey, errors.GetCode(err))
}

func TestQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		fmt.Fprint(w, `{"Global Quote": {
			"01. symbol": "AAPL",
			"05. price": "189.84",
			"09. change": "1.35",
			"10. change percent": "0.7163%"
		}}`)
	})

	// Lower-case input must be normalized before the request
	quote, err := client.Quote(context.Background(), " aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "189.84", quote.Price)
}

func TestQuoteNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Global Quote": {}}`)
	})

	_, err := client.Quote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDataNotFound, errors.GetCode(err))
}

func TestQuoteEmptySymbol(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent for an empty symbol")
	})

	_, err := client.Quote(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestAPIErrorPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Error Message": "Invalid API call."}`)
	})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAPIRequest, errors.GetCode(err))
}

func TestRateLimitPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`)
	})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAPIRateLimit, errors.GetCode(err))
}

func TestDaily(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		assert.Equal(t, "full", r.URL.Query().Get("outputsize"))

		fmt.Fprint(w, `{
			"Meta Data": {"2. Symbol": "MSFT", "3. Last Refreshed": "2023-08-25"},
			"Time Series (Daily)": {
				"2023-08-25": {"1. open": "321.47", "4. close": "322.98", "5. volume": "21671395"},
				"2023-08-24": {"1. open": "332.85", "4. close": "319.97", "5. volume": "24216108"}
			}
		}`)
	})

	series, err := client.Daily(context.Background(), "MSFT", true)
	require.NoError(t, err)
	assert.Equal(t, "MSFT", series.Meta.Symbol)
	assert.Equal(t, "daily", series.Interval)
	require.Len(t, series.Bars, 2)
	assert.Equal(t, "322.98", series.Bars["2023-08-25"].Close)
}

func TestDailyNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.Daily(context.Background(), "MSFT", false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDataNotFound, errors.GetCode(err))
}

func TestIntraday(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_INTRADAY", r.URL.Query().Get("function"))
		assert.Equal(t, "5min", r.URL.Query().Get("interval"))

		fmt.Fprint(w, `{
			"Meta Data": {"2. Symbol": "IBM"},
			"Time Series (5min)": {
				"2023-08-25 19:55:00": {"1. open": "143.50", "4. close": "143.55", "5. volume": "1200"}
			}
		}`)
	})

	series, err := client.Intraday(context.Background(), "IBM", "5min", false)
	require.NoError(t, err)
	assert.Equal(t, "5min", series.Interval)
	assert.Len(t, series.Bars, 1)
}

func TestIntradayInvalidInterval(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent for an invalid interval")
	})

	_, err := client.Intraday(context.Background(), "IBM", "7min", false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SYMBOL_SEARCH", r.URL.Query().Get("function"))
		assert.Equal(t, "tesco", r.URL.Query().Get("keywords"))

		fmt.Fprint(w, `{"bestMatches": [
			{"1. symbol": "TSCO.LON", "2. name": "Tesco PLC", "9. matchScore": "0.7273"},
			{"1. symbol": "TSCDY", "2. name": "Tesco PLC ADR", "9. matchScore": "0.7143"}
		]}`)
	})

	matches, err := client.Search(context.Background(), " tesco ")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "TSCO.LON", matches[0].Symbol)
}

func TestCompanyOverviewNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.CompanyOverview(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDataNotFound, errors.GetCode(err))
}

func TestMarketStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"endpoint": "Global Market Open & Close Status", "markets": [
			{"region": "United States", "current_status": "closed"}
		]}`)
	})

	status, err := client.MarketStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, status.Markets, 1)
	assert.Equal(t, "closed", status.Markets[0].CurrentStatus)
}

func TestTopMovers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"last_updated": "2023-08-25 16:15:59 US/Eastern",
			"top_gainers": [{"ticker": "ABCD", "change_percentage": "312.5%"}],
			"top_losers": [{"ticker": "WXYZ", "change_percentage": "-54.2%"}]
		}`)
	})

	movers, err := client.TopMovers(context.Background())
	require.NoError(t, err)
	assert.Len(t, movers.TopGainers, 1)
	assert.Len(t, movers.TopLosers, 1)
}

func TestHTTPErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAPIRequest, errors.GetCode(err))
}

// countingTransport fails every request with a fixed error and records
// how many attempts the client makes.
type countingTransport struct {
	attempts int
	err      error
}

func (ct *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	ct.attempts++
	return nil, ct.err
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func newFailingClient(t *testing.T, transportErr error) (*Client, *countingTransport) {
	t.Helper()

	client, err := NewClient(config.APIConfig{
		Key:        "test-key",
		BaseURL:    "http://stocktools.invalid",
		MaxRetries: 2,
	})
	require.NoError(t, err)

	ct := &countingTransport{err: transportErr}
	client.httpClient = &http.Client{Transport: ct}
	return client, ct
}

func TestConnectionErrorsAreNotRetried(t *testing.T) {
	client, ct := newFailingClient(t, fmt.Errorf("connection refused"))

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAPIConnection, errors.GetCode(err))
	assert.Equal(t, 1, ct.attempts, "connection failures must fail fast")
}

func TestTimeoutsAreRetried(t *testing.T) {
	// http.Client wraps transport errors in *url.Error, which reports
	// Timeout() from the underlying error.
	client, ct := newFailingClient(t, timeoutError{})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAPIConnection, errors.GetCode(err))
	assert.Equal(t, client.maxRetries, ct.attempts, "timeouts get every configured attempt")
}
