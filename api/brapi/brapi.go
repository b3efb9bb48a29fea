package brapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	c "pi.service/api"
	m "pi.service/data/models"
)

// public
const (
	BaseURLDefault = "https://brapi.dev/api"
	TimeoutDefault = time.Second * 30
)

// private
const (
	// api request elements
	quotePath   = "quote"
	token       = "token"
	rangeKey    = "range"
	interval    = "interval"
	fundamental = "fundamental"
	dividends   = "dividends"

	// error bodies past this size are cut
	maxErrorBody = 4 << 10
)

// QuoteRequest selects the history window and the optional modules of a quote request
type QuoteRequest struct {
	Range       Range
	Interval    Interval
	Fundamental bool
	Dividends   bool
}

var (
	// FullQuote asks for a year of daily history plus fundamentals and dividends
	FullQuote = QuoteRequest{
		Range:       RangeOneYear,
		Interval:    IntervalOneDay,
		Fundamental: true,
		Dividends:   true,
	}

	// BasicQuote is the degraded request, a one day snapshot with no optional modules
	BasicQuote = QuoteRequest{
		Range:    RangeOneDay,
		Interval: IntervalOneDay,
	}
)

type BrapiClient struct {
	*c.Client
}

func GetClient(baseURL, apiToken string, timeout time.Duration) (BrapiClient, error) {
	if baseURL == "" {
		baseURL = BaseURLDefault
	}
	if timeout <= 0 {
		timeout = TimeoutDefault
	}

	client, err := c.ClientFactory(baseURL, apiToken, timeout)
	if err != nil {
		return BrapiClient{}, err
	}

	return BrapiClient{client}, nil
}

// GetQuote returns every result the provider sent for the ticker, possibly none.
// A non 2xx answer is returned as *api.StatusError.
func (bc BrapiClient) GetQuote(ctx context.Context, ticker string, request QuoteRequest) ([]*m.Quote, error) {
	if bc.Client == nil {
		panic("brapi client has not been set.")
	}

	params := map[string]string{
		rangeKey: request.Range.Value(),
		interval: request.Interval.Value(),
	}
	if request.Fundamental {
		params[fundamental] = strconv.FormatBool(true)
	}
	if request.Dividends {
		params[dividends] = strconv.FormatBool(true)
	}

	endpoint := bc.buildRequestPath(ticker, params)

	response, err := bc.Client.Connection.Request(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("error requesting quote for %s: %w", ticker, err)
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, parseErrorResponse(response)
	}

	return parseQuoteResponse(response.Body)
}

func (bc BrapiClient) buildRequestPath(ticker string, params map[string]string) *url.URL {
	// build our URL
	ticker = strings.TrimSpace(ticker)
	endpoint := &url.URL{
		Path:    quotePath + "/" + ticker,
		RawPath: quotePath + "/" + url.PathEscape(ticker),
	}

	// base parameters, a missing token still works for the free tickers
	query := endpoint.Query()
	if bc.Client.Token != "" {
		query.Set(token, bc.Client.Token)
	}

	// additional parameters
	for key, value := range params {
		if value != "" {
			query.Set(key, value)
		}
	}

	endpoint.RawQuery = query.Encode()

	return endpoint
}

type quoteResponse struct {
	Results []*m.Quote `json:"results"`
}

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func parseQuoteResponse(reader io.Reader) ([]*m.Quote, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var raw quoteResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %w", err)
	}

	// null entries in results are dropped
	results := make([]*m.Quote, 0, len(raw.Results))
	for _, q := range raw.Results {
		if q != nil {
			results = append(results, q)
		}
	}

	return results, nil
}

func parseErrorResponse(response *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
	if err != nil {
		log.Printf("error reading error body for status %d: %v", response.StatusCode, err)
	}

	se := &c.StatusError{StatusCode: response.StatusCode}

	var raw errorResponse
	if len(body) > 0 && json.Unmarshal(body, &raw) == nil {
		se.Message = raw.Message
	} else {
		se.Message = strings.TrimSpace(string(body))
	}

	return se
}
