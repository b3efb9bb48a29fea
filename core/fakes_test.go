package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"pi.service/api/brapi"
	"pi.service/data/cache"
	m "pi.service/data/models"
)

// fakeProvider records every upstream request and answers through respond
type fakeProvider struct {
	mu       sync.Mutex
	requests []fakeRequest
	respond  func(ticker string, request brapi.QuoteRequest) ([]*m.Quote, error)
}

type fakeRequest struct {
	ticker  string
	request brapi.QuoteRequest
}

func (f *fakeProvider) GetQuote(ctx context.Context, ticker string, request brapi.QuoteRequest) ([]*m.Quote, error) {
	f.mu.Lock()
	f.requests = append(f.requests, fakeRequest{ticker: ticker, request: request})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	quotes, err := f.respond(ticker, request)
	// a request cancelled while in flight is aborted like the http client does
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return quotes, err
}

func (f *fakeProvider) calls() []fakeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeRequest(nil), f.requests...)
}

// quotesByTicker answers every request from a fixed set of quotes, unknown tickers get no results
func quotesByTicker(quotes ...*m.Quote) func(string, brapi.QuoteRequest) ([]*m.Quote, error) {
	lookup := make(map[string]*m.Quote, len(quotes))
	for _, q := range quotes {
		lookup[q.Symbol] = q
	}

	return func(ticker string, _ brapi.QuoteRequest) ([]*m.Quote, error) {
		if q, ok := lookup[ticker]; ok {
			return []*m.Quote{q}, nil
		}
		return []*m.Quote{}, nil
	}
}

func newTestServiceContext(t *testing.T, provider QuoteProvider) *ServiceContext {
	t.Helper()
	sc := NewServiceContext(provider, cache.New(time.Minute, 10), DefaultWeightTolerance)
	t.Cleanup(sc.Flush)
	return sc
}

// newQuote builds a quote paying each rate one month apart, the most recent one month ago
func newQuote(symbol string, price float64, rates ...float64) *m.Quote {
	q := &m.Quote{
		Symbol:             symbol,
		ShortName:          null.StringFrom(symbol + " ON"),
		RegularMarketPrice: null.FloatFrom(price),
		DividendsData:      &m.DividendData{},
	}

	now := time.Now().UTC()
	for i, rate := range rates {
		q.DividendsData.CashDividends = append(q.DividendsData.CashDividends, &m.CashDividend{
			PaymentDate: null.StringFrom(now.AddDate(0, -(i + 1), 0).Format(time.RFC3339)),
			Rate:        null.FloatFrom(rate),
			Label:       null.StringFrom("DIVIDENDO"),
		})
	}

	return q
}
