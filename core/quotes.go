package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	c "pi.service/api"
	"pi.service/api/brapi"
	m "pi.service/data/models"
)

// FetchQuote resolves a ticker through the cache, then the full upstream request, then the basic one.
// A nil quote with a nil error means the provider knows nothing about the ticker.
func (sc *ServiceContext) FetchQuote(ctx context.Context, ticker string) (*m.Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}

	if q, ok := sc.Cache.Get(ticker); ok {
		return q, nil
	}

	log.Printf("Fetching full quote for %s", ticker)
	results, err := sc.QuoteProvider.GetQuote(ctx, ticker, brapi.FullQuote)
	if err == nil {
		return sc.firstAndCache(ticker, results), nil
	}

	var se *c.StatusError
	if errors.As(err, &se) && se.IsClientError() {
		log.Printf("Ticker %s rejected by quote provider: %v", ticker, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, ticker, err)
	}

	log.Printf("Full quote for %s failed, falling back to basic quote: %v", ticker, err)
	results, err = sc.QuoteProvider.GetQuote(ctx, ticker, brapi.BasicQuote)
	if err != nil {
		log.Printf("Basic quote for %s failed: %v", ticker, err)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	return sc.firstAndCache(ticker, results), nil
}

func (sc *ServiceContext) firstAndCache(ticker string, results []*m.Quote) *m.Quote {
	if len(results) == 0 {
		log.Printf("No results for %s", ticker)
		return nil
	}

	q := results[0]

	// the caller never waits on the cache
	sc.pending.Add(1)
	go func() {
		defer sc.pending.Done()
		sc.Cache.Put(ticker, q)
	}()

	return q
}

// Flush blocks until every pending cache write has landed
func (sc *ServiceContext) Flush() {
	sc.pending.Wait()
}
