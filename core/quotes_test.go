package core

import (
	"context"
	"errors"
	"net/http"
	"testing"

	c "pi.service/api"
	"pi.service/api/brapi"
	ex "pi.service/data/extensions"
	m "pi.service/data/models"
)

func Test_FetchQuote_CachesAfterFirstFetch(t *testing.T) {
	provider := &fakeProvider{respond: quotesByTicker(newQuote("PETR4", 38.5))}
	sc := newTestServiceContext(t, provider)

	q, err := sc.FetchQuote(context.Background(), "petr4")
	if err != nil {
		t.Fatalf("error fetching quote: %v", err)
	}
	ex.AssertAreEqual(t, "symbol", "PETR4", q.Symbol)

	sc.Flush()

	q2, err := sc.FetchQuote(context.Background(), " PETR4 ")
	if err != nil {
		t.Fatalf("error fetching cached quote: %v", err)
	}

	ex.AssertAreEqual(t, "same quote", q, q2)
	ex.AssertAreEqual(t, "upstream calls", 1, len(provider.calls()))
	ex.AssertAreEqual(t, "first request", brapi.FullQuote, provider.calls()[0].request)
	ex.AssertAreEqual(t, "cache hits", uint64(1), sc.Cache.Stats().Hits)
}

func Test_FetchQuote_ClientErrorSkipsFallback(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusBadRequest} {
		provider := &fakeProvider{respond: func(string, brapi.QuoteRequest) ([]*m.Quote, error) {
			return nil, &c.StatusError{StatusCode: status, Message: "ticker desconhecido"}
		}}
		sc := newTestServiceContext(t, provider)

		_, err := sc.FetchQuote(context.Background(), "XXXX0")

		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for status %d, got %v", status, err)
		}
		ex.AssertAreEqual(t, "upstream status", status, c.StatusCode(err))
		ex.AssertAreEqual(t, "upstream calls", 1, len(provider.calls()))
	}
}

func Test_FetchQuote_FallsBackToBasicQuote(t *testing.T) {
	provider := &fakeProvider{respond: func(ticker string, request brapi.QuoteRequest) ([]*m.Quote, error) {
		if request.Dividends {
			return nil, &c.StatusError{StatusCode: http.StatusInternalServerError}
		}
		return []*m.Quote{newQuote(ticker, 10)}, nil
	}}
	sc := newTestServiceContext(t, provider)

	q, err := sc.FetchQuote(context.Background(), "ITSA4")
	if err != nil {
		t.Fatalf("error fetching quote: %v", err)
	}

	calls := provider.calls()
	ex.AssertAreEqual(t, "upstream calls", 2, len(calls))
	ex.AssertAreEqual(t, "first request", brapi.FullQuote, calls[0].request)
	ex.AssertAreEqual(t, "second request", brapi.BasicQuote, calls[1].request)
	ex.AssertAreEqual(t, "price", 10.0, q.Price())

	sc.Flush()
	ex.AssertAreEqual(t, "cached", 1, sc.Cache.Len())
}

func Test_FetchQuote_TransportFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{respond: func(ticker string, request brapi.QuoteRequest) ([]*m.Quote, error) {
		if request.Fundamental {
			return nil, errors.New("connection reset by peer")
		}
		return []*m.Quote{newQuote(ticker, 10)}, nil
	}}
	sc := newTestServiceContext(t, provider)

	if _, err := sc.FetchQuote(context.Background(), "ITSA4"); err != nil {
		t.Fatalf("error fetching quote: %v", err)
	}
	ex.AssertAreEqual(t, "upstream calls", 2, len(provider.calls()))
}

func Test_FetchQuote_BothAttemptsFail(t *testing.T) {
	provider := &fakeProvider{respond: func(string, brapi.QuoteRequest) ([]*m.Quote, error) {
		return nil, &c.StatusError{StatusCode: http.StatusServiceUnavailable}
	}}
	sc := newTestServiceContext(t, provider)

	q, err := sc.FetchQuote(context.Background(), "ITSA4")

	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	ex.AssertNillability(t, "quote", true, q)
	ex.AssertAreEqual(t, "upstream status", http.StatusServiceUnavailable, c.StatusCode(err))
	ex.AssertAreEqual(t, "upstream calls", 2, len(provider.calls()))
	ex.AssertAreEqual(t, "cached", 0, sc.Cache.Len())
}

func Test_FetchQuote_EmptyResultsIsAbsent(t *testing.T) {
	provider := &fakeProvider{respond: quotesByTicker()}
	sc := newTestServiceContext(t, provider)

	q, err := sc.FetchQuote(context.Background(), "NADA3")
	if err != nil {
		t.Fatalf("error fetching quote: %v", err)
	}

	ex.AssertNillability(t, "quote", true, q)
	ex.AssertAreEqual(t, "upstream calls", 1, len(provider.calls()))

	sc.Flush()
	ex.AssertAreEqual(t, "cached", 0, sc.Cache.Len())
}

func Test_FetchQuote_RequiresTicker(t *testing.T) {
	provider := &fakeProvider{respond: quotesByTicker()}
	sc := newTestServiceContext(t, provider)

	if _, err := sc.FetchQuote(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	ex.AssertAreEqual(t, "upstream calls", 0, len(provider.calls()))
}
