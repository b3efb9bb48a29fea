package core

import (
	"context"
	"sync"

	"pi.service/api/brapi"
	"pi.service/data/cache"
	m "pi.service/data/models"
)

const DefaultWeightTolerance = 1.0

// QuoteProvider is the upstream quote source, satisfied by brapi.BrapiClient
type QuoteProvider interface {
	GetQuote(ctx context.Context, ticker string, request brapi.QuoteRequest) ([]*m.Quote, error)
}

type ServiceContext struct {
	QuoteProvider   QuoteProvider
	Cache           *cache.Cache
	WeightTolerance float64

	// tracks the fire and forget cache writes
	pending sync.WaitGroup
}

func NewServiceContext(provider QuoteProvider, quoteCache *cache.Cache, weightTolerance float64) *ServiceContext {
	if quoteCache == nil {
		quoteCache = cache.New(cache.DefaultTTL, cache.DefaultMaxEntries)
	}
	if weightTolerance < 0 {
		weightTolerance = DefaultWeightTolerance
	}

	return &ServiceContext{
		QuoteProvider:   provider,
		Cache:           quoteCache,
		WeightTolerance: weightTolerance,
	}
}
