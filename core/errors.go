package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("ticker not found")
	ErrUpstreamUnavailable     = errors.New("quote provider unavailable")
	ErrPortfolioInvalidWeights = errors.New("portfolio weights must sum to 100")
	ErrAssetNotFound           = errors.New("asset not found")
)

// AssetError tags a failure with the ticker it happened on
type AssetError struct {
	Ticker string
	Err    error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s: %v", e.Ticker, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}
