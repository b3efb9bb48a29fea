package core

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// upper bound on concurrent upstream fetches for a single portfolio
const Workers = 8

type PortfolioAsset struct {
	Ticker string
	Weight float64 // percent, 0-100
}

type PortfolioRequest struct {
	Assets            []PortfolioAsset
	TotalContribution float64
	Years             int
}

type PortfolioResult struct {
	TotalContribution  float64
	Years              int
	WeightedYield      float64 // fraction
	TotalMonthlyIncome float64
	TotalFinalValue    float64
	Assets             []*ProjectionResult // same order as the request
}

func (sc *ServiceContext) SimulatePortfolio(ctx context.Context, req PortfolioRequest) (*PortfolioResult, error) {
	start := time.Now()

	if err := sc.validatePortfolio(req); err != nil {
		log.Printf("Error validating portfolio: %v", err)
		return nil, err
	}

	weights := make([]float64, len(req.Assets))
	for i, a := range req.Assets {
		weights[i] = a.Weight
	}

	log.Printf("Simulating portfolio of %d assets over %d years", len(req.Assets), req.Years)

	// started fetches run to completion, a failed asset only fails the whole result
	res := make([]*ProjectionResult, len(req.Assets))
	var g errgroup.Group
	g.SetLimit(Workers)

	for i, asset := range req.Assets {
		contribution := req.TotalContribution * asset.Weight / 100
		g.Go(func() error {
			r, err := sc.SimulateAsset(ctx, asset.Ticker, contribution, req.Years)
			if err != nil {
				return err
			}
			res[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("Error simulating portfolio: %v", err)
		return nil, err
	}

	yields := make([]float64, len(res))
	finalValues := make([]float64, len(res))
	incomes := make([]float64, len(res))
	for i, r := range res {
		yields[i] = r.AnnualYield
		finalValues[i] = r.FinalValue
		incomes[i] = r.MonthlyIncome
	}

	log.Printf("Portfolio simulation completed (time: %v)", time.Since(start))
	return &PortfolioResult{
		TotalContribution:  req.TotalContribution,
		Years:              req.Years,
		WeightedYield:      floats.Dot(yields, weights) / 100,
		TotalMonthlyIncome: floats.Sum(incomes),
		TotalFinalValue:    floats.Sum(finalValues),
		Assets:             res,
	}, nil
}

func (sc *ServiceContext) validatePortfolio(req PortfolioRequest) error {
	if len(req.Assets) == 0 {
		return fmt.Errorf("%w: portfolio has no assets", ErrInvalidInput)
	}

	if math.IsNaN(req.TotalContribution) || math.IsInf(req.TotalContribution, 0) || req.TotalContribution <= 0 {
		return fmt.Errorf("%w: total contribution must be positive, got %v", ErrInvalidInput, req.TotalContribution)
	}

	if req.Years <= 0 {
		return fmt.Errorf("%w: years must be positive, got %d", ErrInvalidInput, req.Years)
	}

	weightSum := 0.0
	for _, a := range req.Assets {
		if strings.TrimSpace(a.Ticker) == "" {
			return fmt.Errorf("%w: every asset needs a ticker", ErrInvalidInput)
		}
		if math.IsNaN(a.Weight) || a.Weight <= 0 {
			return fmt.Errorf("%w: weight for %s must be positive, got %v", ErrInvalidInput, a.Ticker, a.Weight)
		}
		weightSum += a.Weight
	}

	if math.Abs(weightSum-100) > sc.WeightTolerance {
		return fmt.Errorf("%w: got %.2f", ErrPortfolioInvalidWeights, weightSum)
	}

	return nil
}
