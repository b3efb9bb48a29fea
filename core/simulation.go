package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	ex "pi.service/data/extensions"
)

// ProjectionResult is the unrounded outcome of contributing monthly to a single asset
// and reinvesting its dividends. AnnualYield and MonthlyRate are fractions, not percentages.
type ProjectionResult struct {
	Ticker              string
	CurrentPrice        float64
	AnnualYield         float64
	MonthlyRate         float64
	MonthlyContribution float64
	Years               int
	FinalValue          float64
	EstimatedShares     float64
	MonthlyIncome       float64
	MagicNumber         float64
}

// Simulate projects a fixed monthly contribution compounding at the asset's trailing dividend yield.
func Simulate(ticker string, price, trailingDividends, monthlyContribution float64, years int) ProjectionResult {
	var annualYield float64
	if price > 0 {
		annualYield = trailingDividends / price
	}

	// equivalent monthly rate, compounding twelve times gives the annual yield back
	monthlyRate := math.Pow(1+annualYield, 1.0/12) - 1
	totalMonths := float64(years * 12)

	// future value of an ordinary annuity, degenerates to plain saving when nothing is paid
	finalValue := monthlyContribution * totalMonths
	if monthlyRate > 0 {
		finalValue = monthlyContribution * (math.Pow(1+monthlyRate, totalMonths) - 1) / monthlyRate
	}

	var shares float64
	if price > 0 {
		shares = math.Floor(finalValue / price)
	}

	// shares at which the monthly dividends buy one more share each month
	var magicNumber float64
	if monthlyRate > 0 {
		magicNumber = math.Ceil(1 / monthlyRate)
	}

	return ProjectionResult{
		Ticker:              ticker,
		CurrentPrice:        price,
		AnnualYield:         annualYield,
		MonthlyRate:         monthlyRate,
		MonthlyContribution: monthlyContribution,
		Years:               years,
		FinalValue:          finalValue,
		EstimatedShares:     shares,
		MonthlyIncome:       finalValue * monthlyRate,
		MagicNumber:         magicNumber,
	}
}

// SimulateAsset fetches the ticker and projects it with its trailing twelve month dividends.
func (sc *ServiceContext) SimulateAsset(ctx context.Context, ticker string, monthlyContribution float64, years int) (*ProjectionResult, error) {
	start := time.Now()
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if err := validateProjectionInput(ticker, monthlyContribution, years); err != nil {
		return nil, err
	}

	log.Printf("Getting quote for simulation of %s (time: %v)", ticker, time.Since(start))
	quote, err := sc.FetchQuote(ctx, ticker)
	if errors.Is(err, ErrNotFound) {
		return nil, &AssetError{Ticker: ticker, Err: fmt.Errorf("%w: %w", ErrAssetNotFound, err)}
	}
	if err != nil {
		return nil, &AssetError{Ticker: ticker, Err: err}
	}
	if quote == nil {
		return nil, &AssetError{Ticker: ticker, Err: ErrAssetNotFound}
	}

	history := HistoryWithin(quote, TrailingMonths)
	res := Simulate(ex.Coalesce(quote.Symbol, ticker), quote.Price(), history.Total, monthlyContribution, years)

	log.Printf("Simulation of %s completed, yield %.4f (time: %v)", ticker, res.AnnualYield, time.Since(start))
	return &res, nil
}

func validateProjectionInput(ticker string, monthlyContribution float64, years int) error {
	if ticker == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}

	if math.IsNaN(monthlyContribution) || math.IsInf(monthlyContribution, 0) || monthlyContribution <= 0 {
		return fmt.Errorf("%w: monthly contribution must be positive, got %v", ErrInvalidInput, monthlyContribution)
	}

	if years <= 0 {
		return fmt.Errorf("%w: years must be positive, got %d", ErrInvalidInput, years)
	}

	return nil
}
