package core

import (
	"gonum.org/v1/gonum/floats/scalar"

	ex "pi.service/data/extensions"
	sm "pi.service/models"
)

// response values are rounded to two places, everything before this point keeps full precision
const responsePrecision = 2

func MapProjectionToResponse(p *ProjectionResult) sm.PassiveIncomeResponse {
	return sm.PassiveIncomeResponse{
		Ticker:              p.Ticker,
		MonthlyContribution: scalar.Round(p.MonthlyContribution, responsePrecision),
		Years:               p.Years,
		CurrentPrice:        p.CurrentPrice,
		AnnualYield:         scalar.Round(p.AnnualYield*100, responsePrecision),
		EstimatedShares:     p.EstimatedShares,
		FinalValue:          scalar.Round(p.FinalValue, responsePrecision),
		MonthlyIncome:       scalar.Round(p.MonthlyIncome, responsePrecision),
		MagicNumber:         p.MagicNumber,
	}
}

func MapPortfolioToResponse(p *PortfolioResult) sm.PortfolioResponse {
	return sm.PortfolioResponse{
		TotalContribution:  p.TotalContribution,
		Years:              p.Years,
		WeightedYield:      scalar.Round(p.WeightedYield*100, responsePrecision),
		TotalMonthlyIncome: scalar.Round(p.TotalMonthlyIncome, responsePrecision),
		TotalFinalValue:    scalar.Round(p.TotalFinalValue, responsePrecision),
		Assets:             ex.Map(p.Assets, MapProjectionToResponse),
	}
}

func MapPortfolioRequest(req sm.PortfolioRequest) PortfolioRequest {
	return PortfolioRequest{
		Assets: ex.Map(req.Assets, func(a sm.PortfolioItem) PortfolioAsset {
			return PortfolioAsset{Ticker: a.Ticker, Weight: a.Weight}
		}),
		TotalContribution: req.TotalContribution,
		Years:             req.Years,
	}
}
