package models

import (
	"gonum.org/v1/gonum/floats/scalar"

	ex "pi.service/data/extensions"
	dm "pi.service/data/models"
)

const (
	notAvailable        = "N/A"
	defaultDividendType = "Dividendo"
)

type QuoteResponse struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"nome"`
	CurrentPrice     float64 `json:"precoAtual"`
	DayChangePercent float64 `json:"variacaoPercentualDia"`
	DividendYield    float64 `json:"dividendYieldAtual"`
	PreviousClose    float64 `json:"ultimoFechamento"`
	Volume           float64 `json:"volume"`
	Sector           string  `json:"setor"`
	Logo             string  `json:"logo"`
}

type DividendResponse struct {
	Ticker       string         `json:"ticker"`
	PeriodMonths int            `json:"periodoMeses"`
	Total        float64        `json:"totalNoPeriodo"`
	Dividends    []DividendItem `json:"dividendos"`
}

type DividendItem struct {
	Date          string  `json:"dataCom"`
	ValuePerShare float64 `json:"valorPorAcao"`
	Type          string  `json:"tipo"`
}

// MapQuoteToResponse shapes a quote for the client, the yield is the trailing dividends over price as a percentage
func MapQuoteToResponse(quote *dm.Quote, trailingDividends float64) QuoteResponse {
	price := quote.Price()

	var yield float64
	if price > 0 {
		yield = trailingDividends / price * 100
	}

	return QuoteResponse{
		Ticker:           quote.Symbol,
		Name:             ex.Coalesce(quote.ShortName.ValueOrZero(), quote.Symbol),
		CurrentPrice:     price,
		DayChangePercent: quote.RegularMarketChangePercent.ValueOrZero(),
		DividendYield:    scalar.Round(yield, 2),
		PreviousClose:    quote.RegularMarketPreviousClose.ValueOrZero(),
		Volume:           quote.RegularMarketVolume.ValueOrZero(),
		Sector:           ex.Coalesce(quote.Sector.ValueOrZero(), notAvailable),
		Logo:             quote.LogoURL.ValueOrZero(),
	}
}

func MapDividendsToResponse(ticker string, months int, total float64, items []*dm.CashDividend) DividendResponse {
	return DividendResponse{
		Ticker:       ticker,
		PeriodMonths: months,
		Total:        scalar.Round(total, 2),
		Dividends:    ex.Map(items, MapDividendItem),
	}
}

// MapDividendItem shows the approval date, falling back to the payment date
func MapDividendItem(d *dm.CashDividend) DividendItem {
	return DividendItem{
		Date:          ex.Coalesce(d.ApprovedOn.ValueOrZero(), d.PaymentDate.ValueOrZero(), notAvailable),
		ValuePerShare: d.Rate.ValueOrZero(),
		Type:          ex.Coalesce(d.Label.ValueOrZero(), defaultDividendType),
	}
}
