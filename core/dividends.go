package core

import (
	"time"

	"gonum.org/v1/gonum/floats"

	ex "pi.service/data/extensions"
	m "pi.service/data/models"
)

const TrailingMonths = 12

var dividendDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateOnly,
	time.DateTime,
}

type DividendHistory struct {
	Total float64
	Items []*m.CashDividend
}

// HistoryWithin sums every cash dividend dated inside the last months calendar months.
// Events with no usable date are left out.
func HistoryWithin(quote *m.Quote, months int) DividendHistory {
	return historyWithinAt(quote, months, time.Now())
}

func historyWithinAt(quote *m.Quote, months int, now time.Time) DividendHistory {
	cutoff := now.AddDate(0, -months, 0)

	f := func(d *m.CashDividend) bool {
		date, ok := parseDividendDate(d.EffectiveDate())
		return ok && !date.Before(cutoff)
	}
	items := ex.FilterMultiplePtr(quote.CashDividends(), f)

	rates := ex.Map(items, func(d *m.CashDividend) float64 { return d.Rate.ValueOrZero() })

	return DividendHistory{
		Total: floats.Sum(rates),
		Items: items,
	}
}

func parseDividendDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dividendDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
