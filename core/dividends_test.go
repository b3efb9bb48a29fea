package core

import (
	"testing"
	"time"

	"github.com/guregu/null/v6"

	ex "pi.service/data/extensions"
	m "pi.service/data/models"
)

var dividendsNow = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func dividendOn(paymentDate string, rate float64) *m.CashDividend {
	return &m.CashDividend{
		PaymentDate: null.StringFrom(paymentDate),
		Rate:        null.FloatFrom(rate),
	}
}

func Test_HistoryWithin_CutoffIsInclusive(t *testing.T) {
	q := &m.Quote{Symbol: "TAEE11", DividendsData: &m.DividendData{CashDividends: []*m.CashDividend{
		dividendOn("2025-10-19", 1),
		dividendOn("2025-10-18", 2),
		dividendOn("2025-10-17", 4),
		dividendOn("not a date", 8),
	}}}

	h := historyWithinAt(q, 12, dividendsNow)

	ex.AssertAreEqual(t, "total", 3.0, h.Total)
	ex.AssertAreEqual(t, "items", 2, len(h.Items))
	ex.AssertAreEqual(t, "first kept", "2025-10-19", h.Items[0].PaymentDate.ValueOrZero())
	ex.AssertAreEqual(t, "second kept", "2025-10-18", h.Items[1].PaymentDate.ValueOrZero())
}

func Test_HistoryWithin_UsesCalendarMonths(t *testing.T) {
	q := &m.Quote{DividendsData: &m.DividendData{CashDividends: []*m.CashDividend{
		dividendOn("2026-07-18T00:00:00.000Z", 0.5),
		dividendOn("2026-07-17T23:59:59Z", 0.25),
	}}}

	h := historyWithinAt(q, 3, dividendsNow)

	ex.AssertAreEqual(t, "total", 0.5, h.Total)
}

func Test_HistoryWithin_FallsBackToApprovalDate(t *testing.T) {
	q := &m.Quote{DividendsData: &m.DividendData{CashDividends: []*m.CashDividend{
		{ApprovedOn: null.StringFrom("2026-05-02 10:00:00"), Rate: null.FloatFrom(0.3)},
		{PaymentDate: null.StringFrom("2020-01-01"), ApprovedOn: null.StringFrom("2026-05-02"), Rate: null.FloatFrom(9)},
		{Rate: null.FloatFrom(7)},
	}}}

	h := historyWithinAt(q, 12, dividendsNow)

	ex.AssertAreEqual(t, "items", 1, len(h.Items))
	ex.AssertAreEqual(t, "total", 0.3, h.Total)
}

func Test_HistoryWithin_MissingRateCountsAsZero(t *testing.T) {
	q := &m.Quote{DividendsData: &m.DividendData{CashDividends: []*m.CashDividend{
		{PaymentDate: null.StringFrom("2026-09-01")},
		dividendOn("2026-08-01", 1.25),
		nil,
	}}}

	h := historyWithinAt(q, 12, dividendsNow)

	ex.AssertAreEqual(t, "items", 2, len(h.Items))
	ex.AssertAreEqual(t, "total", 1.25, h.Total)
}

func Test_HistoryWithin_AbsentDividends(t *testing.T) {
	h := historyWithinAt(&m.Quote{Symbol: "MGLU3"}, 12, dividendsNow)
	ex.AssertAreEqual(t, "total", 0.0, h.Total)
	ex.AssertAreEqual(t, "items", 0, len(h.Items))

	h = HistoryWithin(nil, 12)
	ex.AssertAreEqual(t, "nil quote total", 0.0, h.Total)
}
