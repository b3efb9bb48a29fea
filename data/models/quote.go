package models

import (
	"github.com/guregu/null/v6"
)

// Quote is a single ticker's latest market and dividend state as served by the quote provider.
// Anything the provider may leave out is a null type, read it with ValueOrZero.
type Quote struct {
	Symbol                     string        `json:"symbol"`
	ShortName                  null.String   `json:"shortName"`
	LongName                   null.String   `json:"longName"`
	Currency                   null.String   `json:"currency"`
	RegularMarketPrice         null.Float    `json:"regularMarketPrice"`
	RegularMarketOpen          null.Float    `json:"regularMarketOpen"`
	RegularMarketDayHigh       null.Float    `json:"regularMarketDayHigh"`
	RegularMarketDayLow        null.Float    `json:"regularMarketDayLow"`
	RegularMarketChange        null.Float    `json:"regularMarketChange"`
	RegularMarketChangePercent null.Float    `json:"regularMarketChangePercent"`
	RegularMarketPreviousClose null.Float    `json:"regularMarketPreviousClose"`
	RegularMarketVolume        null.Float    `json:"regularMarketVolume"`
	RegularMarketTime          null.String   `json:"regularMarketTime"`
	MarketCap                  null.Float    `json:"marketCap"`
	Sector                     null.String   `json:"sector"`
	LogoURL                    null.String   `json:"logourl"`
	DividendsData              *DividendData `json:"dividendsData,omitempty"`
}

type DividendData struct {
	CashDividends []*CashDividend `json:"cashDividends"`
}

// CashDividend is one historical payment, rate is currency per share
type CashDividend struct {
	AssetIssued null.String `json:"assetIssued"`
	PaymentDate null.String `json:"paymentDate"`
	ApprovedOn  null.String `json:"approvedOn"`
	RelatedTo   null.String `json:"relatedTo"`
	Rate        null.Float  `json:"rate"`
	Label       null.String `json:"label"`
}

// Price is the current market price, zero when the provider did not send one
func (q *Quote) Price() float64 {
	if q == nil {
		return 0
	}
	return q.RegularMarketPrice.ValueOrZero()
}

// CashDividends is empty for quotes fetched without the dividends module
func (q *Quote) CashDividends() []*CashDividend {
	if q == nil || q.DividendsData == nil {
		return nil
	}
	return q.DividendsData.CashDividends
}

// EffectiveDate prefers the payment date and falls back to the approval date
func (d *CashDividend) EffectiveDate() string {
	if d.PaymentDate.ValueOrZero() != "" {
		return d.PaymentDate.String
	}
	return d.ApprovedOn.ValueOrZero()
}
