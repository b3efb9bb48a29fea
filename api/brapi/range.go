package brapi

// Range specifies how much price history the provider returns with a quote.
type Range uint8

const (
	RangeOneDay Range = iota
	RangeOneYear
)

func (r Range) Value() string {
	switch r {
	case RangeOneDay:
		return "1d"
	case RangeOneYear:
		return "1y"
	default:
		return ""
	}
}
