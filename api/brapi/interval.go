package brapi

// Interval specifies the granularity of the price history returned with a quote.
type Interval uint8

const (
	IntervalOneDay Interval = iota
)

func (i Interval) Value() string {
	switch i {
	case IntervalOneDay:
		return "1d"
	default:
		return ""
	}
}
