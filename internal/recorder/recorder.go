package recorder

import "time"

// Fetch outcome statuses.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Fetch sources.
const (
	SourceNews   = "news"
	SourceMarket = "market"
)

// FetchEvent describes the outcome of one outbound fetch. It carries counts
// and timings only, never the fetched headlines or prices.
type FetchEvent struct {
	RequestID string
	Ticker    string
	Source    string // SourceNews or SourceMarket
	Provider  string
	Status    string // StatusOK or StatusUnavailable
	Items     int
	Duration  time.Duration
	Error     string
	At        time.Time
}

// Recorder persists fetch diagnostics for later analysis.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	Prune(before time.Time) (int64, error)
	Close() error
}
