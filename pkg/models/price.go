package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the ISO-8601 form used for history timestamps on the wire
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// SnapshotSource tells whether a snapshot was built from upstream data or generated
type SnapshotSource string

const (
	SourceLive      SnapshotSource = "live"
	SourceSynthetic SnapshotSource = "synthetic"
)

// QuotePoint represents a single close in an intraday series
type QuotePoint struct {
	Timestamp time.Time
	Price     decimal.Decimal
}

// InstrumentSnapshot represents the summary of one instrument in a snapshot
type InstrumentSnapshot struct {
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	History       []QuotePoint // Only set for the primary instrument, oldest first
}

// MarketSnapshot represents one complete fetch-or-generate cycle
type MarketSnapshot struct {
	PrimaryKey  string
	Primary     InstrumentSnapshot
	Secondary   map[string]InstrumentSnapshot
	Source      SnapshotSource
	GeneratedAt time.Time
}

type pointJSON struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

type instrumentJSON struct {
	Price         float64      `json:"price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	History       *[]pointJSON `json:"history,omitempty"`
}

// MarshalJSON renders the snapshot keyed by instrument, primary included
func (s MarketSnapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]instrumentJSON, len(s.Secondary)+1)

	for key, inst := range s.Secondary {
		out[key] = toInstrumentJSON(inst)
	}

	primary := toInstrumentJSON(s.Primary)
	history := make([]pointJSON, 0, len(s.Primary.History))
	for _, p := range s.Primary.History {
		history = append(history, pointJSON{
			Time:  p.Timestamp.UTC().Format(TimeLayout),
			Price: p.Price.InexactFloat64(),
		})
	}
	primary.History = &history
	out[s.PrimaryKey] = primary

	return json.Marshal(out)
}

func toInstrumentJSON(inst InstrumentSnapshot) instrumentJSON {
	return instrumentJSON{
		Price:         inst.Price.InexactFloat64(),
		Change:        inst.Change.InexactFloat64(),
		ChangePercent: inst.ChangePercent.InexactFloat64(),
	}
}
