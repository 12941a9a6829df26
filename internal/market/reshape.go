package market

import (
	"sort"
	"strings"
	"time"
	_ "time/tzdata" // upstream reports zones such as US/Eastern

	"github.com/shopspring/decimal"

	"github.com/brownbull-back/internal/external"
	"github.com/brownbull-back/pkg/models"
)

var (
	hundred = decimal.NewFromInt(100)

	// Alpha Vantage omits seconds on some intervals
	seriesLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04"}
)

// reshapeSeries turns an intraday series into at most limit points, oldest first.
// Entries whose timestamp or close does not parse are dropped.
func reshapeSeries(series *external.IntradaySeries, limit int) []models.QuotePoint {
	if series == nil || len(series.Bars) == 0 {
		return []models.QuotePoint{}
	}

	loc, err := time.LoadLocation(series.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	points := make([]models.QuotePoint, 0, len(series.Bars))
	for stamp, bar := range series.Bars {
		ts, ok := parseSeriesTime(stamp, loc)
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(bar.Close))
		if err != nil {
			continue
		}
		points = append(points, models.QuotePoint{Timestamp: ts, Price: price})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}

	return points
}

func parseSeriesTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range seriesLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// summarize derives price and change from the first and last points of history
func summarize(history []models.QuotePoint) models.InstrumentSnapshot {
	snap := models.InstrumentSnapshot{
		Price:         decimal.Zero,
		Change:        decimal.Zero,
		ChangePercent: decimal.Zero,
		History:       history,
	}
	if len(history) == 0 {
		return snap
	}

	first := history[0].Price
	last := history[len(history)-1].Price

	snap.Price = last
	snap.Change = last.Sub(first)
	snap.ChangePercent = percentOf(snap.Change, first)

	return snap
}

// percentOf returns change as a percentage of baseline, 0 for a zero baseline
func percentOf(change, baseline decimal.Decimal) decimal.Decimal {
	if baseline.IsZero() {
		return decimal.Zero
	}
	return change.Div(baseline).Mul(hundred)
}

// parseQuote reads a global quote; ok is false if any field is missing or malformed
func parseQuote(q *external.GlobalQuote) (models.InstrumentSnapshot, bool) {
	if q == nil {
		return models.InstrumentSnapshot{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(q.Price))
	if err != nil {
		return models.InstrumentSnapshot{}, false
	}
	change, err := decimal.NewFromString(strings.TrimSpace(q.Change))
	if err != nil {
		return models.InstrumentSnapshot{}, false
	}
	pct, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(q.ChangePercent), "%"))
	if err != nil {
		return models.InstrumentSnapshot{}, false
	}

	return models.InstrumentSnapshot{Price: price, Change: change, ChangePercent: pct}, true
}

func fallbackSnapshot(inst Instrument) models.InstrumentSnapshot {
	return models.InstrumentSnapshot{
		Price:         inst.Fallback.Price,
		Change:        inst.Fallback.Change,
		ChangePercent: inst.Fallback.ChangePercent,
	}
}
