package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brownbull-back/pkg/models"
)

// jitter returns base moved by up to width in either direction, rounded to cents
func (s *Service) jitter(base, width decimal.Decimal) decimal.Decimal {
	offset := decimal.NewFromFloat(2*s.rnd() - 1).Mul(width)
	return base.Add(offset).Round(2)
}

// synthetic builds a snapshot without touching the upstream
func (s *Service) synthetic() models.MarketSnapshot {
	now := s.now()
	n := s.cfg.HistoryPoints
	primary := s.catalog.Primary

	history := make([]models.QuotePoint, n)
	for i := range history {
		history[i] = models.QuotePoint{
			Timestamp: now.Add(-time.Duration(n-1-i) * s.cfg.SyntheticSpacing),
			Price:     s.jitter(primary.Base, primary.Jitter),
		}
	}

	secondary := make(map[string]models.InstrumentSnapshot, len(s.catalog.Secondary))
	for _, inst := range s.catalog.Secondary {
		price := s.jitter(inst.Base, inst.Jitter)
		// Move change by the same amount as price so the implied previous close stays put
		change := inst.Fallback.Change.Add(price.Sub(inst.Base))
		secondary[inst.Key] = models.InstrumentSnapshot{
			Price:         price,
			Change:        change,
			ChangePercent: percentOf(change, price.Sub(change)).Round(4),
		}
	}

	return models.MarketSnapshot{
		PrimaryKey:  primary.Key,
		Primary:     summarize(history),
		Secondary:   secondary,
		Source:      models.SourceSynthetic,
		GeneratedAt: now,
	}
}
