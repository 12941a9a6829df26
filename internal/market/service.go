package market

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/brownbull-back/pkg/config"
	"github.com/brownbull-back/pkg/models"
)

// Service builds market snapshots from the upstream, falling back to
// fixed or generated values when it misbehaves. It keeps no state across calls.
type Service struct {
	source  QuoteSource
	catalog *Catalog
	cfg     *config.MarketConfig
	logger  *logrus.Entry

	now func() time.Time
	rnd func() float64
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRandom replaces the source of uniform [0,1) values used for synthetic prices
func WithRandom(rnd func() float64) Option {
	return func(s *Service) {
		s.rnd = rnd
	}
}

// NewService creates a new market data service
func NewService(source QuoteSource, catalog *Catalog, cfg *config.MarketConfig, logger *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		source:  source,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger.WithField("component", "market-data"),
		now:     time.Now,
		rnd:     rand.Float64,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot fetches a fresh snapshot. It never fails: a primary failure yields a
// synthetic snapshot and a secondary failure yields that instrument's fallback.
func (s *Service) Snapshot(ctx context.Context) models.MarketSnapshot {
	start := s.now()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	var primary models.InstrumentSnapshot
	secondary := make([]models.InstrumentSnapshot, len(s.catalog.Secondary))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		series, err := s.source.GetIntradaySeries(gctx, s.catalog.Primary.Symbol, s.cfg.Interval)
		if err != nil {
			return err
		}
		primary = summarize(reshapeSeries(series, s.cfg.HistoryPoints))
		return nil
	})

	for i, inst := range s.catalog.Secondary {
		g.Go(func() error {
			secondary[i] = s.fetchSecondary(gctx, inst)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Warn("Primary fetch failed, serving synthetic snapshot")
		return s.synthetic()
	}

	snap := models.MarketSnapshot{
		PrimaryKey:  s.catalog.Primary.Key,
		Primary:     primary,
		Secondary:   make(map[string]models.InstrumentSnapshot, len(secondary)),
		Source:      models.SourceLive,
		GeneratedAt: s.now(),
	}
	for i, inst := range s.catalog.Secondary {
		snap.Secondary[inst.Key] = secondary[i]
	}

	s.logger.WithFields(logrus.Fields{
		"points":   len(primary.History),
		"duration": s.now().Sub(start).Milliseconds(),
	}).Debug("Built live market snapshot")

	return snap
}

func (s *Service) fetchSecondary(ctx context.Context, inst Instrument) models.InstrumentSnapshot {
	log := s.logger.WithFields(logrus.Fields{
		"instrument": inst.Key,
		"symbol":     inst.Symbol,
	})

	quote, err := s.source.GetGlobalQuote(ctx, inst.Symbol)
	if err != nil {
		log.WithError(err).Warn("Quote fetch failed, using fallback")
		return fallbackSnapshot(inst)
	}

	snap, ok := parseQuote(quote)
	if !ok {
		log.Warn("Quote is incomplete, using fallback")
		return fallbackSnapshot(inst)
	}

	return snap
}
