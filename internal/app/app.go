package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brownbull-back/internal/api"
	"github.com/brownbull-back/internal/contact"
	"github.com/brownbull-back/internal/external"
	"github.com/brownbull-back/internal/mailer"
	"github.com/brownbull-back/internal/market"
	"github.com/brownbull-back/pkg/config"
)

const shutdownTimeout = 5 * time.Second

// App represents the main application
type App struct {
	cfg    *config.Config
	logger *logrus.Logger
	wg     sync.WaitGroup

	// Core components
	alphaVantage *external.AlphaVantageClient
	marketSvc    *market.Service
	sender       contact.Sender
	relay        *contact.Relay
	apiServer    *api.Server
}

// New creates a new application instance
func New(cfg *config.Config, logger *logrus.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Initialize initializes all application components
func (a *App) Initialize() error {
	if err := a.initializeMarket(); err != nil {
		return fmt.Errorf("failed to initialize market data: %w", err)
	}

	a.initializeContact()

	a.apiServer = api.NewServer(a.cfg, a.logger, a.marketSvc, a.relay, a.serviceStatus())

	return nil
}

// Start starts the API server in the background. Errors other than a
// clean shutdown are delivered on the returned channel.
func (a *App) Start() <-chan error {
	errCh := make(chan error, 1)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.apiServer.Start(); err != nil {
			a.logger.WithError(err).Error("API server error")
			errCh <- err
		}
	}()

	return errCh
}

// Stop gracefully stops the application
func (a *App) Stop() error {
	a.logger.Info("Stopping application...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.WithError(err).Error("Error stopping API server")
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("Application stopped successfully")
	case <-ctx.Done():
		a.logger.Warn("Timeout waiting for goroutines to finish")
	}

	return nil
}

// MarketService returns the market data service
func (a *App) MarketService() *market.Service {
	return a.marketSvc
}

// GetConfig returns the application configuration
func (a *App) GetConfig() *config.Config {
	return a.cfg
}

// GetLogger returns the application logger
func (a *App) GetLogger() *logrus.Logger {
	return a.logger
}

func (a *App) initializeMarket() error {
	catalog, err := market.LoadCatalog(a.cfg.Market.CatalogFile)
	if err != nil {
		return err
	}

	a.alphaVantage = external.NewAlphaVantageClient(&a.cfg.AlphaVantage, a.logger)
	if a.alphaVantage.UsingDemoKey() {
		a.logger.Warn("ALPHA_VANTAGE_API_KEY not set, using the public demo key")
	}

	a.marketSvc = market.NewService(a.alphaVantage, catalog, &a.cfg.Market, a.logger)

	a.logger.WithFields(logrus.Fields{
		"primary":     catalog.Primary.Symbol,
		"secondaries": len(catalog.Secondary),
		"interval":    a.cfg.Market.Interval,
	}).Info("Market data provider initialized")

	return nil
}

func (a *App) initializeContact() {
	if a.cfg.SMTPEnabled() {
		a.sender = mailer.NewSMTPMailer(&a.cfg.SMTP, a.cfg.Mail.From, a.logger)
		a.logger.WithFields(logrus.Fields{
			"host": a.cfg.SMTP.Host,
			"port": a.cfg.SMTP.Port,
		}).Info("SMTP transport configured")
	} else {
		a.sender = mailer.Disabled{}
		a.logger.Warn("SMTP_HOST not set, contact and complaint submissions will fail")
	}

	a.relay = contact.NewRelay(a.sender, a.cfg.Mail.To, a.logger)
}

func (a *App) serviceStatus() api.ServiceStatus {
	status := api.ServiceStatus{SMTP: "disabled", AlphaVantage: "configured"}
	if a.cfg.SMTPEnabled() {
		status.SMTP = "configured"
	}
	if a.alphaVantage.UsingDemoKey() {
		status.AlphaVantage = "demo-key"
	}
	return status
}
