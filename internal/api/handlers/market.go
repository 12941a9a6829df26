package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/brownbull-back/pkg/logger"
)

// SourceHeader tells the caller whether the body holds live or generated values
const SourceHeader = "X-Market-Data-Source"

// MarketHandler handles market data API requests
type MarketHandler struct {
	provider SnapshotProvider
	logger   *logrus.Entry
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(provider SnapshotProvider, log *logrus.Logger) *MarketHandler {
	return &MarketHandler{
		provider: provider,
		logger:   logger.WithComponent(log, "market-api"),
	}
}

// RegisterRoutes registers market data routes
func (h *MarketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/market-data", h.GetMarketData).Methods("GET")
}

// GetMarketData handles GET /api/market-data. It always answers 200.
func (h *MarketHandler) GetMarketData(w http.ResponseWriter, r *http.Request) {
	snap := h.provider.Snapshot(r.Context())

	logger.WithRequest(h.logger, r).WithFields(logrus.Fields{
		"source": snap.Source,
		"points": len(snap.Primary.History),
	}).Debug("Serving market snapshot")

	w.Header().Set(SourceHeader, string(snap.Source))
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, snap)
}
