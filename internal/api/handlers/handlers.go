package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brownbull-back/pkg/models"
)

// SnapshotProvider builds market snapshots.
//
//go:generate mockgen -package=handlers -destination=mock_handlers_test.go -source=handlers.go
type SnapshotProvider interface {
	Snapshot(ctx context.Context) models.MarketSnapshot
}

// FormRelay forwards site form submissions
type FormRelay interface {
	Submit(ctx context.Context, msg models.ContactMessage) error
	SubmitComplaint(ctx context.Context, c models.Complaint) error
}

// Helper methods for HTTP responses
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
