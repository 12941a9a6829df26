package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/brownbull-back/internal/contact"
	"github.com/brownbull-back/pkg/logger"
	"github.com/brownbull-back/pkg/models"
)

const msgInvalidBody = "Invalid request body"

// ContactHandler handles contact and complaint form submissions
type ContactHandler struct {
	relay       FormRelay
	maxBodySize int64
	logger      *logrus.Entry
}

// NewContactHandler creates a new contact form handler
func NewContactHandler(relay FormRelay, maxBodySize int64, log *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		relay:       relay,
		maxBodySize: maxBodySize,
		logger:      logger.WithComponent(log, "contact-api"),
	}
}

// RegisterRoutes registers form routes
func (h *ContactHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/contact", h.SubmitContact).Methods("POST")
	router.HandleFunc("/complaints", h.SubmitComplaint).Methods("POST")
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if !h.decode(w, r, &msg) {
		return
	}

	h.respond(w, r, h.relay.Submit(r.Context(), msg))
}

// SubmitComplaint handles POST /api/complaints
func (h *ContactHandler) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var c models.Complaint
	if !h.decode(w, r, &c) {
		return
	}

	h.respond(w, r, h.relay.SubmitComplaint(r.Context(), c))
}

func (h *ContactHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		logger.WithRequest(h.logger, r).WithError(err).Debug("Rejected undecodable form body")
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

func (h *ContactHandler) respond(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	var vErr *contact.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, vErr.Message)
		return
	}

	logger.WithRequest(h.logger, r).WithError(err).Error("Form submission failed")
	writeError(w, http.StatusInternalServerError, contact.MsgDeliveryError)
}
