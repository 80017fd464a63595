// Package handler provides HTTP handlers for the stacklens API.
package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/gorilla/mux"

	"stacklens/internal/wallet"
	"stacklens/pkg/errors"
	"stacklens/pkg/logger"
)

// AnalyticsHandler serves per-address wallet analytics.
type AnalyticsHandler struct {
	service *wallet.Service
	logger  logger.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(service *wallet.Service, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: log}
}

// GetReport produces the analytics report for the address in the path.
func (h *AnalyticsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	report, err := h.service.Report(r.Context(), address)
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrInvalidAddress):
			respondError(w, http.StatusBadRequest, "Invalid Stacks address")
		case stderrors.Is(err, errors.ErrSourceUnavailable):
			h.logger.Error("Transaction history fetch failed", map[string]interface{}{
				"address": address,
				"error":   err.Error(),
			})
			respondError(w, http.StatusBadGateway, "Transaction history source unavailable")
		default:
			h.logger.Error("Report generation failed", map[string]interface{}{
				"address": address,
				"error":   err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to generate report")
		}
		return
	}

	respondJSON(w, http.StatusOK, report)
}
