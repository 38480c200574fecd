package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type FetchResponse struct {
	Rate   decimal.Decimal `json:"rate" swaggertype:"number" example:"44.13"`
	Source string          `json:"source" example:"NBU API"`
}

// Fetch godoc
// @Summary Fetch rate from NBU
// @Description Calls the NBU API and returns the rate without storing it. A failed call still answers 200 with an error field.
// @Tags Rate
// @Produce json
// @Success 200 {object} FetchResponse
// @Router /rate/fetch [post]
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	value, ok := h.service.FetchFromSource(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, errorResponse{Error: "Failed to fetch rate from NBU"})
		return
	}
	writeJSON(w, http.StatusOK, FetchResponse{Rate: value, Source: "NBU API"})
}
