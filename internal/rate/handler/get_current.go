package handler

import (
	"errors"
	"net/http"
	"time"

	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const currencyPair = "EUR/UAH"

type GetCurrentResponse struct {
	Rate       decimal.Decimal `json:"rate" swaggertype:"number" example:"44.13"`
	Currency   string          `json:"currency" example:"EUR/UAH"`
	CapturedAt time.Time       `json:"captured_at" example:"2026-10-15T06:00:00Z"`
}

type messageResponse struct {
	Message string `json:"message" example:"No rate available yet"`
}

// GetCurrent godoc
// @Summary Get current rate
// @Description Current EUR/UAH rate used to derive EUR prices
// @Tags Rate
// @Produce json
// @Success 200 {object} GetCurrentResponse
// @Failure 500 {object} errorResponse
// @Router /rate [get]
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	rate, err := h.service.Current(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeJSON(w, http.StatusOK, messageResponse{Message: "No rate available yet"})
			return
		}
		msg := "ups, couldn't get current rate this time"
		logrus.WithError(err).WithField("handler", "GetCurrent").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetCurrentResponse{
		Rate:       rate.Value,
		Currency:   currencyPair,
		CapturedAt: rate.CapturedAt,
	})
}
