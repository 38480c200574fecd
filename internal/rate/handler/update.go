package handler

import (
	"errors"
	"net/http"

	"bookcatalog/internal/domain"
	"bookcatalog/internal/rate"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UpdateResponse struct {
	Message      string          `json:"message" example:"Rate updated successfully"`
	Rate         decimal.Decimal `json:"rate" swaggertype:"number" example:"41.5"`
	Recalculated int             `json:"recalculated" example:"12"`
}

// Update godoc
// @Summary Set rate
// @Description Stores the given rate and recalculates EUR prices of all books
// @Tags Rate
// @Produce json
// @Param rate query number true "UAH per 1 EUR"
// @Success 200 {object} UpdateResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rate/update [post]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("rate")
	value, err := rate.ParseRate(raw)
	if err != nil {
		logrus.WithField("handler", "Update").WithField("rate", raw).Warn(err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	recalculated, err := h.service.Update(r.Context(), value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		msg := "ups, couldn't update rate this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Update", "rate": value.String(), "recalculated": recalculated}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, UpdateResponse{
		Message:      "Rate updated successfully",
		Rate:         value,
		Recalculated: recalculated,
	})
}
