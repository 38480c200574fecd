package handler

import (
	"fmt"
	"net/http"
)

// Create godoc
// @Summary Create book
// @Description Creates a book. The EUR price is derived from UAH with the current rate, or left null when no rate is known.
// @Tags Books
// @Accept json
// @Produce json
// @Param book body CreateBookRequest true "Book"
// @Success 201 {object} BookResponse
// @Header 201 {string} Location "/api/v1/books/{id}"
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /books [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		fail(w, "Create", err, "ups, couldn't create book this time")
		return
	}

	created, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		fail(w, "Create", err, "ups, couldn't create book this time")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", basePath, created.ID))
	writeJSON(w, http.StatusCreated, toResponse(created))
}
