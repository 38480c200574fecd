package handler

import "net/http"

// Get godoc
// @Summary Get book
// @Tags Books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} BookResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /books/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		fail(w, "Get", err, "ups, couldn't get book this time")
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		fail(w, "Get", err, "ups, couldn't get book this time")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(b))
}
