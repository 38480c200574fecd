package handler

import "net/http"

// Update godoc
// @Summary Update book
// @Description Partial update: only the supplied fields change. A new UAH price derives EUR with the current rate.
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Param book body UpdateBookRequest true "Fields to change"
// @Success 200 {object} BookResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /books/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		fail(w, "Update", err, "ups, couldn't update book this time")
		return
	}

	var req UpdateBookRequest
	if err = h.decodeBody(w, r, &req); err != nil {
		fail(w, "Update", err, "ups, couldn't update book this time")
		return
	}

	updated, err := h.service.Update(r.Context(), id, req.input())
	if err != nil {
		fail(w, "Update", err, "ups, couldn't update book this time")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(updated))
}
