package handler

import "net/http"

// Delete godoc
// @Summary Delete book
// @Description Soft delete. Deleting an already deleted book succeeds.
// @Tags Books
// @Param id path int true "Book id"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /books/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		fail(w, "Delete", err, "ups, couldn't delete book this time")
		return
	}

	if err = h.service.Delete(r.Context(), id); err != nil {
		fail(w, "Delete", err, "ups, couldn't delete book this time")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
