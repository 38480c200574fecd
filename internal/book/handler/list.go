package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"bookcatalog/internal/domain"
)

const totalCountHeader = "X-Total-Count"

// List godoc
// @Summary List books
// @Description Pages through books that are not deleted. The total count is returned in X-Total-Count.
// @Tags Books
// @Produce json
// @Param page query int false "Zero based page number" default(0)
// @Param size query int false "Page size, at most 100" default(20)
// @Param sort query string false "field[,asc|desc] where field is id, isbn, title, author, publication_year or price" default(id,asc)
// @Success 200 {array} BookResponse
// @Header 200 {integer} X-Total-Count "Number of books across all pages"
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /books [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		fail(w, "List", err, "ups, couldn't list books this time")
		return
	}

	page, err := h.service.List(r.Context(), req)
	if err != nil {
		fail(w, "List", err, "ups, couldn't list books this time")
		return
	}

	out := make([]BookResponse, 0, len(page.Books))
	for _, b := range page.Books {
		out = append(out, toResponse(b))
	}
	w.Header().Set(totalCountHeader, strconv.FormatInt(page.Total, 10))
	writeJSON(w, http.StatusOK, out)
}

func pageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	req := domain.DefaultPageRequest()

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return domain.PageRequest{}, fmt.Errorf("%w: page must be an integer", domain.ErrInvalidPage)
		}
		req.Page = page
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return domain.PageRequest{}, fmt.Errorf("%w: size must be an integer", domain.ErrInvalidPage)
		}
		req.Size = size
	}

	sort, err := domain.ParseSort(q.Get("sort"))
	if err != nil {
		return domain.PageRequest{}, err
	}
	req.Sort = sort
	return req, req.Validate()
}
