package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookcatalog/internal/book"
	"bookcatalog/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	basePath     = "/api/v1/books"
	maxBodyBytes = 1 << 20
)

type bookService interface {
	Create(ctx context.Context, in book.CreateInput) (domain.Book, error)
	Get(ctx context.Context, id int64) (domain.Book, error)
	List(ctx context.Context, req domain.PageRequest) (domain.Page, error)
	Update(ctx context.Context, id int64, in book.UpdateInput) (domain.Book, error)
	Delete(ctx context.Context, id int64) error
}

type requestValidator interface {
	Struct(s any) error
}

type Handler struct {
	service   bookService
	validator requestValidator
}

func NewBookHandler(service bookService, validator requestValidator) *Handler {
	return &Handler{service: service, validator: validator}
}

type errorResponse struct {
	Error string `json:"error" example:"book not found"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// fail maps domain errors to statuses. Anything unexpected is logged and answered with internalMsg.
func fail(w http.ResponseWriter, handler string, err error, internalMsg string) {
	var verr *book.ValidationError
	switch {
	case errors.As(err, &verr):
		logrus.WithField("handler", handler).Warn(verr.Error())
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrInvalidPage):
		logrus.WithField("handler", handler).Warn(err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBookNotFound):
		writeError(w, http.StatusNotFound, domain.ErrBookNotFound.Error())
	case errors.Is(err, domain.ErrISBNConflict):
		logrus.WithField("handler", handler).Warn(err.Error())
		writeError(w, http.StatusConflict, domain.ErrISBNConflict.Error())
	default:
		logrus.WithError(err).WithField("handler", handler).Error(internalMsg)
		writeError(w, http.StatusInternalServerError, internalMsg)
	}
}

// decodeBody reads a single JSON object, rejecting unknown fields, then validates it.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &book.ValidationError{Fields: []book.FieldError{{Field: "body", Message: fmt.Sprintf("invalid request body: %v", err)}}}
	}
	if dec.More() {
		return &book.ValidationError{Fields: []book.FieldError{{Field: "body", Message: "invalid request body: unexpected data after JSON object"}}}
	}
	return h.validator.Struct(dst)
}

func bookID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &book.ValidationError{Fields: []book.FieldError{{Field: "id", Message: fmt.Sprintf("invalid book id %q", raw)}}}
	}
	return id, nil
}
