package handler

import (
	"bookcatalog/internal/book"
	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
)

type priceRequest struct {
	UAH *decimal.Decimal `json:"uah" validate:"required,gt=0" swaggertype:"number" example:"100.00"`
	// EUR is always derived from UAH; a value sent by the client is ignored.
	EUR *decimal.Decimal `json:"eur" swaggertype:"number"`
}

type CreateBookRequest struct {
	ISBN            string        `json:"isbn" validate:"required,isbn" example:"1234567890123"`
	Title           string        `json:"title" validate:"required,min=1,max=255" example:"Kobzar"`
	Author          *string       `json:"author" validate:"omitempty,max=255" example:"Taras Shevchenko"`
	PublicationYear *int          `json:"publication_year" validate:"omitempty,gte=0,lte=9999" example:"1840"`
	Price           *priceRequest `json:"price" validate:"required"`
}

func (req CreateBookRequest) input() book.CreateInput {
	return book.CreateInput{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		PriceUAH:        *req.Price.UAH,
	}
}

type updatePriceRequest struct {
	UAH *decimal.Decimal `json:"uah" validate:"omitempty,gt=0" swaggertype:"number" example:"300.00"`
	EUR *decimal.Decimal `json:"eur" swaggertype:"number"`
}

// UpdateBookRequest is a partial update: omitted fields keep their stored values.
type UpdateBookRequest struct {
	ISBN            *string             `json:"isbn" validate:"omitempty,isbn" example:"1234567890123"`
	Title           *string             `json:"title" validate:"omitempty,min=1,max=255" example:"Kobzar"`
	Author          *string             `json:"author" validate:"omitempty,max=255" example:"Taras Shevchenko"`
	PublicationYear *int                `json:"publication_year" validate:"omitempty,gte=0,lte=9999" example:"1840"`
	Price           *updatePriceRequest `json:"price"`
}

func (req UpdateBookRequest) input() book.UpdateInput {
	in := book.UpdateInput{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
	}
	if req.Price != nil {
		in.PriceUAH = req.Price.UAH
	}
	return in
}

type PriceResponse struct {
	UAH decimal.NullDecimal `json:"uah" swaggertype:"number" example:"100.00"`
	EUR decimal.NullDecimal `json:"eur" swaggertype:"number" example:"2.41"`
}

type BookResponse struct {
	ID              int64         `json:"id" example:"1"`
	ISBN            string        `json:"isbn" example:"1234567890123"`
	Title           string        `json:"title" example:"Kobzar"`
	Author          *string       `json:"author" example:"Taras Shevchenko"`
	PublicationYear *int          `json:"publication_year" example:"1840"`
	Price           PriceResponse `json:"price"`
}

func toResponse(b domain.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Price:           PriceResponse{UAH: b.Price.UAH, EUR: b.Price.EUR},
	}
}
