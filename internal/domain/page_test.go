package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	cases := map[string]Sort{
		"":                          {Field: SortByID},
		"title":                     {Field: SortByTitle},
		"title,asc":                 {Field: SortByTitle},
		"price,desc":                {Field: SortByPrice, Desc: true},
		" publication_year , DESC ": {Field: SortByPublicationYear, Desc: true},
		"author,":                   {Field: SortByAuthor},
	}
	for raw, want := range cases {
		got, err := ParseSort(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
}

func TestParseSort_Invalid(t *testing.T) {
	for _, raw := range []string{"deleted", "title,up", "title,asc,id", "price_uah"} {
		_, err := ParseSort(raw)
		require.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}

func TestPageRequest_Validate(t *testing.T) {
	require.NoError(t, DefaultPageRequest().Validate())
	require.NoError(t, PageRequest{Page: 3, Size: MaxPageSize}.Validate())

	require.ErrorIs(t, PageRequest{Page: -1, Size: 10}.Validate(), ErrInvalidPage)
	require.ErrorIs(t, PageRequest{Size: 0}.Validate(), ErrInvalidPage)
	require.ErrorIs(t, PageRequest{Size: MaxPageSize + 1}.Validate(), ErrInvalidPage)
}

func TestPageRequest_Offset(t *testing.T) {
	require.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	require.Equal(t, 60, PageRequest{Page: 3, Size: 20}.Offset())
}
