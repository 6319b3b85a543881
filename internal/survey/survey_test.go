package survey

import (
	"errors"
	"net/url"
	"testing"

	"demo_sales/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	d := NewDecoder()

	resp, err := d.Decode(url.Values{
		"name":     {" Ada "},
		"email":    {"ada@example.com"},
		"rating":   {"5"},
		"comments": {"great demo"},
	})
	require.NoError(t, err)
	assert.Equal(t, Response{Name: "Ada", Email: "ada@example.com", Rating: 5, Comments: "great demo"}, resp)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		fields []string
	}{
		{"empty form", url.Values{}, []string{"name", "email", "rating"}},
		{"bad email", url.Values{"name": {"Ada"}, "email": {"nope"}, "rating": {"3"}}, []string{"email"}},
		{"rating out of range", url.Values{"name": {"Ada"}, "email": {"a@b.co"}, "rating": {"6"}}, []string{"rating"}},
		{"rating not a number", url.Values{"name": {"Ada"}, "email": {"a@b.co"}, "rating": {"five"}}, []string{"rating"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder().Decode(tt.form)

			var errs validation.Errors
			require.True(t, errors.As(err, &errs))
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)
		})
	}
}
