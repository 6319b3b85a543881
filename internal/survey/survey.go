package survey

import (
	"net/url"
	"strconv"
	"strings"

	"demo_sales/internal/validation"

	"github.com/go-playground/validator/v10"
)

// Response is one submitted survey form.
type Response struct {
	Name     string `form:"name" json:"name" validate:"required,max=100"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Rating   int    `form:"rating" json:"rating" validate:"gte=1,lte=5"`
	Comments string `form:"comments" json:"comments,omitempty" validate:"max=500"`
}

// Decoder turns submitted form values into a validated Response.
type Decoder struct {
	validate *validator.Validate
}

func NewDecoder() *Decoder {
	return &Decoder{validate: validation.NewValidator()}
}

// Decode returns validation.Errors naming every bad field.
func (d *Decoder) Decode(form url.Values) (Response, error) {
	resp := Response{
		Name:     strings.TrimSpace(form.Get("name")),
		Email:    strings.TrimSpace(form.Get("email")),
		Comments: strings.TrimSpace(form.Get("comments")),
	}

	var (
		errs      validation.Errors
		badRating bool
	)
	if raw := strings.TrimSpace(form.Get("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			badRating = true
			errs = append(errs, &validation.Error{Field: "rating", Message: "must be an integer"})
		}
		resp.Rating = rating
	}

	if err := d.validate.Struct(resp); err != nil {
		translated := validation.Translate(err)
		fieldErrs, ok := translated.(validation.Errors)
		if !ok {
			return Response{}, translated
		}
		for _, fe := range fieldErrs {
			if fe.Field == "rating" && badRating {
				continue
			}
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return Response{}, errs
	}
	return resp, nil
}
