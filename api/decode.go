package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"demo_sales/internal/imaging"
	"demo_sales/internal/logs"
	"demo_sales/internal/sales"
	"demo_sales/internal/survey"
	"demo_sales/internal/utils"
	"demo_sales/internal/validation"

	"go.uber.org/zap/zapcore"
)

// maxJSONBody bounds request bodies read by decodeCreateSale.
const maxJSONBody = 1 << 20

// multipartOverhead is allowed on top of the image limit for the multipart envelope.
const multipartOverhead = 64 << 10

// decodeCreateSale reads the JSON body of POST /sales/. Type mismatches are
// reported as validation errors on the offending field.
func decodeCreateSale(r *http.Request) (sales.SaleInput, error) {
	var in sales.SaleInput
	if r.Body == nil {
		return in, &validation.Error{Message: "request body required"}
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return in, &validation.Error{Field: typeErr.Field, Message: "must be " + describeKind(typeErr.Type)}
		}
		if errors.Is(err, io.EOF) {
			return in, &validation.Error{Message: "request body required"}
		}
		return in, &validation.Error{Message: "invalid JSON: " + err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return in, &validation.Error{Message: "invalid JSON: unexpected data after the sale object"}
	}
	return in, nil
}

func describeKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	default:
		return "of type " + t.String()
	}
}

// decodeSurvey parses a url-encoded or multipart survey form.
func decodeSurvey(r *http.Request, d *survey.Decoder) (survey.Response, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(1 << 20)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return survey.Response{}, &validation.Error{Message: "invalid form: " + err.Error()}
	}
	return d.Decode(r.PostForm)
}

// decodeImageUpload returns the image payload: the "file" part of a multipart
// form, or the raw body for any other content type.
func decodeImageUpload(w http.ResponseWriter, r *http.Request, limit int64) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if r.Body == nil {
			return nil, &validation.Error{Field: "file", Message: "field required"}
		}
		return r.Body, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return nil, imaging.ErrTooLarge
		case errors.Is(err, http.ErrMissingFile):
			return nil, &validation.Error{Field: "file", Message: "field required"}
		default:
			return nil, &validation.Error{Message: "invalid form: " + err.Error()}
		}
	}
	return file, nil
}

type logQuery struct {
	Start time.Time
	End   time.Time
	Level zapcore.Level
}

// decodeLogQuery reads start, end and level from the query string. A missing
// level is reported the same way as an unknown one.
func decodeLogQuery(r *http.Request, now time.Time) (logQuery, error) {
	q := r.URL.Query()

	level, err := logs.ParseLevel(q.Get("level"))
	if err != nil {
		return logQuery{}, err
	}

	lq := logQuery{Level: level, End: now}
	var errs validation.Errors
	if raw := strings.TrimSpace(q.Get("start")); raw != "" {
		if lq.Start, err = utils.ParseTimestamp(raw); err != nil {
			errs = append(errs, &validation.Error{Field: "start", Message: "must be an ISO-8601 timestamp"})
		}
	}
	if raw := strings.TrimSpace(q.Get("end")); raw != "" {
		if lq.End, err = utils.ParseTimestamp(raw); err != nil {
			errs = append(errs, &validation.Error{Field: "end", Message: "must be an ISO-8601 timestamp"})
		}
	}
	if len(errs) == 0 && !lq.Start.IsZero() && lq.End.Before(lq.Start) {
		errs = append(errs, &validation.Error{Field: "end", Message: fmt.Sprintf("must not be before start (%s)", lq.Start.Format(time.RFC3339))})
	}
	if len(errs) > 0 {
		return logQuery{}, errs
	}
	return lq, nil
}
