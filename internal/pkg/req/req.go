/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates strict JSON decoding and struct validation so that malformed input is
rejected before any business logic runs.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"roomchat/internal/pkg/errs"
)

// MaxJSONBodySize caps the size of a JSON request body (64 KB).
const MaxJSONBodySize int64 = 64 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// trimmed rejects values with leading or trailing whitespace. Names are used as
	// keys exactly as sent, so a padded name would never be found again.
	_ = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == strings.TrimSpace(value)
	})

	return v
}

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// Validate runs the `validate` struct tags of dst.
// It returns the names of the failing fields next to the error, so callers can pick
// an endpoint-specific error id.
func Validate(dst any) ([]string, error) {
	err := validate.Struct(dst)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field())
	}
	return fields, err
}
