// Package validator decodes and validates JSON request bodies with
// go-playground/validator. Field names in error maps are the JSON names.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/httpx"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Prices and unit costs compare as float64 so gte/lte apply to them.
	v.RegisterCustomTypeFunc(func(rv reflect.Value) any {
		d, ok := rv.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	return v
}

// Validate runs the struct's validate tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing JSON field to a message. Errors
// that are not validation errors yield an empty map.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid", "uuid4":
		return "must be a UUID"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "ne":
		return "must not be " + fe.Param()
	case "min", "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be %s %s characters", boundWord(fe.Tag()), fe.Param())
		}
		return fmt.Sprintf("must be %s %s", boundWord(fe.Tag()), fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}

// ValidateRequest decodes the JSON body into T and validates it. On failure
// it writes 400 for an unreadable body, 413 past the body limit, or 422 with per-field messages, and
// returns false.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status, msg := decodeFailure(err)
		httpx.JSONError(w, status, msg)
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}

func decodeFailure(err error) (int, string) {
	var (
		typeErr *json.UnmarshalTypeError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, io.EOF):
		return http.StatusBadRequest, "Request body is required"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s must be %s", typeErr.Field, typeErr.Type.Kind())
	default:
		return http.StatusBadRequest, "Invalid JSON"
	}
}
