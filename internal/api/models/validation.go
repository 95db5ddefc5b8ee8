package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report JSON field names (e.g. "Sales_Lag1") instead of Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Validate runs the same struct validation gin applies during binding.
func Validate(obj any) error {
	return binding.Validator.ValidateStruct(obj)
}

// BindError maps a request binding/validation error to an HTTP status and error envelope.
func BindError(err error) (int, ErrorResponse) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, NewError(CodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	}
	return http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{
			Code:    CodeValidation,
			Message: "request validation failed",
			Fields:  FieldErrors(err),
		},
	}
}

// FieldErrors converts a binding error into field-level details.
func FieldErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errs := make([]FieldError, 0, len(validationErrors))
		for _, e := range validationErrors {
			errs = append(errs, FieldError{
				Field:   e.Field(),
				Code:    "ERR_" + strings.ToUpper(e.Tag()),
				Message: validationMessage(e),
			})
		}
		return errs
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []FieldError{{
			Field:   field,
			Code:    "ERR_TYPE",
			Message: fmt.Sprintf("%s must be %s, got %s", field, jsonTypeName(typeErr.Type), typeErr.Value),
		}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		msg := "request body must be a JSON object"
		if syntaxErr != nil {
			msg = fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr)
		}
		return []FieldError{{Field: "body", Code: "ERR_INVALID_JSON", Message: msg}}
	}

	return []FieldError{{Field: "body", Code: "ERR_UNKNOWN", Message: err.Error()}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	}
	return t.String()
}
