package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator builds the shared validator, reporting fields under their
// wire names so validation errors match what clients actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// decodeStrict parses raw JSON into dst, rejecting any key that is not a
// declared field. Partial-update paths rely on this to keep stray client
// fields out of the store.
func decodeStrict(raw []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{Fields: []string{typeErr.Field}}
		}
		if strings.Contains(err.Error(), "unknown field") {
			return &ValidationError{Fields: []string{unknownFieldName(err)}}
		}
		return &ValidationError{Fields: []string{err.Error()}}
	}
	return nil
}

func unknownFieldName(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, `"`); i >= 0 {
		if j := strings.LastIndex(msg, `"`); j > i {
			return "unknown field " + msg[i:j+1]
		}
	}
	return msg
}
