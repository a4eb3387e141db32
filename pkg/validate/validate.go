// Package validate provides struct-tag validation for request input.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required      field must not be zero/empty
//	email         valid email address
//	max=N         string: max char length | number: max value
//	min=N         string: min char length | number: min value
//
// Example:
//
//	type Checkout struct {
//	    Name    string `json:"name"    validate:"required,max=200"`
//	    Contact string `json:"contact" validate:"max=200"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		for _, rule := range strings.Split(tag, ",") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := strings.TrimSpace(fmt.Sprintf("%v", v.Interface()))
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if raw == "" {
			return "" // pair with required to force presence
		}
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}

	case "max":
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return ""
		}
		if tooLarge(v, raw, n) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}

	case "min":
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return ""
		}
		if tooSmall(v, raw, n) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
	}

	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

func tooLarge(v reflect.Value, raw string, n float64) bool {
	switch v.Kind() {
	case reflect.String:
		return float64(len([]rune(raw))) > n
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()) > n
	case reflect.Float32, reflect.Float64:
		return v.Float() > n
	}
	return false
}

func tooSmall(v reflect.Value, raw string, n float64) bool {
	switch v.Kind() {
	case reflect.String:
		return float64(len([]rune(raw))) < n
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()) < n
	case reflect.Float32, reflect.Float64:
		return v.Float() < n
	}
	return false
}

// jsonFieldName prefers the json tag name over the Go field name so error
// maps line up with the wire shape the client sent.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}
