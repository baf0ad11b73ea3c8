// Package validate provides struct-tag validation for request inputs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required        field must not be zero/empty (a nil pointer is empty)
//	nullable        if empty, skip all remaining rules for this field
//	email           valid email address
//	alpha_dash      letters, digits, hyphens, underscores
//	numeric         any number
//	min=N           string: min char length | number: min value | slice: min items
//	max=N           string: max char length | number: max value | slice: max items
//	gte=N / lte=N   number bounds
//	between=lo,hi   number or string length between lo and hi (inclusive)
//	in=a,b,c        value must be one of the listed items; for slices, every element
//	unique          slice elements must be distinct
//	confirmed       value must equal a sibling field named <field>_confirmation
//
// Pointer fields are validated through their target, so a PATCH input can
// use *string with "nullable,max=32".
//
//	type CarInput struct {
//	    Year  int      `json:"year"  validate:"required,gte=1886,lte=2100"`
//	    Body  string   `json:"body"  validate:"nullable,in=any,sedan,suv"`
//	    Fuel  []string `json:"fuel"  validate:"nullable,min=1,max=2,unique,in=petrol,diesel"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errs
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)
		value := rv.Field(i)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		// validate through pointers; a nil pointer only fails "required"
		for value.Kind() == reflect.Ptr && !value.IsNil() {
			value = value.Elem()
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value, rv); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value, parent reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")

	if key == "required" {
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return ""
	}

	raw := fmt.Sprintf("%v", v.Interface())
	isList := v.Kind() == reflect.Slice || v.Kind() == reflect.Array

	switch key {
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "alpha_dash":
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", field)
			}
		}
	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "min":
		n := mustParseFloat(param)
		switch {
		case isList:
			if float64(v.Len()) < n {
				return fmt.Sprintf("The %s must have at least %s items.", field, param)
			}
		case isNumericKind(v):
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		default:
			if float64(len([]rune(raw))) < n {
				return fmt.Sprintf("The %s must be at least %s characters.", field, param)
			}
		}
	case "max":
		n := mustParseFloat(param)
		switch {
		case isList:
			if float64(v.Len()) > n {
				return fmt.Sprintf("The %s must not have more than %s items.", field, param)
			}
		case isNumericKind(v):
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		default:
			if float64(len([]rune(raw))) > n {
				return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
			}
		}
	case "gte":
		if toFloat(v) < mustParseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lte":
		if toFloat(v) > mustParseFloat(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return ""
		}
		min, max := mustParseFloat(lo), mustParseFloat(hi)
		if isNumericKind(v) {
			if f := toFloat(v); f < min || f > max {
				return fmt.Sprintf("The %s must be between %s and %s.", field, lo, hi)
			}
		} else if l := float64(len([]rune(raw))); l < min || l > max {
			return fmt.Sprintf("The %s must be between %s and %s characters.", field, lo, hi)
		}

	case "in":
		allowed := strings.Split(param, ",")
		if isList {
			for i := 0; i < v.Len(); i++ {
				if !contains(allowed, fmt.Sprintf("%v", v.Index(i).Interface())) {
					return fmt.Sprintf("The selected %s is invalid.", field)
				}
			}
			return ""
		}
		if !contains(allowed, raw) {
			return fmt.Sprintf("The selected %s is invalid.", field)
		}
	case "unique":
		if !isList {
			return ""
		}
		seen := make(map[string]bool, v.Len())
		for i := 0; i < v.Len(); i++ {
			s := fmt.Sprintf("%v", v.Index(i).Interface())
			if seen[s] {
				return fmt.Sprintf("The %s field has a duplicate value.", field)
			}
			seen[s] = true
		}

	case "confirmed":
		confirmVal := findSibling(parent, field+"_confirmation")
		if confirmVal == nil || fmt.Sprintf("%v", confirmVal.Interface()) != raw {
			return fmt.Sprintf("The %s confirmation does not match.", field)
		}
	}

	return ""
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false // false is a valid boolean value, not empty
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if strings.TrimSpace(item) == s {
			return true
		}
	}
	return false
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

var knownRules = []string{
	"required", "nullable", "email", "alpha_dash", "numeric", "unique",
	"confirmed", "min=", "max=", "gte=", "lte=", "between=", "in=",
}

// splitRules splits a tag on commas, keeping the values of in= and
// between= together: "required,in=a,b,max=3" → ["required","in=a,b","max=3"].
func splitRules(tag string) []string {
	var rules []string
	parts := strings.Split(tag, ",")
	for i := 0; i < len(parts); i++ {
		rule := strings.TrimSpace(parts[i])
		if strings.HasPrefix(rule, "in=") || strings.HasPrefix(rule, "between=") {
			for i+1 < len(parts) && !isRuleStart(parts[i+1]) {
				i++
				rule += "," + strings.TrimSpace(parts[i])
			}
		}
		if rule != "" {
			rules = append(rules, rule)
		}
	}
	return rules
}

func isRuleStart(s string) bool {
	s = strings.TrimSpace(s)
	for _, k := range knownRules {
		if strings.HasSuffix(k, "=") {
			if strings.HasPrefix(s, k) {
				return true
			}
		} else if s == k {
			return true
		}
	}
	return false
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if r == target {
			return true
		}
	}
	return false
}

func findSibling(parent reflect.Value, jsonName string) *reflect.Value {
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == jsonName {
			v := parent.Field(i)
			return &v
		}
	}
	return nil
}
