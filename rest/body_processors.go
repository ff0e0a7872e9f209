package rest

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// bodyStructFieldsCache caches field processing information by struct type
// to avoid expensive reflection operations on repeated calls
var bodyStructFieldsCache sync.Map

// fieldProcessorFunc defines the signature for field processing functions
type fieldProcessorFunc func(reflect.Value)

// cachedStructField contains pre-computed information about struct fields
// that need processing
type cachedStructField struct {
	index     int
	normalize []fieldProcessorFunc
	sanitize  []fieldProcessorFunc
}

var operators = map[string]map[string]fieldProcessorFunc{
	"normalize": {
		"trim":      trimNormalizer,
		"lowercase": lowercaseNormalizer,
		"uppercase": uppercaseNormalizer,
		"unaccent":  unaccentNormalizer,
		"unicode":   unicodeNormalizer,
	},
	"sanitize": {
		"html":         htmlSanitizer,
		"alphanumeric": alphanumericSanitizer,
		"numeric":      numericSanitizer,
	},
}

var htmlPolicy = bluemonday.UGCPolicy()

func parseTag(tag string) []string {
	parts := strings.Split(tag, ",")
	var result []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func buildStructFields(t reflect.Type) []cachedStructField {
	var fields []cachedStructField

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}

		normalizeTag := sf.Tag.Get("normalize")
		sanitizeTag := sf.Tag.Get("sanitize")
		if normalizeTag == "" && sanitizeTag == "" {
			continue
		}

		fs := cachedStructField{index: i}

		for _, tag := range parseTag(normalizeTag) {
			if fn, ok := operators["normalize"][tag]; ok {
				fs.normalize = append(fs.normalize, fn)
			}
		}

		for _, tag := range parseTag(sanitizeTag) {
			if fn, ok := operators["sanitize"][tag]; ok {
				fs.sanitize = append(fs.sanitize, fn)
			}
		}

		fields = append(fields, fs)
	}

	return fields
}

// processStruct applies the field processors registered under the given
// operator ("normalize" or "sanitize") to the tagged fields of a struct.
// The struct must be passed as a pointer to allow modifications. Field
// processing information is cached per struct type.
func processStruct(v any, operator string) error {
	if v == nil {
		return nil
	}

	if _, ok := operators[operator]; !ok {
		return errors.New("invalid operator: " + operator)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("expected a non-nil pointer to a struct")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errors.New("expected a struct, got: " + rv.Kind().String())
	}

	rt := rv.Type()

	var fields []cachedStructField
	if cached, ok := bodyStructFieldsCache.Load(rt); ok {
		fields = cached.([]cachedStructField)
	} else {
		fields = buildStructFields(rt)
		bodyStructFieldsCache.Store(rt, fields)
	}

	for _, fs := range fields {
		fv := rv.Field(fs.index)
		if !fv.IsValid() || !fv.CanSet() {
			continue
		}

		var funcs []fieldProcessorFunc
		switch operator {
		case "normalize":
			funcs = fs.normalize
		case "sanitize":
			funcs = fs.sanitize
		}

		for _, fn := range funcs {
			fn(fv)
		}
	}

	return nil
}

// processStringValue applies a transformation function to string values
func processStringValue(v reflect.Value, transform func(string) string) {
	switch v.Kind() {
	case reflect.String:
		v.SetString(transform(v.String()))
	case reflect.Ptr:
		if !v.IsNil() && v.Elem().Kind() == reflect.String {
			v.Elem().SetString(transform(v.Elem().String()))
		}
	}
}

// htmlSanitizer applies HTML sanitization using bluemonday
func htmlSanitizer(v reflect.Value) {
	processStringValue(v, htmlPolicy.Sanitize)
}

// alphanumericSanitizer removes all non-alphanumeric characters from a string
func alphanumericSanitizer(v reflect.Value) {
	processStringValue(v, func(s string) string {
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		return b.String()
	})
}

// numericSanitizer removes all non-digit characters from a string
func numericSanitizer(v reflect.Value) {
	processStringValue(v, func(s string) string {
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			if unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		return b.String()
	})
}

// trimNormalizer removes leading and trailing whitespace from strings
func trimNormalizer(v reflect.Value) {
	processStringValue(v, strings.TrimSpace)
}

// lowercaseNormalizer converts strings to lowercase
func lowercaseNormalizer(v reflect.Value) {
	processStringValue(v, strings.ToLower)
}

// uppercaseNormalizer converts strings to uppercase
func uppercaseNormalizer(v reflect.Value) {
	processStringValue(v, strings.ToUpper)
}

// unaccentNormalizer removes diacritics from strings
func unaccentNormalizer(v reflect.Value) {
	processStringValue(v, removeDiacritics)
}

// unicodeNormalizer normalizes Unicode strings to NFC form.
func unicodeNormalizer(v reflect.Value) {
	processStringValue(v, norm.NFC.String)
}

func removeDiacritics(s string) string {
	t := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
