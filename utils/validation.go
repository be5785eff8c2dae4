package utils

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"blorkfield-site/models"
)

// FieldErrors maps "<product id>.<field>" to a human readable message
type FieldErrors map[string]string

// ValidationError is returned when one or more products break a catalog invariant
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid catalog: " + strings.Join(parts, "; ")
}

var validate = newValidator()

// newValidator reports fields by their json name so errors read like the catalog file
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("weburl", isWebURL); err != nil {
		panic(err)
	}
	return v
}

// isWebURL accepts absolute http(s) URLs with a host, made only of characters
// html/template leaves unescaped in an href.
func isWebURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	for i := 0; i < len(raw); i++ {
		if !isHrefByte(raw[i]) {
			return false
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && u.Opaque == ""
}

func isHrefByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!#$&*+,/:;=?@[]%", c) >= 0
}

// ValidateProducts checks every product of a catalog and the uniqueness of ids.
// It returns a *ValidationError listing all problems, or nil.
func ValidateProducts(products []models.Product) error {
	out := FieldErrors{}
	seen := make(map[string]int, len(products))

	for i, p := range products {
		key := productKey(p, i)

		if err := validate.Struct(p); err != nil {
			var ve validator.ValidationErrors
			if !errors.As(err, &ve) {
				return fmt.Errorf("validate product %s: %w", key, err)
			}
			for _, fe := range ve {
				out[key+"."+fe.Field()] = messageForTag(fe.Tag())
			}
		}

		if p.ID == "" {
			continue
		}
		if first, dup := seen[p.ID]; dup {
			out[fmt.Sprintf("#%d.id", i)] = fmt.Sprintf("duplicate id %q (first used by #%d)", p.ID, first)
			continue
		}
		seen[p.ID] = i
	}

	if len(out) > 0 {
		return &ValidationError{Fields: out}
	}
	return nil
}

func productKey(p models.Product, index int) string {
	if p.ID != "" {
		return p.ID
	}
	return "#" + strconv.Itoa(index)
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "weburl":
		return "must be an absolute URL"
	default:
		return "is invalid"
	}
}
