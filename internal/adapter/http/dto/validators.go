package dto

import (
	"html"
	"math/big"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"glin-wallet/internal/core/domain"
	"glin-wallet/pkg/ss58"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	planckRe = regexp.MustCompile(`^[0-9]{1,39}$`)

	// maxPlanck is the largest u128.
	maxPlanck = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("ss58", validateSS58)
		_ = v.RegisterValidation("planck", validatePlanck)
		_ = v.RegisterValidation("network_id", validateNetworkID)
		_ = v.RegisterValidation("theme", validateTheme)
		_ = v.RegisterValidation("safe_url", validateSafeURL)
		_ = v.RegisterValidation("ws_url", validateWSURL)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// validateSS58 accepts any well-formed 32-byte account address.
func validateSS58(fl validator.FieldLevel) bool {
	_, _, err := ss58.Decode(fl.Field().String())
	return err == nil
}

// validatePlanck accepts a non-negative base-10 integer that fits in a u128.
func validatePlanck(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !planckRe.MatchString(s) {
		return false
	}
	v, ok := new(big.Int).SetString(s, 10)
	return ok && v.Cmp(maxPlanck) <= 0
}

func validateNetworkID(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.NetworkMainnet, domain.NetworkTestnet, domain.NetworkLocalhost, domain.NetworkCustom:
		return true
	}
	return false
}

func validateTheme(fl validator.FieldLevel) bool {
	return domain.Theme(fl.Field().String()).Valid()
}

// validateSafeURL accepts http, https and data: image URLs.
func validateSafeURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true // optional field; use "required" tag to enforce presence
	}
	if strings.HasPrefix(raw, "data:image/") {
		return true
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// validateWSURL accepts ws and wss node endpoints.
func validateWSURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "ws" || u.Scheme == "wss"
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field of a struct pointer that is tagged sanitize:"html". Secrets are
// never tagged and pass through untouched.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() || rt.Field(i).Tag.Get("sanitize") != "html" {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
