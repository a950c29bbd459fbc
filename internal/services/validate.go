package services

import (
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/store"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator. Field names in errors are the
// JSON wire names, matching what the UI sends.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
			return fld.Name
		})

		_ = validate.RegisterValidation("http_url", func(fl validator.FieldLevel) bool {
			raw := strings.TrimSpace(fl.Field().String())
			if raw == "" {
				return false
			}
			u, err := url.Parse(raw)
			if err != nil {
				return false
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false
			}
			return strings.TrimSpace(u.Host) != ""
		})
	})
	return validate
}

// validateInput runs struct validation and converts the first failure into
// the store's error taxonomy.
func validateInput(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	if ferrs, ok := err.(validator.ValidationErrors); ok && len(ferrs) > 0 {
		fe := ferrs[0]
		reason := "failed " + fe.Tag() + " validation"
		if fe.Tag() == "required" {
			reason = "is required"
		}
		return &store.ValidationError{Field: fe.Field(), Reason: reason}
	}
	return err
}
