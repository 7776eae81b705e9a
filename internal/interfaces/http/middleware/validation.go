package middleware

import (
	"reflect"
	"strings"

	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers the custom binding tags. Call once at startup,
// before the first request is bound.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Validation errors report the json field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("suscard", func(fl validator.FieldLevel) bool {
		return patient.ValidateSUSCardNumber(fl.Field().String()) == nil
	})
}
