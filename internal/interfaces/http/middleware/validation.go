package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	SetupValidator()
}

// SetupValidator registers custom validation tags with gin's binding engine
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("storeslug", func(fl validator.FieldLevel) bool {
			return ValidStoreSlug(fl.Field().String())
		})
	}
}
