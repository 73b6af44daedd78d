package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Read the same struct tags gin binding does, so ValidateStruct and
	// ShouldBindJSON enforce identical rules
	validate.SetTagName("binding")
	registerCustomTags(validate)
}

// RegisterGinValidators installs the domain tags on gin's binding engine.
// Call once at startup before routes are served.
func RegisterGinValidators() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomTags(engine)
	}
}

func registerCustomTags(v *validator.Validate) {
	_ = v.RegisterValidation("donation_category", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "food", "blood", "clothes", "books", "other":
			return true
		}
		return false
	})

	_ = v.RegisterValidation("donation_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "pending", "approved", "rejected":
			return true
		}
		return false
	})

	_ = v.RegisterValidation("withdrawal_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "pending", "processed", "rejected":
			return true
		}
		return false
	})

	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "mobile", "web":
			return true
		}
		return false
	})
}

// ValidateStruct validates a struct and returns a ValidationError on failure
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(errs)
		}
		return err
	}
	return nil
}
