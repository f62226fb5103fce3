package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var slotTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):00$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Calendar date in YYYY-MM-DD. Dates are treated as opaque day labels,
	// no timezone conversion anywhere in the booking flow.
	validate.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	// Whole-hour slot start time, HH:00 in 24-hour format.
	validate.RegisterValidation("slot_time", func(fl validator.FieldLevel) bool {
		return slotTimeRe.MatchString(fl.Field().String())
	})

	// Studio category validation
	validate.RegisterValidation("studio_category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		validCategories := []string{"photo", "video", "music", "dance", "podcast", "other", ""}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})

	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"customer", "owner", "admin"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too small (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too large (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "calendar_date":
			errors[field] = "Invalid date, expected YYYY-MM-DD"
		case "slot_time":
			errors[field] = "Invalid slot time, expected HH:00 in 24-hour format"
		case "studio_category":
			errors[field] = "Invalid category. Must be: photo, video, music, dance, podcast, or other"
		case "role":
			errors[field] = "Invalid role. Must be: customer, owner, or admin"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
