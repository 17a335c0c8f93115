package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout     = "2006-01-02"
	ShowTimeLayout = "2006-01-02T15:04"
	MinAge         = 18
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nonDigit     = regexp.MustCompile(`\D`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	mustRegister(v, "emailaddr", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	mustRegister(v, "strongpwd", func(fl validator.FieldLevel) bool {
		return HasMixedCase(fl.Field().String())
	})
	mustRegister(v, "adult", func(fl validator.FieldLevel) bool {
		birth, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return AgeInYears(birth, time.Now()) >= MinAge
	})
	mustRegister(v, "showtime", func(fl validator.FieldLevel) bool {
		_, err := ParseShowTime(fl.Field().String())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone checks the digits of s against an E.164 shape; separators are ignored.
func IsPhone(s string) bool {
	return phonePattern.MatchString(nonDigit.ReplaceAllString(s, ""))
}

// NormalizePhone keeps digits only and prefixes '+'.
func NormalizePhone(s string) string {
	digits := nonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return ""
	}
	return "+" + digits
}

func HasMixedCase(s string) bool {
	var lower, upper bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return lower && upper
}

// AgeInYears compares calendar years only, the same way the registration form does.
func AgeInYears(birth, now time.Time) int {
	return now.Year() - birth.Year()
}

// ParseShowTime accepts the datetime-local form value or RFC 3339.
func ParseShowTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(ShowTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func ValidateStruct(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email", "emailaddr":
		return "Invalid email format"
	case "phone":
		return "Invalid phone number"
	case "strongpwd":
		return "Must contain upper and lower case letters"
	case "adult":
		return fmt.Sprintf("Must be at least %d years old", MinAge)
	case "showtime":
		return "Must be a date and time like 2024-12-20T18:00"
	case "eqfield":
		return fmt.Sprintf("Must match %s", err.Param())
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("Must match format %s", err.Param())
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// FormatValidationErrors joins field errors in a stable order.
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, len(fields))
	for i, field := range fields {
		msgs[i] = fmt.Sprintf("%s: %s", field, errors[field])
	}
	return strings.Join(msgs, "; ")
}
