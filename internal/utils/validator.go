package utils

import (
	"errors"
	"os"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/truemail-rb/truemail-go"

	"fittrack-server/internal/schemas"
)

// Validator bundles struct validation, payload sanitation and optional
// MX-level email verification behind a single instance.
type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool
	policy      *bluemonday.Policy
}

var (
	instance      *Validator
	once          sync.Once
	configuration *truemail.Configuration
)

var errInvalidPayload = errors.New("payload must be a pointer to a struct")

// GetValidator returns the shared validator instance.
// Email verification is only active when EMAIL_VERIFICATION is set to "mx".
func GetValidator() *Validator {
	once.Do(func() {
		verify := func(string) bool { return true }
		if os.Getenv("EMAIL_VERIFICATION") == "mx" {
			configuration, _ = truemail.NewConfiguration(truemail.ConfigurationAttr{
				VerifierEmail:         "team@fittrack-server.tech",
				ValidationTypeDefault: "mx",
				SmtpFailFast:          true,
			})
			verify = verifyEmailOverMx
		}

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: verify,
			policy:      bluemonday.StrictPolicy(),
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

func verifyEmailOverMx(email string) bool {
	return truemail.IsValid(email, configuration)
}

func registerCustomValidators(v *validator.Validate) {
	err := v.RegisterValidation("activity_type", activityTypeValidation)
	if err != nil {
		return
	}
}

func activityTypeValidation(fl validator.FieldLevel) bool {
	return schemas.ActivityType(fl.Field().String()).Valid()
}

// SanitizeData strips markup from every string field of the payload struct,
// including pointer fields and nested structs.
func (v *Validator) SanitizeData(data interface{}) error {
	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return errInvalidPayload
	}

	v.sanitizeStruct(val.Elem())
	return nil
}

func (v *Validator) sanitizeStruct(s reflect.Value) {
	for i := 0; i < s.NumField(); i++ {
		field := s.Field(i)

		switch field.Kind() {
		case reflect.String:
			if field.CanSet() {
				field.SetString(v.policy.Sanitize(field.String()))
			}
		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.String && field.Elem().CanSet() {
				field.Elem().SetString(v.policy.Sanitize(field.Elem().String()))
			}
		case reflect.Struct:
			v.sanitizeStruct(field)
		}
	}
}
