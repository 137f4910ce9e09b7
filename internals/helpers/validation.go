// file: internals/helpers/validation.go
package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/helpers/datefmt"
)

/* ===============================
   Validator instance
=================================*/

var (
	validate     *validator.Validate
	validateOnce sync.Once

	emailShapeRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneDigitsRe = regexp.MustCompile(`^[0-9]{9,12}$`)
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Validator mengembalikan instance tunggal dengan rule kustom terdaftar.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// pakai nama json supaya map error cocok dengan field di UI
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("dmy_date", func(fl validator.FieldLevel) bool {
			return datefmt.IsValidDMY(fl.Field().String())
		})
		_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			_, ok := NormalizeGender(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
			return emailShapeRe.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
			return phoneDigitsRe.MatchString(strings.TrimSpace(fl.Field().String()))
		})

		validate = v
	})
	return validate
}

// NormalizeGender: "Nam"/"male" → male, "Nữ"/"female" → female (input di-NFC dulu,
// jadi "Nữ" dengan combining mark tetap cocok).
func NormalizeGender(s string) (Gender, bool) {
	v := strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
	switch v {
	case "nam", string(Male):
		return Male, true
	case norm.NFC.String("nữ"), string(Female):
		return Female, true
	default:
		return "", false
	}
}

// GenderLabel: kebalikan NormalizeGender untuk tampilan.
func GenderLabel(g string) string {
	switch Gender(strings.ToLower(strings.TrimSpace(g))) {
	case Male:
		return "Nam"
	case Female:
		return "Nữ"
	default:
		return ""
	}
}

/* ===============================
   Field errors
=================================*/

// ValidateStruct menjalankan validator dan mengembalikan map field → pesan (nil kalau valid).
func ValidateStruct(v any) map[string]string {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"_": constants.FieldMsgInvalid}
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return constants.FieldMsgRequired
	case "dmy_date":
		return constants.FieldMsgDateOfBirth
	case "gender":
		return constants.FieldMsgGender
	case "email_shape":
		return constants.FieldMsgEmail
	case "phone_digits":
		return constants.FieldMsgPhone
	case "gt":
		return constants.FieldMsgPositive
	case "min":
		return constants.FieldMsgMin(fe.Param())
	case "max":
		return constants.FieldMsgMax(fe.Param())
	case "eqfield":
		return constants.MsgPasswordMismatch
	default:
		return constants.FieldMsgInvalid
	}
}

// ValidationResult membungkus map error jadi Result validation_failed.
func ValidationResult[T any](fields map[string]string, message string) Result[T] {
	if message == "" {
		message = constants.MsgValidationFailed
	}
	return FailFields[T](message, fields)
}
