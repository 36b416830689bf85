package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is the sentinel all validation failures match, so handlers can
// classify them with errors.Is without losing the user-facing message.
var ErrInvalid = errors.New("invalid input")

// Error is a user-facing validation failure message.
type Error string

func (e Error) Error() string { return string(e) }

// Is makes every Error match ErrInvalid.
func (e Error) Is(target error) bool { return target == ErrInvalid }

// Wrap converts a validator error into an Error carrying the first failed
// rule's message.
func Wrap(err error) error {
	return Error(Message(err))
}

var (
	idNumberRe      = regexp.MustCompile(`^\d{13}$`)
	accountNumberRe = regexp.MustCompile(`^\d{7}$`)
	// Password policy mirrors the one enforced in the customer UI: at least
	// 8 characters, at least one digit and one special character, drawn from
	// a restricted alphabet.
	passwordCharsRe   = regexp.MustCompile(`^[A-Za-z\d!@#$%^&*]{8,}$`)
	passwordDigitRe   = regexp.MustCompile(`\d`)
	passwordSpecialRe = regexp.MustCompile(`[!@#$%^&*]`)
)

// New builds a validator with the domain rules registered.
func New() *validator.Validate {
	v := validator.New()
	// Registration errors only occur for blank tags or nil funcs.
	_ = v.RegisterValidation("id_number", func(fl validator.FieldLevel) bool {
		return idNumberRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("account_number", func(fl validator.FieldLevel) bool {
		return accountNumberRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("login_password", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return passwordCharsRe.MatchString(p) &&
			passwordDigitRe.MatchString(p) &&
			passwordSpecialRe.MatchString(p)
	})
	return v
}

// Message renders a user-facing message for the first failed rule, so API
// responses stay stable regardless of how many fields are wrong.
func Message(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Invalid request."
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "All fields are required."
	case "id_number":
		return "ID Number must be exactly 13 digits."
	case "account_number":
		return "Account Number must be exactly 7 digits."
	case "login_password":
		return "Password must be at least 8 characters long and include at least one number and one special character."
	case "min":
		return fe.Field() + " is too short."
	case "gt":
		return fe.Field() + " must be positive."
	default:
		return strings.TrimSpace(fe.Field() + " is invalid.")
	}
}
