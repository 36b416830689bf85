package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupFields struct {
	IDNumber      string `validate:"required,id_number"`
	AccountNumber string `validate:"required,account_number"`
	Password      string `validate:"required,login_password"`
}

func valid() signupFields {
	return signupFields{
		IDNumber:      "9001015800087",
		AccountNumber: "1234567",
		Password:      "Str0ngPass!",
	}
}

func TestDomainRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(valid()))

	cases := []struct {
		name    string
		mutate  func(*signupFields)
		message string
	}{
		{"id number too short", func(f *signupFields) { f.IDNumber = "123" }, "ID Number must be exactly 13 digits."},
		{"id number with letters", func(f *signupFields) { f.IDNumber = "900101580008x" }, "ID Number must be exactly 13 digits."},
		{"account number too long", func(f *signupFields) { f.AccountNumber = "12345678" }, "Account Number must be exactly 7 digits."},
		{"password too short", func(f *signupFields) { f.Password = "S1!" }, "Password must be at least 8 characters long and include at least one number and one special character."},
		{"password without special", func(f *signupFields) { f.Password = "Password1" }, "Password must be at least 8 characters long and include at least one number and one special character."},
		{"password with disallowed char", func(f *signupFields) { f.Password = "Passw0rd! " }, "Password must be at least 8 characters long and include at least one number and one special character."},
		{"missing field", func(f *signupFields) { f.AccountNumber = "" }, "All fields are required."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := valid()
			tc.mutate(&f)
			err := v.Struct(f)
			assert.Error(t, err)
			assert.Equal(t, tc.message, Message(err))
		})
	}
}

func TestWrapMatchesSentinel(t *testing.T) {
	v := New()
	f := valid()
	f.Password = "short"

	wrapped := Wrap(v.Struct(f))
	assert.ErrorIs(t, wrapped, ErrInvalid)
	assert.NotErrorIs(t, errors.New("other"), ErrInvalid)
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "Invalid request.", Message(errors.New("not a validator error")))
}
