// Package validation holds the field rules and per-screen schemas of the
// console forms.
//
// Rules are pure: given the field value and the whole draft they return an
// error message, or "" when the value is acceptable. They never touch the
// network. Constraints are checked with go-playground/validator tags.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule checks one field. values is the complete draft, so a rule may read
// sibling fields.
type Rule func(value string, values map[string]string) string

// tagEmail asks only for the text@text.text shape. The stock "email" tag
// follows RFC 5322.
const tagEmail = "email_shape"

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(tagEmail, func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// tagMessages are used when a rule carries no message of its own.
var tagMessages = map[string]string{
	"required": "This field is required",
	"min":      "Value is too short",
	"eqfield":  "Values do not match",
	tagEmail:   "Enter a valid email address",
}

// message turns a validator result into a form message. msg overrides the
// per-tag default.
func message(err error, msg string) string {
	if err == nil {
		return ""
	}
	if msg != "" {
		return msg
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if m, ok := tagMessages[verrs[0].Tag()]; ok {
			return m
		}
	}
	return "Invalid value"
}

// Required fails on a blank value (after trimming).
func Required(label string) Rule {
	return RequiredMsg(label + " is required")
}

// RequiredMsg is Required with a custom message.
func RequiredMsg(msg string) Rule {
	return func(value string, _ map[string]string) string {
		return message(validate.Var(strings.TrimSpace(value), "required"), msg)
	}
}

// MinLength fails when value is shorter than n characters.
func MinLength(n int, msg string) Rule {
	tag := fmt.Sprintf("min=%d", n)
	return func(value string, _ map[string]string) string {
		return message(validate.Var(value, tag), msg)
	}
}

// Email checks the text@text.text shape.
func Email() Rule {
	return func(value string, _ map[string]string) string {
		return message(validate.Var(value, tagEmail), "")
	}
}

// Matches fails unless value equals the sibling field.
func Matches(field, msg string) Rule {
	return func(value string, values map[string]string) string {
		return message(validate.VarWithValue(value, values[field], "eqfield"), msg)
	}
}

// PasswordStrength scores a password from 0 to 4. It drives the strength
// meter only.
func PasswordStrength(pw string) int {
	n := len([]rune(pw))
	score := 0
	switch {
	case n >= 12:
		score = 2
	case n >= 8:
		score = 1
	}

	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case !(r >= 'a' && r <= 'z'):
			special = true
		}
	}
	for _, ok := range []bool{upper, digit, special} {
		if ok {
			score++
		}
	}
	return min(score, 4)
}

// StrengthLabel names a PasswordStrength score.
func StrengthLabel(score int) string {
	switch score {
	case 0:
		return "Too weak"
	case 1:
		return "Weak"
	case 2:
		return "Fair"
	case 3:
		return "Good"
	default:
		return "Strong"
	}
}
