package service

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// Column limits of the users and plan tables. bcrypt reads at most 72 bytes.
const (
	maxUsernameLen = 80
	maxPasswordLen = 72
	maxLabelLen    = 50
)

type field struct {
	name  string
	value string
}

// requireFields reports the first empty field in declaration order.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if err := validation.Validate(strings.TrimSpace(f.value), validation.Required); err != nil {
			return invalid("Missing required field: " + f.name)
		}
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Length(3, 120), is.EmailFormat); err != nil {
		return "", invalid("Invalid email address")
	}
	return email, nil
}

// normalizeMobile returns nil for an empty number and the E.164 form otherwise.
func normalizeMobile(raw, region string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil, invalid("Invalid mobile number")
	}
	out := phonenumbers.Format(num, phonenumbers.E164)
	return &out, nil
}

// maxChars rejects values longer than limit characters.
func maxChars(name, value string, limit int) error {
	if err := validation.Validate(value, validation.RuneLength(0, limit)); err != nil {
		return invalid(fmt.Sprintf("%s must be at most %d characters", name, limit))
	}
	return nil
}

// checkPassword bounds the password in bytes, which is what bcrypt counts.
func checkPassword(password string) error {
	if err := validation.Validate(password, validation.Length(0, maxPasswordLen)); err != nil {
		return invalid(fmt.Sprintf("Password must be at most %d bytes", maxPasswordLen))
	}
	return nil
}
