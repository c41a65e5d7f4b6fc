package service

import (
	apperrors "crm-backend/internal/errors"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses a raw phone number and returns its E.164 form.
// Numbers must carry a country code (leading +); anything unparseable or
// invalid is rejected.
func NormalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return "", apperrors.ErrPhoneNumberNotValid
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", apperrors.ErrPhoneNumberNotValid
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
