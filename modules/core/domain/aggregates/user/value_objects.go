package user

import (
	"errors"
	"strings"

	"github.com/iota-uz/sitecms/pkg/constants"
)

var ErrInvalidEmail = errors.New("invalid email")

// Email is a lower-cased, validated address.
type Email string

func NewEmail(s string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if err := constants.Validate.Var(normalized, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return Email(normalized), nil
}

func (e Email) String() string {
	return string(e)
}
