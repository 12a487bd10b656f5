package user

import (
	"fmt"
	"regexp"

	"github.com/VitaminP8/articlery/internal/model"
)

type UserStorage interface {
	RegisterUser(username, email, password string) (*model.User, error)
	LoginUser(username, password string) (string, error) // JWT
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegistration проверяет поля регистрации до обращения к хранилищу.
// Требования к паролю: минимум 8 символов, строчная, заглавная, цифра и спецсимвол.
func ValidateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: all fields are required", model.ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", model.ErrValidation)
	}
	if !isStrongPassword(password) {
		return fmt.Errorf("%w: password must be at least 8 characters long and include uppercase, lowercase, number, and special character", model.ErrValidation)
	}
	return nil
}

func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}
