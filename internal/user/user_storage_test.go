package user

import (
	"testing"

	"github.com/VitaminP8/articlery/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	t.Run("Valid registration", func(t *testing.T) {
		err := ValidateRegistration("alice", "alice@example.com", "Password123!")
		assert.NoError(t, err)
	})

	t.Run("Missing fields", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRegistration("", "alice@example.com", "Password123!"), model.ErrValidation)
		assert.ErrorIs(t, ValidateRegistration("alice", "", "Password123!"), model.ErrValidation)
		assert.ErrorIs(t, ValidateRegistration("alice", "alice@example.com", ""), model.ErrValidation)
	})

	t.Run("Invalid email format", func(t *testing.T) {
		for _, email := range []string{"no-at-sign", "two@@example.com", "spaces in@example.com", "missing@tld"} {
			err := ValidateRegistration("alice", email, "Password123!")
			assert.ErrorIs(t, err, model.ErrValidation, "email %q должен быть отклонен", email)
		}
	})

	t.Run("Weak passwords", func(t *testing.T) {
		weak := []string{
			"Sh0rt!",       // меньше 8 символов
			"password123!", // нет заглавной
			"PASSWORD123!", // нет строчной
			"Password!!!!", // нет цифры
			"Password1234", // нет спецсимвола
		}
		for _, password := range weak {
			err := ValidateRegistration("alice", "alice@example.com", password)
			assert.ErrorIs(t, err, model.ErrValidation, "password %q должен быть отклонен", password)
		}
	})
}
