package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("  Alice  ", "Alice@Example.COM ", "correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.Preferences.DarkMode)
	assert.Equal(t, DefaultTheme, user.Preferences.Theme)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestNewUserValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"empty name", "", "a@example.com", "password123", ErrEmptyName},
		{"empty email", "Alice", "", "password123", ErrEmptyEmail},
		{"bad email no at", "Alice", "example.com", "password123", ErrInvalidEmail},
		{"bad email no domain dot", "Alice", "a@examplecom", "password123", ErrInvalidEmail},
		{"password too short", "Alice", "a@example.com", "short", ErrPasswordTooShort},
		{"password too long", "Alice", "a@example.com", strings.Repeat("x", 73), ErrPasswordTooLong},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewUser(tc.userName, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("password123"))
	assert.ErrorIs(t, ValidatePassword(""), ErrEmptyPassword)
	assert.ErrorIs(t, ValidatePassword("1234567"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", 73)), ErrPasswordTooLong)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bob@example.com", NormalizeEmail("  BOB@Example.Com "))
}

func TestUserValidateWithHashOnly(t *testing.T) {
	t.Parallel()

	// Users loaded from the store carry only the hash.
	user := &User{
		ID:             uuid.New(),
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}
