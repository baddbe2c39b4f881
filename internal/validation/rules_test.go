package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLettersOnly(t *testing.T) {
	for _, name := range []string{"Juan", "María José", "José Luis", "Ana María", "Ñoño", "José Ángel"} {
		require.NoError(t, LettersOnly(name), name)
	}

	for _, name := range []string{"Juan123", "María2", "José-Luis", "Ana@María", "123", "Juan_Carlos", ""} {
		err := LettersOnly(name)
		require.Error(t, err, name)
		require.ErrorIs(t, err, ErrLettersOnly)
	}
}

func TestPhone(t *testing.T) {
	require.NoError(t, Phone("1234567890"))
	require.NoError(t, Phone("123456789012345"))

	for _, phone := range []string{"123456789", "1234567890123456", "123-456-7890", "+541112345678", "", "12345678９0"} {
		err := Phone(phone)
		require.ErrorIs(t, err, ErrPhoneDigits, phone)
	}
}

func TestEmailDomain(t *testing.T) {
	require.NoError(t, EmailDomain("a@gmail.com"))
	require.NoError(t, EmailDomain("usuario@gmail.com"))

	for _, email := range []string{"usuario@hotmail.com", "test@yahoo.com", "email@outlook.com", "usuario@gmail.es", "usuario@gmail", "a@GMAIL.COM"} {
		require.ErrorIs(t, EmailDomain(email), ErrEmailDomain, email)
	}
}

func TestRuleKindsAreDistinct(t *testing.T) {
	lettersErr := LettersOnly("Juan123")
	phoneErr := Phone("123")
	emailErr := EmailDomain("a@gmail.es")

	require.False(t, errors.Is(lettersErr, ErrPhoneDigits))
	require.False(t, errors.Is(phoneErr, ErrEmailDomain))
	require.False(t, errors.Is(emailErr, ErrLettersOnly))

	require.Equal(t, ErrLettersOnly.Error(), Message(lettersErr))
	require.Equal(t, ErrPhoneDigits.Error(), Message(phoneErr))
	require.Equal(t, ErrEmailDomain.Error(), Message(emailErr))
	require.Empty(t, Message(errors.New("other")))
}
