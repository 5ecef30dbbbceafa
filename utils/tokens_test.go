package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	clientID := uuid.NewString()
	appointmentID := uuid.NewString()

	token, err := GenerateConfirmationToken(clientID, appointmentID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, ValidateConfirmationToken(token, clientID, appointmentID))
}

func TestConfirmationTokenWrongPair(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	clientID := uuid.NewString()
	appointmentID := uuid.NewString()

	token, err := GenerateConfirmationToken(clientID, appointmentID, time.Hour)
	require.NoError(t, err)

	// Valid signature, wrong appointment.
	err = ValidateConfirmationToken(token, clientID, uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Valid signature, wrong client.
	err = ValidateConfirmationToken(token, uuid.NewString(), appointmentID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmationTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	clientID := uuid.NewString()
	appointmentID := uuid.NewString()

	token, err := GenerateConfirmationToken(clientID, appointmentID, -time.Minute)
	require.NoError(t, err)

	err = ValidateConfirmationToken(token, clientID, appointmentID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmationTokenTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	clientID := uuid.NewString()
	appointmentID := uuid.NewString()

	token, err := GenerateConfirmationToken(clientID, appointmentID, time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	err = ValidateConfirmationToken(token, clientID, appointmentID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.NewString()

	token, err := GeneratePasswordResetToken(userID, time.Hour)
	require.NoError(t, err)

	got, err := ValidatePasswordResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestPasswordResetTokenScopeNotInterchangeable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	clientID := uuid.NewString()
	appointmentID := uuid.NewString()

	// A confirmation token must not open the password reset flow.
	token, err := GenerateConfirmationToken(clientID, appointmentID, time.Hour)
	require.NoError(t, err)

	_, err = ValidatePasswordResetToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
