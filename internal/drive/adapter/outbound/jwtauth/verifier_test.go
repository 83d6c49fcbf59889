package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "drive")

	token, err := v.Issue("u1", time.Hour)
	require.NoError(t, err)

	userID, err := v.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestVerifier_Rejects(t *testing.T) {
	issuer := NewVerifier("secret", "drive")
	valid, err := issuer.Issue("u1", time.Hour)
	require.NoError(t, err)

	expired := NewVerifier("secret", "drive")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("u1", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewVerifier("secret", "someone-else").Issue("u1", time.Hour)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "drive",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "Empty", secret: "secret", token: ""},
		{name: "Garbage", secret: "secret", token: "not-a-jwt"},
		{name: "WrongSecret", secret: "other", token: valid},
		{name: "Expired", secret: "secret", token: expiredToken},
		{name: "WrongIssuer", secret: "secret", token: otherIssuer},
		{name: "AlgNone", secret: "secret", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(tt.secret, "drive").Authenticate(context.Background(), tt.token)
			assert.ErrorIs(t, err, port.ErrUnauthorized)
		})
	}
}
