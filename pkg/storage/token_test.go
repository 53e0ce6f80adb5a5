package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenSignerGenerateAndParse(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("high-risk", "csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	report, format, parsedExpiry, err := signer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "high-risk", report)
	require.Equal(t, "csv", format)
	require.WithinDuration(t, expiresAt, parsedExpiry, time.Second)
}

func TestTokenSignerRejectsExpired(t *testing.T) {
	signer := NewTokenSigner("secret", time.Millisecond*10)
	token, _, err := signer.Generate("high-risk", "pdf")
	require.NoError(t, err)
	time.Sleep(time.Millisecond * 20)

	_, _, _, err = signer.Parse(token)
	require.Error(t, err)
}

func TestTokenSignerRejectsTampering(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)
	token, _, err := signer.Generate("high-risk", "csv")
	require.NoError(t, err)

	tampered := "other-report" + token[len("high-risk"):]
	_, _, _, err = signer.Parse(tampered)
	require.Error(t, err)

	_, _, _, err = NewTokenSigner("wrong-secret", time.Hour).Parse(token)
	require.Error(t, err)
}
