package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	s := NewSigner("test-secret")
	userID := uuid.New()

	raw, err := s.Issue(userID, PurposeEmailVerify, time.Hour)
	require.NoError(t, err)

	got, err := s.Verify(raw, PurposeEmailVerify)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestVerifyRejectsWrongPurpose(t *testing.T) {
	s := NewSigner("test-secret")

	raw, err := s.Issue(uuid.New(), PurposePasswordReset, time.Hour)
	require.NoError(t, err)

	_, err = s.Verify(raw, PurposeEmailVerify)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	s := NewSigner("test-secret")

	raw, err := s.Issue(uuid.New(), PurposeEmailVerify, -time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(raw, PurposeEmailVerify)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := NewSigner("test-secret")

	_, err := s.Verify("not-a-token", PurposeEmailVerify)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := NewSigner("secret-a")
	verifier := NewSigner("secret-b")

	raw, err := issuer.Issue(uuid.New(), PurposeEmailVerify, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(raw, PurposeEmailVerify)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
