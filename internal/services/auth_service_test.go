package services

import (
	"testing"
	"time"

	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/cradlelog/cradle-backend/internal/token"
	"github.com/stretchr/testify/require"
)

func registerReq(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Alice",
		Email:    email,
		Password: "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	svc := NewAuthService(db, cfg, nil)

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "alice@x.com", resp.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	svc := NewAuthService(db, cfg, nil)

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	_, err = svc.Register(registerReq("alice@x.com"))
	require.ErrorIs(t, err, ErrEmailTaken)

	// Case variants collide too, and the first account is unaffected.
	_, err = svc.Register(registerReq("ALICE@X.COM"))
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)
}

func TestRegisterCreatesBabyProfile(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	svc := NewAuthService(db, cfg, nil)

	req := registerReq("alice@x.com")
	req.BabyName = "Sam"
	req.DueDate = "2026-12-01"
	_, err := svc.Register(req)
	require.NoError(t, err)

	var babies []models.Baby
	require.NoError(t, db.Find(&babies).Error)
	require.Len(t, babies, 1)
	require.Equal(t, "Sam", babies[0].Name)
	require.NotNil(t, babies[0].DueDate)
}

func TestRegisterRejectsBadDueDate(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testConfig(), nil)

	req := registerReq("alice@x.com")
	req.DueDate = "next spring"
	_, err := svc.Register(req)
	require.ErrorIs(t, err, ErrInvalidDueDate)

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Zero(t, count)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	svc := NewAuthService(db, cfg, nil)

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@x.com", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	mailer := &fakeMailer{}
	svc := NewAuthService(db, cfg, mailer)

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)
	require.Len(t, mailer.verifyTokens, 1)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.ErrorIs(t, err, ErrEmailNotVerified)

	require.NoError(t, svc.VerifyEmail(mailer.verifyTokens[0]))

	resp, err := svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)
	require.True(t, resp.User.EmailVerified)
}

func TestVerifyEmailRejectsResetToken(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, &fakeMailer{})

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)

	// A reset-purpose token must not verify an email.
	signer := token.NewSigner(cfg.JWTSecret)
	raw, err := signer.Issue(user.ID, token.PurposePasswordReset, time.Hour)
	require.NoError(t, err)

	require.ErrorIs(t, svc.VerifyEmail(raw), token.ErrTokenInvalid)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	db := setupDB(t)
	mailer := &fakeMailer{failNext: true}
	svc := NewAuthService(db, testConfig(), mailer)

	msg, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)
	require.Contains(t, msg, "could not be sent")

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestResendVerification(t *testing.T) {
	db := setupDB(t)
	mailer := &fakeMailer{}
	svc := NewAuthService(db, testConfig(), mailer)

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.ResendVerification("alice@x.com"))
	require.Len(t, mailer.verifyTokens, 2)

	require.ErrorIs(t, svc.ResendVerification("nobody@x.com"), ErrUserNotFound)

	require.NoError(t, svc.VerifyEmail(mailer.verifyTokens[0]))
	require.ErrorIs(t, svc.ResendVerification("alice@x.com"), ErrAlreadyVerified)
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	mailer := &fakeMailer{}
	svc := NewAuthService(db, cfg, mailer)

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	// Unknown addresses produce no observable difference.
	svc.RequestPasswordReset("nobody@x.com")
	require.Empty(t, mailer.resetTokens)

	svc.RequestPasswordReset("alice@x.com")
	require.Len(t, mailer.resetTokens, 1)

	require.NoError(t, svc.ResetPassword(mailer.resetTokens[0], "newpassword1"))

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "newpassword1"})
	require.NoError(t, err)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	svc := NewAuthService(db, cfg, &fakeMailer{})

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)

	signer := token.NewSigner(cfg.JWTSecret)
	expired, err := signer.Issue(user.ID, token.PurposePasswordReset, -time.Minute)
	require.NoError(t, err)

	require.ErrorIs(t, svc.ResetPassword(expired, "newpassword1"), token.ErrTokenExpired)

	// The old password still works.
	_, err = svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)
}

func TestRefreshRotation(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	svc := NewAuthService(db, cfg, nil)

	_, err := svc.Register(registerReq("alice@x.com"))
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)

	next, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	require.NotEqual(t, resp.RefreshToken, next.RefreshToken)

	// The old token was rotated out.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	cfg.RequireVerification = false
	svc := NewAuthService(db, cfg, nil)

	req := registerReq("alice@x.com")
	req.BabyName = "Sam"
	_, err := svc.Register(req)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)

	feedings := NewFeedingService(db)
	_, err = feedings.Create(user.ID, &dto.CreateFeedingRequest{Type: "bottle"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteAccount(user.ID, "wrong"), ErrInvalidCredentials)
	require.NoError(t, svc.DeleteAccount(user.ID, "password123"))

	var count int64
	db.Model(&models.FeedingRecord{}).Count(&count)
	require.Zero(t, count)
	db.Model(&models.Baby{}).Count(&count)
	require.Zero(t, count)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
