package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cradlelog/cradle-backend/internal/config"
	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/mail"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/cradlelog/cradle-backend/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email address not verified")
	ErrAlreadyVerified    = errors.New("email address already verified")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidDueDate     = errors.New("invalid due date")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	signer *token.Signer
	mailer mail.Mailer
}

// NewAuthService wires the account manager. mailer may be nil, in which case
// verification and reset mail is silently skipped.
func NewAuthService(db *gorm.DB, cfg *config.Config, mailer mail.Mailer) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		signer: token.NewSigner(cfg.JWTSecret),
		mailer: mailer,
	}
}

// Register creates the account and, when a baby name is supplied, its baby
// profile in the same transaction. The returned message tells the caller
// whether a verification mail went out.
func (s *AuthService) Register(req *dto.RegisterRequest) (string, error) {
	email := normalizeEmail(req.Email)

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return "", ErrInvalidDueDate
		}
		dueDate = &d
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         email,
		Password:      string(hash),
		EmailVerified: !s.cfg.RequireVerification,
		BabyName:      req.BabyName,
		DueDate:       dueDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if req.BabyName != "" {
			baby := models.Baby{
				ID:      uuid.New(),
				UserID:  user.ID,
				Name:    req.BabyName,
				DueDate: dueDate,
			}
			if err := tx.Create(&baby).Error; err != nil {
				return fmt.Errorf("failed to create baby profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if !s.cfg.RequireVerification {
		return "Registration successful.", nil
	}
	if s.mailer == nil {
		return "Registration successful. Email verification is not configured.", nil
	}

	// Mail delivery failure must not roll back the account.
	if err := s.sendVerification(&user); err != nil {
		slog.Error("verification mail failed", "user_id", user.ID, "error", err)
		return "Registration successful, but the verification email could not be sent. Use resend to try again.", nil
	}
	return "Registration successful. Check your inbox to verify your email.", nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.cfg.RequireVerification && !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidRefresh
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidRefresh
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *AuthService) VerifyEmail(raw string) error {
	userID, err := s.signer.Verify(raw, token.PurposeEmailVerify)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}
	if user.EmailVerified {
		return nil
	}
	return s.db.Model(&user).Update("email_verified", true).Error
}

// ResendVerification re-issues the verification mail for an unverified account.
func (s *AuthService) ResendVerification(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return ErrUserNotFound
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}
	if s.mailer == nil {
		return errors.New("email delivery is not configured")
	}
	return s.sendVerification(&user)
}

// RequestPasswordReset never discloses whether the email exists. The only
// observable outcome is the uniform success message in the handler.
func (s *AuthService) RequestPasswordReset(email string) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return
	}
	if s.mailer == nil {
		return
	}

	raw, err := s.signer.Issue(user.ID, token.PurposePasswordReset, s.cfg.ResetTokenExpiry)
	if err != nil {
		slog.Error("reset token issue failed", "user_id", user.ID, "error", err)
		return
	}
	if err := s.mailer.SendPasswordReset(user.Name, user.Email, raw); err != nil {
		slog.Error("reset mail failed", "user_id", user.ID, "error", err)
	}
}

// ResetPassword consumes a reset token and replaces the password hash.
func (s *AuthService) ResetPassword(raw, newPassword string) error {
	userID, err := s.signer.Verify(raw, token.PurposePasswordReset)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.Model(&user).Update("password", string(hash)).Error
}

// DeleteAccount removes the user and every owned row atomically.
func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		tx.Where("user_id = ?", userID).Delete(&models.FeedingRecord{})
		tx.Where("user_id = ?", userID).Delete(&models.SleepRecord{})
		tx.Where("user_id = ?", userID).Delete(&models.VaccineRecord{})
		tx.Where("user_id = ?", userID).Delete(&models.Baby{})
		return tx.Delete(&user).Error
	})
}

func (s *AuthService) sendVerification(user *models.User) error {
	raw, err := s.signer.Issue(user.ID, token.PurposeEmailVerify, s.cfg.VerifyTokenExpiry)
	if err != nil {
		return err
	}
	return s.mailer.SendVerification(user.Name, user.Email, raw)
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			EmailVerified: user.EmailVerified,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
