package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/cradlelog/cradle-backend/internal/config"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Baby{},
		&models.FeedingRecord{},
		&models.SleepRecord{},
		&models.VaccineRecord{},
		&models.RefreshToken{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		JWTAccessExpiry:     15 * time.Minute,
		JWTRefreshExpiry:    168 * time.Hour,
		RequireVerification: true,
		VerifyTokenExpiry:   24 * time.Hour,
		ResetTokenExpiry:    time.Hour,
	}
}

// fakeMailer records deliveries instead of sending them.
type fakeMailer struct {
	verifyTokens []string
	resetTokens  []string
	failNext     bool
}

func (m *fakeMailer) SendVerification(toName, toEmail, token string) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	m.verifyTokens = append(m.verifyTokens, token)
	return nil
}

func (m *fakeMailer) SendPasswordReset(toName, toEmail, token string) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	m.resetTokens = append(m.resetTokens, token)
	return nil
}
