// Package testutil provides a throwaway database and fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/auth"
	"github.com/monocle-dev/holdings/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	JWTSecret = "test-secret"
	Password  = "password123"
)

// SetupDB points db.DB at a fresh migrated SQLite database for the duration
// of the test.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	previous := db.DB
	dsn := filepath.Join(t.TempDir(), "holdings.db")

	if err := db.ConnectDatabase("sqlite", dsn); err != nil {
		t.Fatalf("connect database: %v", err)
	}
	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("migrate database: %v", err)
	}
	if err := auth.InitJWT(JWTSecret, time.Hour); err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	conn := db.DB
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
		db.DB = previous
	})

	return conn
}

// CreateUser stores an active user whose password is Password.
func CreateUser(t *testing.T, conn *gorm.DB, email string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(Password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{Name: "Test User", Email: email, PasswordHash: hash, IsActive: true}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

// AuthHeader returns an Authorization header value for user.
func AuthHeader(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateJWT(user.ID, user.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	return "Bearer " + token
}

// CreateInvestment stores a sample investment; fn may adjust it first.
func CreateInvestment(t *testing.T, conn *gorm.DB, user models.User, fn func(*models.Investment)) models.Investment {
	t.Helper()

	investment := models.Investment{
		UserID:      user.ID,
		Ticker:      "TSLA",
		Description: "Sample description",
		Link:        "http://example.com/investment.pdf",
	}
	if fn != nil {
		fn(&investment)
	}

	if err := conn.Create(&investment).Error; err != nil {
		t.Fatalf("create investment: %v", err)
	}

	return investment
}

// CreateTag stores a tag owned by user.
func CreateTag(t *testing.T, conn *gorm.DB, user models.User, name string) models.Tag {
	t.Helper()

	tag := models.Tag{Name: name, UserID: user.ID}
	if err := conn.Create(&tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}

	return tag
}

// TagInvestment links tags to investment.
func TagInvestment(t *testing.T, conn *gorm.DB, investment models.Investment, tags ...models.Tag) {
	t.Helper()

	if err := conn.Model(&investment).Association("Tags").Append(tags); err != nil {
		t.Fatalf("tag investment: %v", err)
	}
}

// CreateActivity stores a sample BUY of 10 shares at 5.00; fn may adjust it.
func CreateActivity(t *testing.T, conn *gorm.DB, user models.User, investment models.Investment, fn func(*models.Activity)) models.Activity {
	t.Helper()

	activity := models.Activity{
		UserID:       user.ID,
		InvestmentID: investment.ID,
		TradeDate:    time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC),
		Shares:       10,
		CostPerShare: decimal.NewFromInt(5),
		ActivityType: models.ActivityBuy,
	}
	if fn != nil {
		fn(&activity)
	}

	if err := conn.Create(&activity).Error; err != nil {
		t.Fatalf("create activity: %v", err)
	}

	return activity
}
