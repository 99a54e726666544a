//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/monocle-dev/holdings/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresMigrationAndCascades(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("holdings"),
		postgrescontainer.WithUsername("holdings"),
		postgrescontainer.WithPassword("holdings"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	previous := DB
	t.Cleanup(func() { DB = previous })

	require.NoError(t, ConnectDatabase("postgres", connStr))
	require.NoError(t, MigrateDatabase())

	user := models.User{Name: "Investor", Email: "investor@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, DB.Create(&user).Error)

	investment := models.Investment{UserID: user.ID, Ticker: "TSLA"}
	require.NoError(t, DB.Create(&investment).Error)

	activity := models.Activity{
		UserID:       user.ID,
		InvestmentID: investment.ID,
		TradeDate:    time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC),
		Shares:       10,
		CostPerShare: decimal.RequireFromString("250.55"),
		ActivityType: models.ActivityBuy,
	}
	require.NoError(t, DB.Create(&activity).Error)

	var stored models.Activity
	require.NoError(t, DB.First(&stored, activity.ID).Error)
	require.Equal(t, "250.55", stored.CostPerShare.StringFixed(2))
	require.False(t, stored.Commission.Valid)

	require.NoError(t, DB.Delete(&investment).Error)

	var count int64
	require.NoError(t, DB.Model(&models.Activity{}).Count(&count).Error)
	require.Zero(t, count)
}
