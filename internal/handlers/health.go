package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/db"
)

// HealthCheck reports liveness and whether the database answers a ping.
// A failed ping is a 503 so load balancers stop routing to the instance.
func HealthCheck(ctx *gin.Context) {
	status, database := http.StatusOK, "ok"

	if err := pingDatabase(ctx.Request.Context()); err != nil {
		status, database = http.StatusServiceUnavailable, "unavailable"
	}

	ctx.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func pingDatabase(parent context.Context) error {
	if db.DB == nil {
		return errNoDatabase
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
