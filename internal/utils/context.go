package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/internal/middleware"
	"github.com/monocle-dev/holdings/internal/types"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

// CurrentUser returns the account the auth gate resolved for this request.
func CurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)
	if !exists {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	user, ok := value.(middleware.AuthenticatedUser)
	if !ok || user.ID == 0 {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	return user, nil
}

// OwnerID is the id every owned-row query is scoped by.
func OwnerID(ctx *gin.Context) (uint, error) {
	user, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
