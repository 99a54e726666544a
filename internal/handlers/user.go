package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/auth"
	"github.com/monocle-dev/holdings/internal/models"
	"github.com/monocle-dev/holdings/internal/services"
	"github.com/monocle-dev/holdings/internal/types"
	"github.com/monocle-dev/holdings/internal/utils"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name" binding:"required,max=255"`
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
}

type DeleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

func CreateUser(ctx *gin.Context) {
	var req CreateUserRequest

	if !bindJSON(ctx, &req) {
		return
	}

	user, err := services.CreateUser(db.DB, req.Email, req.Password, req.Name)

	if errors.Is(err, services.ErrEmailTaken) {
		respondInvalid(ctx, FieldErrors{"email": "user with this email already exists."})
		return
	}

	if err != nil {
		respondInternal(ctx, "create user", err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(user))
}

func CreateToken(ctx *gin.Context) {
	var req TokenRequest

	if !bindJSON(ctx, &req) {
		return
	}

	user, ok, err := services.Authenticate(db.DB, req.Email, req.Password)

	if err != nil {
		respondInternal(ctx, "authenticate user", err)
		return
	}

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unable to authenticate with provided credentials"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		respondInternal(ctx, "generate JWT", err)
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.CurrentUser(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:    currentUser.ID,
		Email: currentUser.Email,
		Name:  currentUser.Name,
	})
}

func UpdateMe(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	var req UpdateUserRequest

	if !bindJSON(ctx, &req) {
		return
	}

	fields := FieldErrors{}
	validateNotBlank(fields, "name", req.Name, false)

	if len(fields) > 0 {
		respondInvalid(ctx, fields)
		return
	}

	var dbUser models.User

	if err := db.DB.First(&dbUser, userID).Error; err != nil {
		respondLookupError(ctx, err, "User")
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		newEmail := services.NormalizeEmail(*req.Email)

		if newEmail != dbUser.Email {
			taken, err := services.EmailTaken(db.DB, newEmail, dbUser.ID)

			if err != nil {
				respondInternal(ctx, "check existing email", err)
				return
			}

			if taken {
				respondInvalid(ctx, FieldErrors{"email": "user with this email already exists."})
				return
			}
		}

		updates["email"] = newEmail
	}

	if req.Password != nil {
		passwordHash, err := auth.HashPassword(*req.Password)

		if err != nil {
			respondInternal(ctx, "hash new password", err)
			return
		}

		updates["password_hash"] = passwordHash
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&dbUser).Updates(updates).Error; err != nil {
			respondInternal(ctx, "update user", err)
			return
		}
	}

	if err := db.DB.First(&dbUser, dbUser.ID).Error; err != nil {
		respondInternal(ctx, "refresh user data", err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(dbUser))
}

func DeleteMe(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	var req DeleteUserRequest

	if !bindJSON(ctx, &req) {
		return
	}

	var dbUser models.User

	if err := db.DB.First(&dbUser, userID).Error; err != nil {
		respondLookupError(ctx, err, "User")
		return
	}

	if !auth.CheckPassword(dbUser.PasswordHash, req.Password) {
		respondInvalid(ctx, FieldErrors{"password": "Incorrect password."})
		return
	}

	if err := services.DeleteUser(db.DB, dbUser.ID); err != nil {
		respondInternal(ctx, "delete user", err)
		return
	}

	log.Printf("Deleted user %d and everything it owned", dbUser.ID)
	ctx.Status(http.StatusNoContent)
}
