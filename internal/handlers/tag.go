package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/models"
	"github.com/monocle-dev/holdings/internal/types"
	"github.com/monocle-dev/holdings/internal/utils"
	"gorm.io/gorm"
)

// Tags have no create endpoint; they are created by investment writes.
type UpdateTagRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

func ownedTag(ctx *gin.Context, userID uint) (models.Tag, bool) {
	var tag models.Tag

	tagID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return tag, false
	}

	if err := db.DB.Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
		respondLookupError(ctx, err, "Tag")
		return tag, false
	}

	return tag, true
}

func ListTags(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	query := db.DB.Where("user_id = ?", userID)

	if utils.QueryFlag(ctx, "assigned_only") {
		query = query.Where("id IN (?)", db.DB.Table("investment_tags").Select("tag_id"))
	}

	var tags []models.Tag

	if err := query.Order("name DESC").Find(&tags).Error; err != nil {
		respondInternal(ctx, "retrieve tags", err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTagResponses(tags))
}

func GetTag(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	tag, ok := ownedTag(ctx, userID)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, types.NewTagResponse(tag))
}

func UpdateTag(ctx *gin.Context) {
	updateTag(ctx, true)
}

func PatchTag(ctx *gin.Context) {
	updateTag(ctx, false)
}

func updateTag(ctx *gin.Context, full bool) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	tag, ok := ownedTag(ctx, userID)

	if !ok {
		return
	}

	var req UpdateTagRequest

	if !bindJSON(ctx, &req) {
		return
	}

	fields := FieldErrors{}
	validateNotBlank(fields, "name", req.Name, full)

	if len(fields) > 0 {
		respondInvalid(ctx, fields)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)

		if err := db.DB.Model(&tag).Update("name", name).Error; err != nil {
			respondInternal(ctx, "update tag", err)
			return
		}

		tag.Name = name
	}

	ctx.JSON(http.StatusOK, types.NewTagResponse(tag))
}

func DeleteTag(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	tag, ok := ownedTag(ctx, userID)

	if !ok {
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tag).Association("Investments").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})

	if err != nil {
		respondInternal(ctx, "delete tag", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
