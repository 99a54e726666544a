package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/models"
	"github.com/monocle-dev/holdings/internal/types"
	"github.com/monocle-dev/holdings/internal/utils"
	"github.com/shopspring/decimal"
)

// Activities have no create endpoint; they are appended by investment writes.
// The investment an activity belongs to cannot be changed.
type UpdateActivityRequest struct {
	TradeDate    *time.Time          `json:"trade_date"`
	Shares       *int                `json:"shares"`
	CostPerShare *decimal.Decimal    `json:"cost_per_share"`
	ActivityType *string             `json:"activity_type" binding:"omitempty,oneof=BUY SELL"`
	Commission   decimal.NullDecimal `json:"commission"`
	Description  *string             `json:"description"`
}

func ownedActivity(ctx *gin.Context, userID uint) (models.Activity, bool) {
	var activity models.Activity

	activityID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return activity, false
	}

	if err := db.DB.Where("id = ? AND user_id = ?", activityID, userID).First(&activity).Error; err != nil {
		respondLookupError(ctx, err, "Activity")
		return activity, false
	}

	return activity, true
}

func ListActivities(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	var activities []models.Activity

	if err := db.DB.Where("user_id = ?", userID).Order("trade_date DESC, id DESC").Find(&activities).Error; err != nil {
		respondInternal(ctx, "retrieve activities", err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewActivityResponses(activities))
}

func GetActivity(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	activity, ok := ownedActivity(ctx, userID)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, types.NewActivityResponse(activity))
}

func UpdateActivity(ctx *gin.Context) {
	updateActivity(ctx, true)
}

func PatchActivity(ctx *gin.Context) {
	updateActivity(ctx, false)
}

func updateActivity(ctx *gin.Context, full bool) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	activity, ok := ownedActivity(ctx, userID)

	if !ok {
		return
	}

	var req UpdateActivityRequest

	if !bindJSON(ctx, &req) {
		return
	}

	fields := FieldErrors{}

	if full {
		if req.TradeDate == nil {
			fields["trade_date"] = msgRequired
		}
		if req.Shares == nil {
			fields["shares"] = msgRequired
		}
		if req.CostPerShare == nil {
			fields["cost_per_share"] = msgRequired
		}
		if req.ActivityType == nil {
			fields["activity_type"] = msgRequired
		}
	}

	if req.CostPerShare != nil {
		validateMoney(fields, "cost_per_share", *req.CostPerShare)
	}
	if req.Commission.Valid {
		validateMoney(fields, "commission", req.Commission.Decimal)
	}

	if len(fields) > 0 {
		respondInvalid(ctx, fields)
		return
	}

	updates := make(map[string]interface{})

	if req.TradeDate != nil {
		updates["trade_date"] = req.TradeDate.UTC()
	}
	if req.Shares != nil {
		updates["shares"] = *req.Shares
	}
	if req.CostPerShare != nil {
		updates["cost_per_share"] = *req.CostPerShare
	}
	if req.ActivityType != nil {
		updates["activity_type"] = *req.ActivityType
	}
	if _, present := jsonKeys(ctx)["commission"]; present {
		updates["commission"] = req.Commission
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&activity).Updates(updates).Error; err != nil {
			respondInternal(ctx, "update activity", err)
			return
		}
	}

	if err := db.DB.First(&activity, activity.ID).Error; err != nil {
		respondInternal(ctx, "refresh activity", err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewActivityResponse(activity))
}

func DeleteActivity(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	activity, ok := ownedActivity(ctx, userID)

	if !ok {
		return
	}

	if err := db.DB.Delete(&activity).Error; err != nil {
		respondInternal(ctx, "delete activity", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
