package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/services"
	"github.com/monocle-dev/holdings/internal/types"
	"github.com/monocle-dev/holdings/internal/utils"
)

// InvestmentRequest is the body of investment writes. Any "user" key is
// ignored: the owner always comes from the token.
type InvestmentRequest struct {
	Ticker      *string                  `json:"ticker" binding:"omitempty,max=255"`
	Description *string                  `json:"description"`
	Link        *string                  `json:"link" binding:"omitempty,max=255"`
	Tags        *[]types.TagPayload      `json:"tags" binding:"omitempty,dive"`
	Activities  *[]types.ActivityPayload `json:"activities" binding:"omitempty,dive"`
}

// Validate runs the checks struct tags cannot express. requireTicker is set
// for create and full update.
func (r InvestmentRequest) Validate(requireTicker bool) FieldErrors {
	fields := FieldErrors{}

	validateNotBlank(fields, "ticker", r.Ticker, requireTicker)

	if r.Tags != nil {
		for i, tag := range *r.Tags {
			name := tag.Name
			validateNotBlank(fields, fmt.Sprintf("tags[%d].name", i), &name, true)
		}
	}

	if r.Activities != nil {
		for i, activity := range *r.Activities {
			if activity.CostPerShare != nil {
				validateMoney(fields, fmt.Sprintf("activities[%d].cost_per_share", i), *activity.CostPerShare)
			}
			if activity.Commission.Valid {
				validateMoney(fields, fmt.Sprintf("activities[%d].commission", i), activity.Commission.Decimal)
			}
		}
	}

	return fields
}

func (r InvestmentRequest) input() services.InvestmentInput {
	return services.InvestmentInput{
		Ticker:      r.Ticker,
		Description: r.Description,
		Link:        r.Link,
		Tags:        r.Tags,
		Activities:  r.Activities,
	}
}

func bindInvestment(ctx *gin.Context, requireTicker bool) (InvestmentRequest, bool) {
	var req InvestmentRequest

	if !bindJSON(ctx, &req) {
		return req, false
	}

	if fields := req.Validate(requireTicker); len(fields) > 0 {
		respondInvalid(ctx, fields)
		return req, false
	}

	return req, true
}

func ListInvestments(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	tagIDs, err := utils.ParseIDList(ctx.Query("tags"))

	if err != nil {
		respondInvalid(ctx, FieldErrors{"tags": "Enter a comma separated list of tag ids."})
		return
	}

	investments, err := services.ListInvestments(db.DB, userID, tagIDs)

	if err != nil {
		respondInternal(ctx, "retrieve investments", err)
		return
	}

	response := make([]interface{}, 0, len(investments))

	for _, investment := range investments {
		response = append(response, types.NewInvestmentResponse(investment, types.InvestmentListView, MediaURL))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateInvestment(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	req, ok := bindInvestment(ctx, true)

	if !ok {
		return
	}

	investment, err := services.CreateInvestment(db.DB, userID, req.input())

	if err != nil {
		respondInternal(ctx, "create investment", err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewInvestmentResponse(investment, types.InvestmentDetailView, MediaURL))
}

func GetInvestment(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	investmentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
		return
	}

	investment, err := services.GetInvestment(db.DB, userID, investmentID)

	if err != nil {
		respondLookupError(ctx, err, "Investment")
		return
	}

	ctx.JSON(http.StatusOK, types.NewInvestmentResponse(investment, types.InvestmentDetailView, MediaURL))
}

// UpdateInvestment handles PUT; PatchInvestment handles PATCH. They differ
// only in whether the ticker must be present.
func UpdateInvestment(ctx *gin.Context) {
	updateInvestment(ctx, true)
}

func PatchInvestment(ctx *gin.Context) {
	updateInvestment(ctx, false)
}

func updateInvestment(ctx *gin.Context, full bool) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	investmentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
		return
	}

	if _, err := services.OwnedInvestment(db.DB, userID, investmentID); err != nil {
		respondLookupError(ctx, err, "Investment")
		return
	}

	req, ok := bindInvestment(ctx, full)

	if !ok {
		return
	}

	investment, err := services.UpdateInvestment(db.DB, userID, investmentID, req.input())

	if err != nil {
		respondLookupError(ctx, err, "Investment")
		return
	}

	ctx.JSON(http.StatusOK, types.NewInvestmentResponse(investment, types.InvestmentDetailView, MediaURL))
}

func DeleteInvestment(ctx *gin.Context) {
	userID, ok := ownerID(ctx)

	if !ok {
		return
	}

	investmentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
		return
	}

	if err := services.DeleteInvestment(db.DB, userID, investmentID); err != nil {
		respondLookupError(ctx, err, "Investment")
		return
	}

	ctx.Status(http.StatusNoContent)
}
