package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/services"
	"github.com/monocle-dev/holdings/internal/types"
	"github.com/monocle-dev/holdings/internal/utils"
)

func UploadInvestmentImage(ctx *gin.Context) {
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

	if MediaStorage == nil {
		respondInternal(ctx, "store image", errors.New("media storage is not configured"))
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxUploadBytes)

	header, err := ctx.FormFile(types.ImageFormField)

	var tooLarge *http.MaxBytesError

	if errors.As(err, &tooLarge) {
		respondInvalid(ctx, FieldErrors{types.ImageFormField: fmt.Sprintf("Ensure this file is no larger than %d bytes.", tooLarge.Limit)})
		return
	}

	if err != nil {
		respondInvalid(ctx, FieldErrors{types.ImageFormField: "No file was submitted."})
		return
	}

	file, err := header.Open()

	if err != nil {
		respondInvalid(ctx, FieldErrors{types.ImageFormField: "The submitted file could not be read."})
		return
	}

	defer file.Close()

	investment, err := services.AttachImage(ctx.Request.Context(), db.DB, MediaStorage, userID, investmentID, header.Filename, file)

	if errors.Is(err, services.ErrNotAnImage) {
		respondInvalid(ctx, FieldErrors{types.ImageFormField: "Upload a valid image. The file you uploaded was either not an image or a corrupted image."})
		return
	}

	if err != nil {
		respondLookupError(ctx, err, "Investment")
		return
	}

	ctx.JSON(http.StatusOK, types.NewInvestmentResponse(investment, types.InvestmentImageView, MediaURL))
}
