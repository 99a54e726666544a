package services

import (
	"fmt"
	"strings"

	"github.com/monocle-dev/holdings/internal/models"
	"github.com/monocle-dev/holdings/internal/observability"
	"github.com/monocle-dev/holdings/internal/types"
	"gorm.io/gorm"
)

// InvestmentInput carries an investment write. Nil fields were absent from
// the request: scalars keep their value, nil Tags keeps the associations and
// nil Activities appends nothing.
type InvestmentInput struct {
	Ticker      *string
	Description *string
	Link        *string
	Tags        *[]types.TagPayload
	Activities  *[]types.ActivityPayload
}

func (in InvestmentInput) updates() map[string]interface{} {
	updates := make(map[string]interface{})

	if in.Ticker != nil {
		updates["ticker"] = strings.TrimSpace(*in.Ticker)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Link != nil {
		updates["link"] = strings.TrimSpace(*in.Link)
	}

	return updates
}

func recordReconciliation(r *Reconciler) {
	for i := 0; i < r.TagsCreated; i++ {
		observability.RecordTag(observability.TagCreated)
	}
	for i := 0; i < r.TagsReused; i++ {
		observability.RecordTag(observability.TagReused)
	}
	observability.RecordActivities(r.ActivitiesAppended)
}

// OwnedInvestment scopes every lookup to the owner so that other users'
// rows surface as gorm.ErrRecordNotFound.
func OwnedInvestment(conn *gorm.DB, userID, investmentID uint) (models.Investment, error) {
	var investment models.Investment

	err := conn.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error

	return investment, err
}

// GetInvestment loads an owned investment with its tags and activities.
func GetInvestment(conn *gorm.DB, userID, investmentID uint) (models.Investment, error) {
	var investment models.Investment

	err := conn.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("trade_date DESC, id DESC") }).
		Where("id = ? AND user_id = ?", investmentID, userID).
		First(&investment).Error

	return investment, err
}

// ListInvestments returns the user's investments, newest first. A non-empty
// tagIDs keeps only investments carrying at least one of those tags.
func ListInvestments(conn *gorm.DB, userID uint, tagIDs []uint) ([]models.Investment, error) {
	var investments []models.Investment

	query := conn.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Where("user_id = ?", userID)

	if len(tagIDs) > 0 {
		tagged := conn.Table("investment_tags").Select("investment_id").Where("tag_id IN ?", tagIDs)
		query = query.Where("id IN (?)", tagged)
	}

	if err := query.Order("id DESC").Find(&investments).Error; err != nil {
		return nil, err
	}

	return investments, nil
}

// CreateInvestment stores a new investment owned by userID and reconciles its
// nested tags and activities in the same transaction.
func CreateInvestment(conn *gorm.DB, userID uint, in InvestmentInput) (models.Investment, error) {
	var (
		investment models.Investment
		reconciler *Reconciler
	)

	err := conn.Transaction(func(tx *gorm.DB) error {
		investment = models.Investment{UserID: userID}
		if in.Ticker != nil {
			investment.Ticker = strings.TrimSpace(*in.Ticker)
		}
		if in.Description != nil {
			investment.Description = *in.Description
		}
		if in.Link != nil {
			investment.Link = strings.TrimSpace(*in.Link)
		}

		if err := tx.Create(&investment).Error; err != nil {
			return fmt.Errorf("create investment: %w", err)
		}

		reconciler = NewReconciler(tx, userID)

		if in.Tags != nil {
			if err := reconciler.AssignTags(&investment, *in.Tags); err != nil {
				return err
			}
		}
		if in.Activities != nil {
			if err := reconciler.AppendActivities(&investment, *in.Activities); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return models.Investment{}, err
	}

	recordReconciliation(reconciler)

	return GetInvestment(conn, userID, investment.ID)
}

// UpdateInvestment applies in to an owned investment. A supplied Tags list
// replaces the tag associations; supplied Activities are appended.
func UpdateInvestment(conn *gorm.DB, userID, investmentID uint, in InvestmentInput) (models.Investment, error) {
	var reconciler *Reconciler

	err := conn.Transaction(func(tx *gorm.DB) error {
		investment, err := OwnedInvestment(tx, userID, investmentID)
		if err != nil {
			return err
		}

		if updates := in.updates(); len(updates) > 0 {
			if err := tx.Model(&investment).Updates(updates).Error; err != nil {
				return fmt.Errorf("update investment: %w", err)
			}
		}

		reconciler = NewReconciler(tx, userID)

		if in.Tags != nil {
			if err := reconciler.ReplaceTags(&investment, *in.Tags); err != nil {
				return err
			}
		}
		if in.Activities != nil {
			if err := reconciler.AppendActivities(&investment, *in.Activities); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return models.Investment{}, err
	}

	recordReconciliation(reconciler)

	return GetInvestment(conn, userID, investmentID)
}

// DeleteInvestment removes an owned investment, its activities and its tag
// associations. The tags themselves stay.
func DeleteInvestment(conn *gorm.DB, userID, investmentID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		investment, err := OwnedInvestment(tx, userID, investmentID)
		if err != nil {
			return err
		}

		if err := tx.Model(&investment).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		if err := tx.Where("investment_id = ?", investment.ID).Delete(&models.Activity{}).Error; err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		if err := tx.Delete(&investment).Error; err != nil {
			return fmt.Errorf("delete investment: %w", err)
		}

		return nil
	})
}
