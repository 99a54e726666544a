package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/monocle-dev/holdings/internal/models"
	"github.com/monocle-dev/holdings/internal/types"
	"gorm.io/gorm"
)

// Reconciler turns the tags and activities nested in an investment write
// into rows owned by one user. It must run on the transaction that writes the
// investment itself.
//
// Tags are matched by name and reused; activities are always appended.
type Reconciler struct {
	tx     *gorm.DB
	userID uint

	TagsCreated        int
	TagsReused         int
	ActivitiesAppended int
}

func NewReconciler(tx *gorm.DB, userID uint) *Reconciler {
	return &Reconciler{tx: tx, userID: userID}
}

// ResolveTag returns the user's tag called name, creating it when missing.
func (r *Reconciler) ResolveTag(name string) (models.Tag, error) {
	var tag models.Tag

	err := r.tx.Where("user_id = ? AND name = ?", r.userID, name).Order("id").First(&tag).Error
	if err == nil {
		r.TagsReused++
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tag{}, fmt.Errorf("look up tag %q: %w", name, err)
	}

	tag = models.Tag{Name: name, UserID: r.userID}
	if err := r.tx.Create(&tag).Error; err != nil {
		return models.Tag{}, fmt.Errorf("create tag %q: %w", name, err)
	}
	r.TagsCreated++

	return tag, nil
}

// AssignTags resolves every payload and associates the result with
// investment, keeping associations it already has.
func (r *Reconciler) AssignTags(investment *models.Investment, payloads []types.TagPayload) error {
	if len(payloads) == 0 {
		return nil
	}

	resolved := make([]models.Tag, 0, len(payloads))
	seen := make(map[string]bool, len(payloads))

	for _, payload := range payloads {
		name := strings.TrimSpace(payload.Name)
		if seen[name] {
			continue
		}
		seen[name] = true

		tag, err := r.ResolveTag(name)
		if err != nil {
			return err
		}
		resolved = append(resolved, tag)
	}

	if err := r.tx.Model(investment).Association("Tags").Append(resolved); err != nil {
		return fmt.Errorf("associate tags: %w", err)
	}

	return nil
}

// ReplaceTags drops every tag association of investment, then assigns
// payloads. An empty payloads leaves the investment untagged.
func (r *Reconciler) ReplaceTags(investment *models.Investment, payloads []types.TagPayload) error {
	if err := r.tx.Model(investment).Association("Tags").Clear(); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}

	return r.AssignTags(investment, payloads)
}

// AppendActivities creates one activity per payload, linked to investment.
// Existing activities are never touched.
func (r *Reconciler) AppendActivities(investment *models.Investment, payloads []types.ActivityPayload) error {
	if len(payloads) == 0 {
		return nil
	}

	activities := make([]models.Activity, 0, len(payloads))
	for _, payload := range payloads {
		activities = append(activities, NewActivity(r.userID, investment.ID, payload))
	}

	if err := r.tx.Create(&activities).Error; err != nil {
		return fmt.Errorf("create activities: %w", err)
	}
	r.ActivitiesAppended += len(activities)

	return nil
}

// NewActivity builds an unsaved activity from a validated payload.
func NewActivity(userID, investmentID uint, payload types.ActivityPayload) models.Activity {
	activity := models.Activity{
		UserID:       userID,
		InvestmentID: investmentID,
		TradeDate:    payload.TradeDate.UTC(),
		ActivityType: payload.ActivityType,
		Commission:   payload.Commission,
		Description:  payload.Description,
	}

	if payload.Shares != nil {
		activity.Shares = *payload.Shares
	}
	if payload.CostPerShare != nil {
		activity.CostPerShare = *payload.CostPerShare
	}

	return activity
}
