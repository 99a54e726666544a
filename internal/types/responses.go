package types

import (
	"time"

	"github.com/monocle-dev/holdings/internal/models"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ActivityResponse struct {
	ID           uint      `json:"id"`
	Investment   uint      `json:"investment"`
	TradeDate    time.Time `json:"trade_date"`
	Shares       int       `json:"shares"`
	CostPerShare string    `json:"cost_per_share"`
	ActivityType string    `json:"activity_type"`
	Commission   *string   `json:"commission"`
	Description  string    `json:"description"`
}

type InvestmentResponse struct {
	ID     uint          `json:"id"`
	Ticker string        `json:"ticker"`
	Link   string        `json:"link"`
	Tags   []TagResponse `json:"tags"`
}

type InvestmentDetailResponse struct {
	InvestmentResponse

	Description string             `json:"description"`
	Activities  []ActivityResponse `json:"activities"`
	Image       *string            `json:"image"`
}

type InvestmentImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

// InvestmentView selects the serialised shape of an investment.
type InvestmentView int

const (
	InvestmentListView InvestmentView = iota
	InvestmentDetailView
	InvestmentImageView
)

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

func NewTagResponse(tag models.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

func NewTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, NewTagResponse(tag))
	}
	return out
}

func NewActivityResponse(activity models.Activity) ActivityResponse {
	resp := ActivityResponse{
		ID:           activity.ID,
		Investment:   activity.InvestmentID,
		TradeDate:    activity.TradeDate,
		Shares:       activity.Shares,
		CostPerShare: activity.CostPerShare.StringFixed(2),
		ActivityType: activity.ActivityType,
		Description:  activity.Description,
	}

	if activity.Commission.Valid {
		commission := activity.Commission.Decimal.StringFixed(2)
		resp.Commission = &commission
	}

	return resp
}

func NewActivityResponses(activities []models.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		out = append(out, NewActivityResponse(activity))
	}
	return out
}

// NewInvestmentResponse renders investment in the requested view. mediaURL
// prefixes stored image paths.
func NewInvestmentResponse(investment models.Investment, view InvestmentView, mediaURL string) interface{} {
	var image *string
	if investment.Image != nil && *investment.Image != "" {
		url := mediaURL + *investment.Image
		image = &url
	}

	base := InvestmentResponse{
		ID:     investment.ID,
		Ticker: investment.Ticker,
		Link:   investment.Link,
		Tags:   NewTagResponses(investment.Tags),
	}

	switch view {
	case InvestmentImageView:
		return InvestmentImageResponse{ID: investment.ID, Image: image}
	case InvestmentDetailView:
		return InvestmentDetailResponse{
			InvestmentResponse: base,
			Description:        investment.Description,
			Activities:         NewActivityResponses(investment.Activities),
			Image:              image,
		}
	default:
		return base
	}
}
