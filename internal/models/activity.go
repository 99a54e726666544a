package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ActivityBuy  = "BUY"
	ActivitySell = "SELL"
)

// ActivityTypes lists the accepted values of Activity.ActivityType.
var ActivityTypes = []string{ActivityBuy, ActivitySell}

type Activity struct {
	BaseModel

	UserID       uint                `gorm:"not null;index"`
	InvestmentID uint                `gorm:"not null;index"`
	TradeDate    time.Time           `gorm:"not null;index"`
	Shares       int                 `gorm:"not null"`
	CostPerShare decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	ActivityType string              `gorm:"size:4;not null"`
	Commission   decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Description  string              `gorm:"type:text"`

	// Relationships
	User       User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Investment Investment `gorm:"foreignKey:InvestmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (a Activity) String() string {
	return fmt.Sprintf("%s - %s - shares: %d", a.ActivityType, a.Investment, a.Shares)
}

// IsValidActivityType reports whether t is one of ActivityTypes.
func IsValidActivityType(t string) bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}
