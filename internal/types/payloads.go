package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TagPayload describes a tag embedded in an investment write.
type TagPayload struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ActivityPayload describes a trade embedded in an investment write.
type ActivityPayload struct {
	TradeDate    time.Time           `json:"trade_date" binding:"required"`
	Shares       *int                `json:"shares" binding:"required"`
	CostPerShare *decimal.Decimal    `json:"cost_per_share" binding:"required"`
	ActivityType string              `json:"activity_type" binding:"required,oneof=BUY SELL"`
	Commission   decimal.NullDecimal `json:"commission"`
	Description  string              `json:"description"`
}
