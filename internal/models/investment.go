package models

type Investment struct {
	BaseModel

	UserID      uint    `gorm:"not null;index"`
	Ticker      string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Link        string  `gorm:"size:255"`
	Image       *string `gorm:"size:255"` // relative to the media root, e.g. uploads/investment/<uuid>.png

	// Relationships
	User       User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Tags       []Tag      `gorm:"many2many:investment_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Activities []Activity `gorm:"foreignKey:InvestmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (i Investment) String() string {
	return i.Ticker
}
