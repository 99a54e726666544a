package models

// Tag labels investments. Names are unique per user only through
// reconciliation; the table itself does not enforce it.
type Tag struct {
	BaseModel

	Name   string `gorm:"size:255;not null;index"`
	UserID uint   `gorm:"not null;index"`

	// Relationships
	User        User         `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Investments []Investment `gorm:"many2many:investment_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (t Tag) String() string {
	return t.Name
}
