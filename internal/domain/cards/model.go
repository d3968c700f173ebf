package cards

import "time"

type Card struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	OwnerID         string    `gorm:"type:uuid;index;not null"`
	Name            string    `gorm:"not null"`
	Brand           string    `gorm:"not null"`
	BestPurchaseDay int       `gorm:"not null"`
	Active          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Card) TableName() string {
	return "credit_cards"
}

type CardInput struct {
	OwnerID         string
	CardID          string
	Name            string
	Brand           string
	BestPurchaseDay int
}
