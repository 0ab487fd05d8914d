package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Referral struct {
	Model
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	RefreeEmail string          `json:"refreeEmail" gorm:"type:text;not null"`
	BonusAmount decimal.Decimal `json:"bonusAmount" gorm:"type:numeric(14,2);not null"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
