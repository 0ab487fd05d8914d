package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Contribution struct {
	Model
	UserID        uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	CooperativeID uuid.UUID       `json:"cooperativeId" gorm:"type:uuid;index;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	IsActive      bool            `json:"isActive" gorm:"not null;default:true;index"`
	Frequency     string          `json:"frequency" gorm:"type:text;not null"`
	PaymentID     *uuid.UUID      `json:"paymentId,omitempty" gorm:"type:uuid;index"`
	PaymentMethod string          `json:"paymentMethod,omitempty" gorm:"type:text"`

	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Cooperative *Cooperative `json:"cooperative,omitempty" gorm:"foreignKey:CooperativeID"`
}
