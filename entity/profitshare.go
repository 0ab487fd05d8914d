package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfitShare struct {
	Model
	Period        time.Time       `json:"period" gorm:"not null"`
	UserID        uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	CooperativeID uuid.UUID       `json:"cooperativeId" gorm:"type:uuid;index;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Comment       string          `json:"comment,omitempty" gorm:"type:text"`

	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Cooperative *Cooperative `json:"cooperative,omitempty" gorm:"foreignKey:CooperativeID"`
}
