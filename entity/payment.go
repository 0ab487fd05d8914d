package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	Model
	PayeeID uuid.UUID       `json:"payeeId" gorm:"type:uuid;index;not null"`
	PayerID uuid.UUID       `json:"payerId" gorm:"type:uuid;index;not null"`
	Amount  decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Comment string          `json:"comment,omitempty" gorm:"type:text"`
	UserID  *uuid.UUID      `json:"userId,omitempty" gorm:"type:uuid;index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
