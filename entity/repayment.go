package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repayment struct {
	Model
	PayeeID  uuid.UUID       `json:"payeeId" gorm:"type:uuid;index;not null"`
	PayerID  uuid.UUID       `json:"payerId" gorm:"type:uuid;index;not null"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	DueDate  time.Time       `json:"dueDate" gorm:"not null"`
	LoanID   *uuid.UUID      `json:"loanId,omitempty" gorm:"type:uuid;index"`
	Payments string          `json:"payments,omitempty" gorm:"type:text"`
	UserID   *uuid.UUID      `json:"userId,omitempty" gorm:"type:uuid;index"`

	Loan *Loan `json:"loan,omitempty" gorm:"foreignKey:LoanID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
