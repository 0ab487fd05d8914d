package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepaymentPeriod is the fixed set of loan repayment schedules.
type RepaymentPeriod string

const (
	Period30Days  RepaymentPeriod = "30days"
	Period60Days  RepaymentPeriod = "60days"
	Period90Days  RepaymentPeriod = "90days"
	Period6Months RepaymentPeriod = "6months"
	Period1Year   RepaymentPeriod = "1year"
	Period2Years  RepaymentPeriod = "2years"
	Period5Years  RepaymentPeriod = "5years"
)

var validPeriods = map[RepaymentPeriod]struct{}{
	Period30Days: {}, Period60Days: {}, Period90Days: {},
	Period6Months: {}, Period1Year: {}, Period2Years: {}, Period5Years: {},
}

func (p RepaymentPeriod) Valid() bool {
	_, ok := validPeriods[p]
	return ok
}

type Loan struct {
	Model
	BeneficiaryID   uuid.UUID        `json:"beneficiaryId" gorm:"type:uuid;index;not null"`
	CooperativeID   uuid.UUID        `json:"cooperativeId" gorm:"type:uuid;index;not null"`
	Amount          decimal.Decimal  `json:"amount" gorm:"type:numeric(14,2);not null"`
	Comment         string           `json:"comment,omitempty" gorm:"type:text"`
	Purpose         string           `json:"purpose,omitempty" gorm:"type:text"`
	RepaymentPeriod RepaymentPeriod  `json:"repaymentPeriod,omitempty" gorm:"type:text"`
	Term            string           `json:"term,omitempty" gorm:"type:text"`
	InterestRate    *decimal.Decimal `json:"interestRate,omitempty" gorm:"type:numeric(5,2)"`
	Guaranteed      bool             `json:"guaranteed" gorm:"not null;default:false"`
	DueDate         time.Time        `json:"dueDate" gorm:"not null"`
	Payments        string           `json:"payments,omitempty" gorm:"type:text"`
	PaymentID       *uuid.UUID       `json:"paymentId,omitempty" gorm:"type:uuid;index"`

	Beneficiary *User        `json:"beneficiary,omitempty" gorm:"foreignKey:BeneficiaryID"`
	Cooperative *Cooperative `json:"cooperative,omitempty" gorm:"foreignKey:CooperativeID"`
	Repayments  []Repayment  `json:"repayments,omitempty" gorm:"foreignKey:LoanID"`
}
