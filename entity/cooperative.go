package entity

type Cooperative struct {
	Model
	Name          string `json:"name" gorm:"type:text;uniqueIndex;not null"`
	ContactPerson string `json:"contactPerson" gorm:"type:text;not null"`
	Verified      bool   `json:"verified" gorm:"not null;default:false"`
	Description   string `json:"description,omitempty" gorm:"type:text"`
	IsPublic      bool   `json:"isPublic" gorm:"not null;default:false;index"`
	Creator       string `json:"creator" gorm:"type:text;not null"`

	Contributions []Contribution `json:"contributions,omitempty" gorm:"foreignKey:CooperativeID"`
	Loans         []Loan         `json:"loans,omitempty" gorm:"foreignKey:CooperativeID"`
	ProfitShares  []ProfitShare  `json:"profitShares,omitempty" gorm:"foreignKey:CooperativeID"`
}
