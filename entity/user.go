package entity

import "time"

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

type BankInfo struct {
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	IBAN          string `json:"iban,omitempty"`
}

// Membership ties a user to a cooperative with a role. Stored inline on the user
// row as jsonb, matching the wire format of the create-user payload.
type Membership struct {
	CooperativeID string    `json:"cooperativeId"`
	Role          Role      `json:"role"`
	JoinedAt      time.Time `json:"joinedAt"`
}

type User struct {
	Model
	FirstName       string       `json:"firstName" gorm:"type:text;not null"`
	LastName        string       `json:"lastName" gorm:"type:text;not null"`
	Password        string       `json:"-" gorm:"type:text;not null"`
	Email           string       `json:"email" gorm:"type:text;uniqueIndex;not null"`
	Phone           string       `json:"phone" gorm:"type:text;not null"`
	ProfileImg      string       `json:"profileImg,omitempty" gorm:"type:text"`
	Verified        bool         `json:"verified" gorm:"not null;default:false"`
	TermAccepted    bool         `json:"termAccepted" gorm:"not null;default:false"`
	AuthenticatorID string       `json:"authenticatorId,omitempty" gorm:"type:text"`
	Address         Address      `json:"address" gorm:"type:jsonb;serializer:json"`
	BankInfo        BankInfo     `json:"bankInfo" gorm:"type:jsonb;serializer:json"`
	MemberOf        []Membership `json:"memberOf" gorm:"type:jsonb;serializer:json;column:member_of"`

	Contributions []Contribution `json:"contributions,omitempty" gorm:"foreignKey:UserID"`
	Loans         []Loan         `json:"loans,omitempty" gorm:"foreignKey:BeneficiaryID"`
	Payments      []Payment      `json:"payments,omitempty" gorm:"foreignKey:PayerID"`
	Repayments    []Repayment    `json:"repayments,omitempty" gorm:"foreignKey:PayerID"`
	Referrals     []Referral     `json:"referrals,omitempty" gorm:"foreignKey:UserID"`
	ProfitShares  []ProfitShare  `json:"profitShares,omitempty" gorm:"foreignKey:UserID"`
}

// Scope resolves the strongest authorization role the user holds across
// cooperative memberships. Plain users fall back to USER.
func (u *User) Scope() Role {
	scope := RoleUser
	for _, m := range u.MemberOf {
		switch m.Role {
		case RoleSuperAdmin, RoleAdmin:
			return m.Role
		case RoleCoopAdmin:
			scope = RoleCoopAdmin
		}
	}
	return scope
}
