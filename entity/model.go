package entity

import (
	"time"

	"github.com/google/uuid"
)

// Model carries the columns shared by every table: uuid primary key, lifecycle
// status and the two visibility flags. Deleted rows are never removed physically;
// default reads exclude both deleted and archived records.
type Model struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Status    Status    `json:"status" gorm:"type:text;index;not null;default:'PENDING'"`
	Archived  bool      `json:"archived" gorm:"not null;default:false;index"`
	Deleted   bool      `json:"deleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
