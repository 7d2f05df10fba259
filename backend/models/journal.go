package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntry is immutable once written. Date is a plain calendar date kept
// as "2006-01-02" so range filters compare lexicographically.
type JournalEntry struct {
	ID        string `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Date      string `gorm:"index"`
	Content   string
	Health    string // "良好", "普通", "悪い" — open string, not an enum
	Reaction  string // optional emoji
	IsSystem  bool   `gorm:"default:false"` // auto-generated by the login ledger
	CreatedAt time.Time
}

func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
