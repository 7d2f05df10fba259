package services

import (
	"time"

	"gorm.io/gorm"

	"studylog/backend/models"
)

// JournalStore keeps per-user, date-stamped entries. Entries are immutable;
// there is no update or delete. Content validation is the caller's job.
type JournalStore interface {
	Append(userID uint, content, health, reaction, date string) (string, error)
	AppendSystem(userID uint, content, date string) (string, error)
	List(userID uint, startDate, endDate string) ([]models.JournalEntry, error)
}

type GormJournalStore struct {
	DB *gorm.DB
}

func NewGormJournalStore(db *gorm.DB) *GormJournalStore {
	return &GormJournalStore{DB: db}
}

// Append inserts a new entry and returns its ID. An empty date defaults to
// today (UTC calendar date).
func (js *GormJournalStore) Append(userID uint, content, health, reaction, date string) (string, error) {
	return js.create(userID, content, health, reaction, date, false)
}

// AppendSystem inserts an auto-generated entry, flagged so pages can render it
// apart from user-authored ones.
func (js *GormJournalStore) AppendSystem(userID uint, content, date string) (string, error) {
	return js.create(userID, content, "", "", date, true)
}

func (js *GormJournalStore) create(userID uint, content, health, reaction, date string, isSystem bool) (string, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	entry := models.JournalEntry{
		UserID:   userID,
		Date:     date,
		Content:  content,
		Health:   health,
		Reaction: reaction,
		IsSystem: isSystem,
	}
	if err := js.DB.Create(&entry).Error; err != nil {
		return "", storeErr(err)
	}
	return entry.ID, nil
}

// List returns the user's entries newest-date-first, optionally restricted to
// date in [startDate, endDate] inclusive. Dates compare as ISO strings.
func (js *GormJournalStore) List(userID uint, startDate, endDate string) ([]models.JournalEntry, error) {
	query := js.DB.Where("user_id = ?", userID)
	if startDate != "" && endDate != "" {
		query = query.Where("date >= ? AND date <= ?", startDate, endDate)
	}

	var entries []models.JournalEntry
	if err := query.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, storeErr(err)
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	return entries, nil
}
