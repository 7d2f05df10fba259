package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendAndListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormJournalStore(db)

	id, err := store.Append(1, "今日はHTMLを勉強した", "良好", "😊", "2024-01-10")
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = store.Append(1, "CSSが難しい", "普通", "😞", "2024-01-20")
	assert.NoError(t, err)

	entries, err := store.List(1, "", "")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "2024-01-20", entries[0].Date)
	assert.Equal(t, "2024-01-10", entries[1].Date)
	assert.Equal(t, "😞", entries[0].Reaction)
}

func TestListDateRangeIsInclusive(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormJournalStore(db)

	dates := []string{"2023-12-31", "2024-01-01", "2024-01-15", "2024-01-31", "2024-02-01"}
	for _, date := range dates {
		_, err := store.Append(1, "entry "+date, "良好", "", date)
		assert.NoError(t, err)
	}

	entries, err := store.List(1, "2024-01-01", "2024-01-31")
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "2024-01-31", entries[0].Date)
	assert.Equal(t, "2024-01-15", entries[1].Date)
	assert.Equal(t, "2024-01-01", entries[2].Date)
}

func TestListUnknownUserIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormJournalStore(db)

	entries, err := store.List(7, "", "")
	assert.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestListIsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormJournalStore(db)

	_, err := store.Append(1, "mine", "良好", "", "2024-03-01")
	assert.NoError(t, err)
	_, err = store.Append(2, "theirs", "普通", "", "2024-03-01")
	assert.NoError(t, err)

	entries, err := store.List(1, "", "")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "mine", entries[0].Content)
}

func TestAppendSystemFlagsEntry(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormJournalStore(db)

	_, err := store.AppendSystem(1, "ログインしました", "2024-03-05")
	assert.NoError(t, err)

	entries, err := store.List(1, "", "")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].IsSystem)
	assert.Empty(t, entries[0].Health)
}

func TestAppendDefaultsDateToToday(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormJournalStore(db)

	_, err := store.Append(1, "dated today", "良好", "", "")
	assert.NoError(t, err)

	entries, err := store.List(1, "", "")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, entries[0].Date)
}
