package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studylog/backend/models"
)

// LoginLedger records which calendar days had at least one login, grouped per
// month. Marking the same UTC day twice only refreshes the last-login date.
type LoginLedger interface {
	RecordLogin(userID uint, when time.Time) (bool, error)
	GetLoginDays(userID uint, year int, month int) ([]int, error)
}

type GormLoginLedger struct {
	DB *gorm.DB
}

func NewGormLoginLedger(db *gorm.DB) *GormLoginLedger {
	return &GormLoginLedger{DB: db}
}

// RecordLogin marks when's UTC day in the user's ledger and refreshes the
// user's last-login date. Returns true when the day was not yet marked.
func (ll *GormLoginLedger) RecordLogin(userID uint, when time.Time) (bool, error) {
	when = when.UTC()
	yearMonth := when.Format("2006-01")
	dateStr := when.Format("2006-01-02")
	day := when.Day()

	var month models.LoginMonth
	err := ll.DB.Where("user_id = ? AND year_month = ?", userID, yearMonth).First(&month).Error
	newDay := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		raw, _ := json.Marshal([]int{day})
		month = models.LoginMonth{
			UserID:    userID,
			YearMonth: yearMonth,
			Days:      datatypes.JSON(raw),
		}
		if err := ll.DB.Create(&month).Error; err != nil {
			return false, storeErr(err)
		}
		newDay = true
	case err != nil:
		return false, storeErr(err)
	default:
		days, derr := decodeDays(month.Days)
		if derr != nil {
			return false, derr
		}
		if !containsDay(days, day) {
			days = append(days, day)
			raw, _ := json.Marshal(days)
			uerr := ll.DB.Model(&models.LoginMonth{}).
				Where("id = ?", month.ID).
				Update("days", datatypes.JSON(raw)).Error
			if uerr != nil {
				return false, storeErr(uerr)
			}
			newDay = true
		}
	}

	uerr := ll.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_date", dateStr).Error
	if uerr != nil {
		return false, storeErr(uerr)
	}
	return newDay, nil
}

// GetLoginDays returns the day set stored for year/month, empty if absent.
func (ll *GormLoginLedger) GetLoginDays(userID uint, year int, month int) ([]int, error) {
	yearMonth := fmt.Sprintf("%04d-%02d", year, month)

	var record models.LoginMonth
	err := ll.DB.Where("user_id = ? AND year_month = ?", userID, yearMonth).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []int{}, nil
		}
		return nil, storeErr(err)
	}
	return decodeDays(record.Days)
}

func decodeDays(raw datatypes.JSON) ([]int, error) {
	if len(raw) == 0 {
		return []int{}, nil
	}
	var days []int
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, storeErr(err)
	}
	if days == nil {
		days = []int{}
	}
	return days, nil
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
