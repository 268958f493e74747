package models

import (
	"gorm.io/gorm"
)

// Day status values. Unknown is the default for dates with no record.
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
	StatusUnknown     = "unknown"
)

// DayStatuses lists every valid status, for input whitelisting.
var DayStatuses = []string{StatusAvailable, StatusUnavailable, StatusUnknown}

// CalendarDay holds the admin-set status for a single date.
// Date is the unique key ("YYYY-MM-DD"); at most one record exists per date.
type CalendarDay struct {
	gorm.Model
	Date      string `json:"date" gorm:"size:10;uniqueIndex;not null"`
	Status    string `json:"status" gorm:"size:20;not null;default:unknown"`
	Message   string `json:"message" gorm:"type:text"`
	UpdatedBy uint   `json:"updatedBy" gorm:"index"`
}
