package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records every admin mutation of the calendar with before/after
// snapshots of the touched day record.
type AuditLog struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	AdminUserID uint           `json:"adminUserID" gorm:"index;not null"`
	Action      string         `json:"action" gorm:"size:64;index"`
	Date        string         `json:"date" gorm:"size:10;index"`
	Before      datatypes.JSON `json:"before"`
	After       datatypes.JSON `json:"after"`
	IPAddress   string         `json:"ipAddress" gorm:"size:64"`
	CreatedAt   time.Time      `json:"createdAt"`
}
