package models

import (
	"time"
)

// AuditLog is the append-only trail of privileged mutations: admin
// booking cancellations ("booking.cancel") and refund issuance
// ("booking.refund") each write one row with the booking snapshot
// before and after the action.
type AuditLog struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	AdminUserID uint `json:"adminUserID" gorm:"index;not null"`
	// Action is "<resource>.<verb>", e.g. booking.cancel.
	Action       string `json:"action" gorm:"size:64;index"`
	ResourceType string `json:"resourceType" gorm:"size:64;index"` // booking
	ResourceID   uint   `json:"resourceID" gorm:"index"`
	// JSON snapshots of the booking around the mutation; refunds and
	// cancellations are disputes waiting to happen, so both sides are kept.
	BeforeJSON string    `json:"beforeJSON" gorm:"type:text"`
	AfterJSON  string    `json:"afterJSON" gorm:"type:text"`
	IPAddress  string    `json:"ipAddress" gorm:"size:64"`
	CreatedAt  time.Time `json:"createdAt"`
}
