package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	IntentStatusCreated   = "created"
	IntentStatusSucceeded = "succeeded"
	IntentStatusFailed    = "failed"
)

// PaymentIntentRecord mirrors the processor-side payment intent. The
// processor owns the object; we store its id, the checkout attempt that
// produced it and, once the booking row exists, the booking it funded.
type PaymentIntentRecord struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	IntentID string `json:"intentID" gorm:"uniqueIndex;size:64"`
	// AttemptKey identifies one logical checkout attempt; at most one
	// intent is ever created per key, however often the client retries.
	AttemptKey string `json:"attemptKey" gorm:"uniqueIndex;size:64"`

	// ClientSecret is handed back to the browser so the processor SDK can
	// collect the card; it is never serialized in API responses.
	ClientSecret string `json:"-" gorm:"size:128"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" gorm:"size:3;default:'USD'"`
	Status   string  `json:"status" gorm:"type:varchar(12);index"`

	BookingID *uint          `json:"bookingID" gorm:"index"`
	Metadata  datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
