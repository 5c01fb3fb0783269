package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"

	RefundStatusNone      = "none"
	RefundStatusPending   = "pending"
	RefundStatusCompleted = "completed"
)

type Booking struct {
	gorm.Model
	HotelID uint `json:"hotelID" gorm:"not null;index"`
	GuestID uint `json:"guestID" gorm:"index"`

	CheckInDate  time.Time `json:"checkInDate" gorm:"type:date;index"`
	CheckOutDate time.Time `json:"checkOutDate" gorm:"type:date"`
	Days         int       `json:"days"`
	RoomType     string    `json:"roomType" gorm:"type:varchar(10)"` // AC | NON_AC
	RoomID       *uint     `json:"roomID"`                           // optional assigned room

	TotalPrice     float64 `json:"totalPrice"`
	InitialPayment float64 `json:"initialPayment"` // deposit, round(totalPrice/2); 0 for offline cash
	Status         string  `json:"status" gorm:"type:varchar(12);index"`

	// Processor references; bookkeeping only, the booking row is the truth.
	PaymentRef string `json:"paymentRef" gorm:"index"`
	CardLast4  string `json:"cardLast4" gorm:"size:4"`

	RefundAmount float64    `json:"refundAmount"`
	RefundStatus string     `json:"refundStatus" gorm:"type:varchar(12);default:'none'"`
	RefundedAt   *time.Time `json:"refundedAt"`
	CancelledAt  *time.Time `json:"cancelledAt"`
	CancelledBy  uint       `json:"cancelledBy"`

	// Offline cash bookings are entered by the owner on behalf of the guest
	// and never touch the payment processor.
	OfflineCash bool `json:"offlineCash" gorm:"default:false"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	Guest *User  `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Room  *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Occupies reports whether the booking consumes capacity on the given day,
// i.e. the day falls inside [CheckInDate, CheckOutDate).
func (b *Booking) Occupies(day time.Time) bool {
	return !day.Before(b.CheckInDate) && day.Before(b.CheckOutDate)
}
