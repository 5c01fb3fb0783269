package models

import "time"

// RoomCalendar holds one capacity counter per hotel, room category and day.
// We prefer per-day rows for simplicity and fast queries; they are bumped
// transactionally at booking creation and released on pre-check-in
// cancellation. A cancellation after check-in does not free historical
// capacity since the stay occurred.
type RoomCalendar struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	HotelID  uint   `json:"hotelID" gorm:"not null;index:idx_hotel_cat_date,unique"`
	RoomType string `json:"roomType" gorm:"type:varchar(10);index:idx_hotel_cat_date,unique"`

	Date        time.Time `json:"date" gorm:"type:date;index:idx_hotel_cat_date,unique"`
	BookedCount int       `json:"bookedCount" gorm:"default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
