package models

import (
	"gorm.io/gorm"
)

// Room categories. Bookings are taken per category, not per physical room,
// so a room row mostly carries the human-facing number and its category.
const (
	RoomTypeAC    = "AC"
	RoomTypeNonAC = "NON_AC"
)

type Room struct {
	gorm.Model
	HotelID  uint   `json:"hotelID" gorm:"not null;index"`
	Number   string `json:"number"`
	Category string `json:"category" gorm:"type:varchar(10);index"` // AC | NON_AC
	// A room with booking history is deactivated instead of deleted.
	Active *bool `json:"active" gorm:"default:true"`
	Hotel  Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

func ValidRoomType(t string) bool {
	return t == RoomTypeAC || t == RoomTypeNonAC
}
