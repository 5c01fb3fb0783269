package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model
	OwnerID     uint    `json:"ownerID" gorm:"index"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AddressLine string  `json:"addressLine"`
	City        string  `json:"city" gorm:"index"`
	Country     string  `json:"country"`
	PriceAC     float64 `json:"priceAC"`    // nightly price for AC rooms
	PriceNonAC  float64 `json:"priceNonAC"` // nightly price for Non-AC rooms
	// DailyCapacity is the max simultaneous occupied room-nights per day.
	// 0 means unlimited.
	DailyCapacity int            `json:"dailyCapacity" gorm:"default:0"`
	Amenities     datatypes.JSON `json:"amenities"`
	Images        datatypes.JSON `json:"images"`
	IsActive      *bool          `json:"isActive" gorm:"default:true"`
	Rating        float32        `json:"rating"`
	Rooms         []Room         `json:"rooms,omitempty"`
	Bookings      []Booking      `json:"bookings,omitempty"`
	Owner         User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`

	// Admin moderation; hotels with bookings are never hard-deleted,
	// only deactivated through this status.
	Status string `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, suspended
}
