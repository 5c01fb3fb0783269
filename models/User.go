package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email" gorm:"uniqueIndex"`
	Username    string  `json:"username" gorm:"uniqueIndex"`
	PhoneNumber string  `json:"phoneNumber" gorm:"index"`
	Password    string  `json:"-"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Hotels      []Hotel `json:"hotels,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Role        string  `json:"role" gorm:"type:varchar(20);default:guest;index"` // guest, owner, admin
}
