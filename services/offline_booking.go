package services

import (
	"strings"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GuestContact is the contact bundle an owner enters for a walk-in guest.
type GuestContact struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Country     string `json:"country" validate:"required"`
	CountryCode string `json:"countryCode" validate:"required"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

type OfflineBookingInput struct {
	HotelID     uint
	Contact     GuestContact
	CheckInDate time.Time
	Days        int
	RoomType    string
	RoomID      *uint
}

// OfflineBookingCreator records a cash/in-person booking taken by the
// hotel owner: it provisions the guest account and writes a confirmed
// booking in one transaction, with no deposit or payment-intent flow.
type OfflineBookingCreator struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOfflineBookingCreator(db *gorm.DB) *OfflineBookingCreator {
	return &OfflineBookingCreator{db: db, now: time.Now}
}

// Create validates the contact bundle, provisions the guest and books
// the stay. Duplicate email or username surface as Conflict with the
// offending field named, distinguishable from an availability Conflict
// so the client can show the right inline error.
func (c *OfflineBookingCreator) Create(in OfflineBookingInput) (*models.Booking, error) {
	if err := validateContact(&in.Contact); err != nil {
		return nil, err
	}

	var booking *models.Booking
	err := c.db.Transaction(func(tx *gorm.DB) error {
		email := strings.ToLower(strings.TrimSpace(in.Contact.Email))
		username := strings.TrimSpace(in.Contact.Username)

		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Field: "email"}
		}
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Field: "username"}
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Contact.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		first, last := splitName(in.Contact.Name)
		guest := models.User{
			FirstName:   first,
			LastName:    last,
			Email:       email,
			Username:    username,
			PhoneNumber: utils.FormatPhoneNumber(in.Contact.Phone, in.Contact.CountryCode),
			Password:    string(hashed),
			Country:     in.Contact.Country,
			CountryCode: in.Contact.CountryCode,
			Role:        "guest",
		}
		if err := tx.Create(&guest).Error; err != nil {
			return err
		}

		b, err := createBookingTx(tx, c.now(), CreateBookingInput{
			HotelID:     in.HotelID,
			GuestID:     guest.ID,
			CheckInDate: in.CheckInDate,
			Days:        in.Days,
			RoomType:    in.RoomType,
			RoomID:      in.RoomID,
			OfflineCash: true,
		})
		if err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func validateContact(c *GuestContact) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return &ValidationError{Field: "name", Reason: "is required"}
	case strings.TrimSpace(c.Email) == "":
		return &ValidationError{Field: "email", Reason: "is required"}
	case strings.TrimSpace(c.Username) == "":
		return &ValidationError{Field: "username", Reason: "is required"}
	case strings.TrimSpace(c.Country) == "":
		return &ValidationError{Field: "country", Reason: "is required"}
	case len(c.Password) < 6:
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	case !utils.ValidatePhoneNumber(c.Phone):
		return &ValidationError{Field: "phone", Reason: "is not a valid phone number"}
	}
	return nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func nightlyPrice(h *models.Hotel, roomType string) float64 {
	if roomType == models.RoomTypeAC {
		return h.PriceAC
	}
	return h.PriceNonAC
}
