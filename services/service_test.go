package services

import (
	"testing"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testNow is the fixed "current" instant tests run against.
var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	storage.Migrate(db)
	return db
}

func testLedger(db *gorm.DB) *BookingLedger {
	l := NewBookingLedger(db)
	l.now = func() time.Time { return testNow }
	return l
}

func createTestHotel(t *testing.T, db *gorm.DB, capacity int) *models.Hotel {
	active := true
	hotel := models.Hotel{
		OwnerID:       1,
		Name:          "Test Hotel",
		City:          "Pune",
		PriceAC:       200,
		PriceNonAC:    120,
		DailyCapacity: capacity,
		IsActive:      &active,
		Status:        "active",
	}
	require.NoError(t, db.Create(&hotel).Error)
	return &hotel
}

func createTestGuest(t *testing.T, db *gorm.DB, email, username string) *models.User {
	guest := models.User{
		FirstName: "Test",
		LastName:  "Guest",
		Email:     email,
		Username:  username,
		Role:      "guest",
	}
	require.NoError(t, db.Create(&guest).Error)
	return &guest
}

// checkIn returns a check-in day the given number of days after testNow.
func checkIn(daysAhead int) time.Time {
	return DayOf(testNow).AddDate(0, 0, daysAhead)
}
