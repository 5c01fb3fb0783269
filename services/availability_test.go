package services

import (
	"testing"

	"github.com/Tusharborul/hotelmanagement-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailabilityUnlimitedCapacity(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 0)
	createTestGuest(t, db, "guest@example.com", "guest")

	ledger := testLedger(db)
	for i := 0; i < 5; i++ {
		_, err := ledger.CreateBooking(CreateBookingInput{
			HotelID:     hotel.ID,
			GuestID:     1,
			CheckInDate: checkIn(3),
			Days:        2,
			RoomType:    models.RoomTypeAC,
			TotalPrice:  400,
			OfflineCash: true,
		})
		require.NoError(t, err)
	}

	res, err := CheckAvailability(db, hotel.ID, checkIn(3), 2, 1)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Nil(t, res.Remaining)
	assert.Empty(t, res.ExhaustedDates)
}

func TestCheckAvailabilityReportsRemaining(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 3)

	ledger := testLedger(db)
	_, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     1,
		CheckInDate: checkIn(3),
		Days:        2,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  400,
		OfflineCash: true,
	})
	require.NoError(t, err)

	res, err := CheckAvailability(db, hotel.ID, checkIn(3), 2, 1)
	require.NoError(t, err)
	assert.True(t, res.Available)
	require.NotNil(t, res.Remaining)
	assert.Equal(t, 2, *res.Remaining)
}

func TestCheckAvailabilityExhaustedDates(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)

	ledger := testLedger(db)
	for i := 0; i < 2; i++ {
		_, err := ledger.CreateBooking(CreateBookingInput{
			HotelID:     hotel.ID,
			GuestID:     1,
			CheckInDate: checkIn(3),
			Days:        2,
			RoomType:    models.RoomTypeNonAC,
			TotalPrice:  240,
			OfflineCash: true,
		})
		require.NoError(t, err)
	}

	// a range only partially overlapping the full days names exactly
	// the full days as exhausted
	res, err := CheckAvailability(db, hotel.ID, checkIn(4), 3, 1)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, []string{checkIn(4).Format(dayFormat)}, res.ExhaustedDates)
	assert.Nil(t, res.Remaining)
}

func TestCheckAvailabilityCountsCategoriesTogether(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)

	ledger := testLedger(db)
	for _, cat := range []string{models.RoomTypeAC, models.RoomTypeNonAC} {
		_, err := ledger.CreateBooking(CreateBookingInput{
			HotelID:     hotel.ID,
			GuestID:     1,
			CheckInDate: checkIn(3),
			Days:        1,
			RoomType:    cat,
			TotalPrice:  200,
			OfflineCash: true,
		})
		require.NoError(t, err)
	}

	// capacity is hotel-wide, the category split does not matter
	res, err := CheckAvailability(db, hotel.ID, checkIn(3), 1, 1)
	require.NoError(t, err)
	assert.False(t, res.Available)
}

func TestCheckAvailabilityIgnoresCancelledBookings(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 1)
	guest := createTestGuest(t, db, "guest@example.com", "guest")

	ledger := testLedger(db)
	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     guest.ID,
		CheckInDate: checkIn(5),
		Days:        2,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  400,
		OfflineCash: true,
	})
	require.NoError(t, err)

	res, err := CheckAvailability(db, hotel.ID, checkIn(5), 2, 1)
	require.NoError(t, err)
	assert.False(t, res.Available)

	_, err = ledger.CancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	require.NoError(t, err)

	// cancellation frees the dates immediately
	res, err = CheckAvailability(db, hotel.ID, checkIn(5), 2, 1)
	require.NoError(t, err)
	assert.True(t, res.Available)
	require.NotNil(t, res.Remaining)
	assert.Equal(t, 1, *res.Remaining)
}

func TestCheckAvailabilityUnknownHotel(t *testing.T) {
	db := setupTestDB(t)
	_, err := CheckAvailability(db, 999, checkIn(1), 1, 1)
	assert.True(t, IsNotFound(err))
}

func TestCalendarCountersFollowBookings(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 0)

	ledger := testLedger(db)
	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     1,
		CheckInDate: checkIn(3),
		Days:        2,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  400,
		OfflineCash: true,
	})
	require.NoError(t, err)

	var rows []models.RoomCalendar
	require.NoError(t, db.Where("hotel_id = ?", hotel.ID).Order("date").Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, models.RoomTypeAC, r.RoomType)
		assert.Equal(t, 1, r.BookedCount)
	}

	_, err = ledger.CancelBooking(b.ID, Actor{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	require.NoError(t, db.Where("hotel_id = ?", hotel.ID).Find(&rows).Error)
	for _, r := range rows {
		assert.Equal(t, 0, r.BookedCount)
	}
}
