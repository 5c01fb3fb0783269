package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingValidation(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 0)
	ledger := testLedger(db)

	cases := []struct {
		name  string
		in    CreateBookingInput
		field string
	}{
		{
			name:  "zero days",
			in:    CreateBookingInput{HotelID: hotel.ID, GuestID: 1, CheckInDate: checkIn(1), Days: 0, RoomType: models.RoomTypeAC, TotalPrice: 100},
			field: "days",
		},
		{
			name:  "bad room type",
			in:    CreateBookingInput{HotelID: hotel.ID, GuestID: 1, CheckInDate: checkIn(1), Days: 1, RoomType: "SUITE", TotalPrice: 100},
			field: "roomType",
		},
		{
			name:  "check-in in the past",
			in:    CreateBookingInput{HotelID: hotel.ID, GuestID: 1, CheckInDate: checkIn(-1), Days: 1, RoomType: models.RoomTypeAC, TotalPrice: 100},
			field: "checkInDate",
		},
		{
			name:  "non-positive price",
			in:    CreateBookingInput{HotelID: hotel.ID, GuestID: 1, CheckInDate: checkIn(1), Days: 1, RoomType: models.RoomTypeAC, TotalPrice: 0},
			field: "totalPrice",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.CreateBooking(tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateBookingToday(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 0)
	ledger := testLedger(db)

	// same-day check-in is allowed, only strictly past days are not
	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     1,
		CheckInDate: testNow,
		Days:        1,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  200,
		OfflineCash: true,
	})
	require.NoError(t, err)
	assert.Equal(t, DayOf(testNow), b.CheckInDate)
	assert.Equal(t, DayOf(testNow).AddDate(0, 0, 1), b.CheckOutDate)
}

func TestCreateBookingUnknownHotel(t *testing.T) {
	db := setupTestDB(t)
	ledger := testLedger(db)
	_, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     42,
		GuestID:     1,
		CheckInDate: checkIn(1),
		Days:        1,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  100,
	})
	assert.True(t, IsNotFound(err))
}

func TestCreateBookingLastSlotConflict(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 1)
	ledger := testLedger(db)

	in := CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     1,
		CheckInDate: checkIn(2),
		Days:        2,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  400,
		OfflineCash: true,
	}
	_, err := ledger.CreateBooking(in)
	require.NoError(t, err)

	in.GuestID = 2
	_, err = ledger.CreateBooking(in)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{
		checkIn(2).Format(dayFormat),
		checkIn(3).Format(dayFormat),
	}, conflict.ExhaustedDates)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Where("hotel_id = ?", hotel.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCancelBookingRecordsRefund(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:        hotel.ID,
		GuestID:        guest.ID,
		CheckInDate:    checkIn(3),
		Days:           2,
		RoomType:       models.RoomTypeAC,
		TotalPrice:     1000,
		InitialPayment: 500,
		PaymentRef:     "pi_test",
	})
	require.NoError(t, err)

	cancelled, err := ledger.CancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, 500.0, cancelled.RefundAmount)
	assert.Equal(t, models.RefundStatusPending, cancelled.RefundStatus)
	assert.Equal(t, guest.ID, cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, testNow, *cancelled.CancelledAt)
}

func TestCancelBookingInsideCutoff(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:        hotel.ID,
		GuestID:        guest.ID,
		CheckInDate:    checkIn(1),
		Days:           1,
		RoomType:       models.RoomTypeAC,
		TotalPrice:     200,
		InitialPayment: 100,
	})
	require.NoError(t, err)

	// check-in is tomorrow midnight, less than 24h from testNow noon
	_, err = ledger.CancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancelBookingForbidden(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	stranger := createTestGuest(t, db, "other@example.com", "other")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     guest.ID,
		CheckInDate: checkIn(3),
		Days:        1,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  200,
		OfflineCash: true,
	})
	require.NoError(t, err)

	_, err = ledger.CancelBooking(b.ID, Actor{UserID: stranger.ID, Role: "guest"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelBookingByHotelOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestGuest(t, db, "owner@example.com", "owner")
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     guest.ID,
		CheckInDate: checkIn(3),
		Days:        1,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  200,
		OfflineCash: true,
	})
	require.NoError(t, err)

	cancelled, err := ledger.CancelBooking(b.ID, Actor{UserID: owner.ID, Role: "owner"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
}

func TestCancelBookingTwice(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:        hotel.ID,
		GuestID:        guest.ID,
		CheckInDate:    checkIn(3),
		Days:           1,
		RoomType:       models.RoomTypeAC,
		TotalPrice:     200,
		InitialPayment: 100,
	})
	require.NoError(t, err)

	first, err := ledger.CancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	require.NoError(t, err)

	_, err = ledger.CancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	assert.ErrorIs(t, err, ErrInvalidState)

	// the refund from the first cancellation is recorded exactly once
	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, b.ID).Error)
	assert.Equal(t, first.RefundAmount, reloaded.RefundAmount)
	assert.Equal(t, models.RefundStatusPending, reloaded.RefundStatus)
}

func TestAdminCancelSkipsCutoff(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:        hotel.ID,
		GuestID:        guest.ID,
		CheckInDate:    checkIn(1),
		Days:           1,
		RoomType:       models.RoomTypeAC,
		TotalPrice:     200,
		InitialPayment: 100,
	})
	require.NoError(t, err)

	_, err = ledger.AdminCancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := ledger.AdminCancelBooking(b.ID, Actor{UserID: 99, Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	// the override refunds the deposit even inside the cutoff
	assert.Equal(t, 100.0, cancelled.RefundAmount)
	assert.Equal(t, models.RefundStatusPending, cancelled.RefundStatus)
}

func TestIssueRefund(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:        hotel.ID,
		GuestID:        guest.ID,
		CheckInDate:    checkIn(3),
		Days:           1,
		RoomType:       models.RoomTypeAC,
		TotalPrice:     200,
		InitialPayment: 100,
	})
	require.NoError(t, err)

	// nothing pending yet
	_, err = ledger.IssueRefund(b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = ledger.CancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	require.NoError(t, err)

	refunded, err := ledger.IssueRefund(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusCompleted, refunded.RefundStatus)
	require.NotNil(t, refunded.RefundedAt)

	_, err = ledger.IssueRefund(b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

// Full lifecycle: 1000 total, 500 deposit, cancel two days out, refund
// paid, dates free again.
func TestBookingLifecycle(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 1)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	deposit := DepositAmount(1000)
	require.Equal(t, 500.0, deposit)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:        hotel.ID,
		GuestID:        guest.ID,
		CheckInDate:    checkIn(2),
		Days:           3,
		RoomType:       models.RoomTypeAC,
		TotalPrice:     1000,
		InitialPayment: deposit,
		PaymentRef:     "pi_lifecycle",
		CardLast4:      "4242",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)

	res, err := CheckAvailability(db, hotel.ID, checkIn(2), 3, 1)
	require.NoError(t, err)
	assert.False(t, res.Available)

	cancelled, err := ledger.CancelBooking(b.ID, Actor{UserID: guest.ID, Role: "guest"})
	require.NoError(t, err)
	assert.Equal(t, 500.0, cancelled.RefundAmount)

	refunded, err := ledger.IssueRefund(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusCompleted, refunded.RefundStatus)

	res, err = CheckAvailability(db, hotel.ID, checkIn(2), 3, 1)
	require.NoError(t, err)
	assert.True(t, res.Available)
}

// Capacity 2: two overlapping bookings fill the hotel, a third is
// rejected naming the exhausted dates, and cancelling one frees exactly
// one slot for the retry.
func TestBookingFillsAndFreesCapacity(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	ledger := testLedger(db)

	in := CreateBookingInput{
		HotelID:     hotel.ID,
		CheckInDate: checkIn(3),
		Days:        2,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  400,
		OfflineCash: true,
	}

	in.GuestID = 1
	first, err := ledger.CreateBooking(in)
	require.NoError(t, err)

	in.GuestID = 2
	_, err = ledger.CreateBooking(in)
	require.NoError(t, err)

	in.GuestID = 3
	_, err = ledger.CreateBooking(in)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{
		checkIn(3).Format(dayFormat),
		checkIn(4).Format(dayFormat),
	}, conflict.ExhaustedDates)

	_, err = ledger.CancelBooking(first.ID, Actor{UserID: 1, Role: "guest"})
	require.NoError(t, err)

	retry, err := ledger.CreateBooking(in)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, retry.Status)

	// the freed slot is gone again
	in.GuestID = 4
	_, err = ledger.CreateBooking(in)
	require.ErrorAs(t, err, &conflict)
}

func TestCompletedStayKeepsHistory(t *testing.T) {
	db := setupTestDB(t)
	hotel := createTestHotel(t, db, 2)
	guest := createTestGuest(t, db, "guest@example.com", "guest")
	ledger := testLedger(db)

	b, err := ledger.CreateBooking(CreateBookingInput{
		HotelID:     hotel.ID,
		GuestID:     guest.ID,
		CheckInDate: checkIn(1),
		Days:        2,
		RoomType:    models.RoomTypeAC,
		TotalPrice:  400,
		OfflineCash: true,
	})
	require.NoError(t, err)

	// move the clock past check-in and cancel via the admin override
	later := testLedger(db)
	later.now = func() time.Time { return testNow.Add(36 * time.Hour) }
	_, err = later.AdminCancelBooking(b.ID, Actor{UserID: 99, Role: "admin"})
	require.NoError(t, err)

	// counters for a stay already begun are not released
	var rows []models.RoomCalendar
	require.NoError(t, db.Where("hotel_id = ?", hotel.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 1, r.BookedCount)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}
