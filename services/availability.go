package services

import (
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dayFormat = "2006-01-02"

// DayOf truncates a timestamp to its calendar day in UTC. All capacity
// accounting runs on whole days.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type AvailabilityResult struct {
	Available bool `json:"available"`
	// Remaining is nil for unlimited-capacity hotels, otherwise the number
	// of rooms still free on the tightest date of the range.
	Remaining      *int     `json:"remaining"`
	ExhaustedDates []string `json:"exhaustedDates"`
}

// CheckAvailability answers whether a hotel can take one more stay of the
// given shape. It is read-only; clients use it as an advisory check
// before showing the payment form, and booking creation re-runs it
// inside the write transaction as the authoritative check.
func CheckAvailability(db *gorm.DB, hotelID uint, checkIn time.Time, days, roomCount int) (*AvailabilityResult, error) {
	var hotel models.Hotel
	if err := db.First(&hotel, hotelID).Error; err != nil {
		return nil, err
	}
	return checkHotelAvailability(db, &hotel, checkIn, days, roomCount)
}

// checkHotelAvailability counts consumed capacity per day from the live
// bookings table: only pending/confirmed stays count, so a cancelled
// booking frees its dates immediately no matter when it was cancelled.
// The RoomCalendar counters are ledger bookkeeping and deliberately not
// consulted here.
func checkHotelAvailability(db *gorm.DB, hotel *models.Hotel, checkIn time.Time, days, roomCount int) (*AvailabilityResult, error) {
	result := &AvailabilityResult{Available: true, ExhaustedDates: []string{}}
	if hotel.DailyCapacity <= 0 {
		// 0 means unlimited
		return result, nil
	}

	from := DayOf(checkIn)
	to := from.AddDate(0, 0, days)

	var bookings []models.Booking
	err := db.Where(
		"hotel_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
		hotel.ID,
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed},
		to, from,
	).Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	maxConsumed := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		consumed := 0
		for i := range bookings {
			if bookings[i].Occupies(d) {
				consumed++
			}
		}
		if consumed > maxConsumed {
			maxConsumed = consumed
		}
		if consumed+roomCount > hotel.DailyCapacity {
			result.ExhaustedDates = append(result.ExhaustedDates, d.Format(dayFormat))
		}
	}

	result.Available = len(result.ExhaustedDates) == 0
	if result.Available {
		remaining := hotel.DailyCapacity - maxConsumed
		result.Remaining = &remaining
	}
	return result, nil
}

// reserveCalendar bumps the per-day counters for a newly created booking.
// Counters are kept even for unlimited-capacity hotels so a later
// capacity change still has history behind it.
func reserveCalendar(tx *gorm.DB, hotelID uint, roomType string, checkIn time.Time, days int) error {
	for i := 0; i < days; i++ {
		row := models.RoomCalendar{
			HotelID:     hotelID,
			RoomType:    roomType,
			Date:        DayOf(checkIn).AddDate(0, 0, i),
			BookedCount: 1,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hotel_id"}, {Name: "room_type"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"booked_count": gorm.Expr("booked_count + 1"),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// releaseCalendar undoes a reservation's counters. Only called for
// cancellations that happen before check-in; a stay that occurred keeps
// its historical capacity.
func releaseCalendar(tx *gorm.DB, hotelID uint, roomType string, checkIn time.Time, days int) error {
	from := DayOf(checkIn)
	to := from.AddDate(0, 0, days)
	return tx.Model(&models.RoomCalendar{}).
		Where("hotel_id = ? AND room_type = ? AND date >= ? AND date < ? AND booked_count > 0",
			hotelID, roomType, from, to).
		UpdateColumn("booked_count", gorm.Expr("booked_count - 1")).Error
}
