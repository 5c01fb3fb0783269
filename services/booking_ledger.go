package services

import (
	"errors"
	"math"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingLedger is the authoritative store of booking records: it owns
// creation, the status state machine and refund bookkeeping. Bookings
// are never deleted; cancellation is a status transition.
type BookingLedger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBookingLedger(db *gorm.DB) *BookingLedger {
	return &BookingLedger{db: db, now: time.Now}
}

// lockForUpdate takes a FOR UPDATE row lock on databases that support
// it. sqlite, used by the tests, has a single writer and no FOR UPDATE
// syntax, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Actor identifies who is performing a ledger mutation.
type Actor struct {
	UserID uint
	Role   string // guest, owner, admin
}

type CreateBookingInput struct {
	HotelID        uint
	GuestID        uint
	CheckInDate    time.Time
	Days           int
	RoomType       string
	RoomID         *uint
	TotalPrice     float64
	InitialPayment float64
	PaymentRef     string
	CardLast4      string
	// IntentID, when set, is the deposit intent funding this booking; it
	// is consumed inside the creation transaction so one intent can never
	// fund two bookings.
	IntentID    string
	OfflineCash bool
}

// CreateBooking persists a booking after re-running the availability
// check inside the same transaction that writes the row. A row lock on
// the hotel serializes competing creates for the same hotel, so two
// requests racing for the last capacity slot resolve to exactly one
// booking and one Conflict.
//
// Online callers must only invoke this after the deposit charge is
// confirmed succeeded; the caller wraps any post-charge failure with the
// charge reference for manual reconciliation.
func (l *BookingLedger) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	var booking *models.Booking
	err := l.db.Transaction(func(tx *gorm.DB) error {
		b, err := createBookingTx(tx, l.now(), in)
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

// createBookingTx is the transactional core of CreateBooking, exposed at
// package level so the offline creator can compose it with guest
// provisioning in a single transaction.
func createBookingTx(tx *gorm.DB, now time.Time, in CreateBookingInput) (*models.Booking, error) {
	if in.Days < 1 {
		return nil, &ValidationError{Field: "days", Reason: "must be at least 1"}
	}
	if !models.ValidRoomType(in.RoomType) {
		return nil, &ValidationError{Field: "roomType", Reason: "must be AC or NON_AC"}
	}
	checkIn := DayOf(in.CheckInDate)
	if checkIn.Before(DayOf(now)) {
		return nil, &ValidationError{Field: "checkInDate", Reason: "must not be in the past"}
	}

	var hotel models.Hotel
	if err := lockForUpdate(tx).First(&hotel, in.HotelID).Error; err != nil {
		return nil, err
	}

	// Offline cash bookings are priced server-side from the hotel's
	// nightly rate for the requested category.
	if in.OfflineCash && in.TotalPrice == 0 {
		in.TotalPrice = nightlyPrice(&hotel, in.RoomType) * float64(in.Days)
	}
	if in.TotalPrice <= 0 {
		return nil, &ValidationError{Field: "totalPrice", Reason: "must be positive"}
	}

	// Authoritative re-check; the client-side check was advisory only.
	avail, err := checkHotelAvailability(tx, &hotel, checkIn, in.Days, 1)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, &ConflictError{ExhaustedDates: avail.ExhaustedDates}
	}

	b := models.Booking{
		HotelID:        hotel.ID,
		GuestID:        in.GuestID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkIn.AddDate(0, 0, in.Days),
		Days:           in.Days,
		RoomType:       in.RoomType,
		RoomID:         in.RoomID,
		TotalPrice:     in.TotalPrice,
		InitialPayment: in.InitialPayment,
		Status:         models.BookingStatusConfirmed,
		PaymentRef:     in.PaymentRef,
		CardLast4:      in.CardLast4,
		RefundStatus:   models.RefundStatusNone,
		OfflineCash:    in.OfflineCash,
	}
	if err := tx.Create(&b).Error; err != nil {
		return nil, err
	}
	if in.IntentID != "" {
		// Consume the deposit intent atomically with the booking write;
		// a second booking racing for the same intent rolls back here.
		res := tx.Model(&models.PaymentIntentRecord{}).
			Where("intent_id = ? AND booking_id IS NULL", in.IntentID).
			Update("booking_id", b.ID)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrInvalidState
		}
	}
	if err := reserveCalendar(tx, hotel.ID, in.RoomType, checkIn, in.Days); err != nil {
		return nil, err
	}
	return &b, nil
}

// CancelBooking transitions a booking to cancelled on behalf of its
// guest, the hotel owner or an admin, enforcing the cancellation cutoff.
// Status and the cutoff are evaluated against one consistent snapshot
// under a row lock, so a booking already cancelled rejects a second
// cancellation with ErrInvalidState instead of double-recording a refund.
func (l *BookingLedger) CancelBooking(bookingID uint, actor Actor) (*models.Booking, error) {
	return l.cancel(bookingID, actor, false)
}

// AdminCancelBooking is the administrative override: it skips the
// cutoff check but keeps every other rule, including the one that a
// stay already begun never frees historical capacity.
func (l *BookingLedger) AdminCancelBooking(bookingID uint, actor Actor) (*models.Booking, error) {
	if actor.Role != "admin" {
		return nil, ErrForbidden
	}
	return l.cancel(bookingID, actor, true)
}

func (l *BookingLedger) cancel(bookingID uint, actor Actor, skipCutoff bool) (*models.Booking, error) {
	now := l.now()
	var out *models.Booking
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := lockForUpdate(tx).First(&b, bookingID).Error; err != nil {
			return err
		}

		if actor.Role != "admin" && actor.UserID != b.GuestID {
			var hotel models.Hotel
			if err := tx.First(&hotel, b.HotelID).Error; err != nil {
				return err
			}
			if hotel.OwnerID != actor.UserID {
				return ErrForbidden
			}
		}

		if b.Status == models.BookingStatusCancelled {
			return ErrInvalidState
		}
		if !skipCutoff && !IsCancellable(&b, now) {
			return ErrNotCancellable
		}

		refund := b.InitialPayment
		if !skipCutoff {
			refund = ComputeRefund(&b, now)
		}
		cancelledAt := now
		b.Status = models.BookingStatusCancelled
		b.CancelledAt = &cancelledAt
		b.CancelledBy = actor.UserID
		b.RefundAmount = refund
		if refund > 0 {
			b.RefundStatus = models.RefundStatusPending
		}
		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		// The ledger counters only release when the stay never started;
		// live availability frees regardless because cancelled bookings
		// stop counting in checkHotelAvailability.
		if b.CheckInDate.After(DayOf(now)) {
			if err := releaseCalendar(tx, b.HotelID, b.RoomType, b.CheckInDate, b.Days); err != nil {
				return err
			}
		}
		out = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IssueRefund marks a pending refund as paid out. It is the admin-side
// close of the refund loop; any external money movement is operational
// and happens outside the ledger, whose job is to be the single source
// of truth for "is a refund owed and has it been paid".
func (l *BookingLedger) IssueRefund(bookingID uint) (*models.Booking, error) {
	now := l.now()
	var out *models.Booking
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := lockForUpdate(tx).First(&b, bookingID).Error; err != nil {
			return err
		}
		if b.RefundStatus != models.RefundStatusPending {
			return ErrInvalidState
		}
		refundedAt := now
		b.RefundStatus = models.RefundStatusCompleted
		b.RefundedAt = &refundedAt
		if err := tx.Save(&b).Error; err != nil {
			return err
		}
		out = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DepositAmount is the upfront charge collected before a booking is
// finalized: half the total, rounded.
func DepositAmount(totalPrice float64) float64 {
	return math.Round(totalPrice / 2)
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
