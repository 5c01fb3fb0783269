package services

import (
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
)

// CancellationCutoff is the hard window protecting owners from
// last-minute cancellations: a booking may only be cancelled strictly
// more than 24 hours before check-in.
const CancellationCutoff = 24 * time.Hour

// IsCancellable reports whether the booking may still be cancelled at
// the given instant. Already-cancelled bookings are never cancellable.
func IsCancellable(b *models.Booking, now time.Time) bool {
	if b.Status == models.BookingStatusCancelled {
		return false
	}
	return b.CheckInDate.Sub(now) > CancellationCutoff
}

// ComputeRefund returns the refund owed for a cancellation at the given
// instant. The deposit already paid is the ceiling, and the policy
// refunds it in full for any cancellation that clears the cutoff; there
// is no graduated schedule.
func ComputeRefund(b *models.Booking, now time.Time) float64 {
	if !IsCancellable(b, now) {
		return 0
	}
	return b.InitialPayment
}
