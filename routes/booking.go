package routes

import (
	"errors"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/services"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
)

type PaymentDetailsInput struct {
	IntentID string `json:"intentID" validate:"required"`
	ChargeID string `json:"chargeID" validate:"required"`
	Last4    string `json:"last4" validate:"max=4"`
}

type CreateBookingInput struct {
	HotelID        uint                `json:"hotelID" validate:"required"`
	CheckInDate    string              `json:"checkInDate" validate:"required"`
	Days           int                 `json:"days" validate:"required,min=1"`
	RoomType       string              `json:"roomType" validate:"required,oneof=AC NON_AC"`
	TotalPrice     float64             `json:"totalPrice" validate:"required,gt=0"`
	InitialPayment float64             `json:"initialPayment" validate:"required,gt=0"`
	PaymentDetails PaymentDetailsInput `json:"paymentDetails" validate:"required"`
}

// POST /api/booking
//
// Online path. The deposit charge was already confirmed client-side;
// this handler verifies the recorded intent actually succeeded, writes
// the booking, then reconciles the intent in the background. A booking
// row is only ever created after a succeeded charge, so a payment
// failure can never leave a partial booking behind.
func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := parseDay(input.CheckInDate)
	if err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "validation_error", "invalid checkInDate format, expected YYYY-MM-DD")
		return
	}
	if input.InitialPayment != services.DepositAmount(input.TotalPrice) {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "validation_error", "initialPayment must be half of totalPrice")
		return
	}

	coordinator := paymentCoordinator()
	if err := coordinator.VerifyDepositIntent(input.PaymentDetails.IntentID, input.TotalPrice); err != nil {
		utils.JSONError(ctx, iris.StatusPaymentRequired, "payment_failed", "deposit payment is not confirmed for this booking")
		return
	}

	ledger := services.NewBookingLedger(storage.DB)
	booking, err := ledger.CreateBooking(services.CreateBookingInput{
		HotelID:        input.HotelID,
		GuestID:        userID,
		CheckInDate:    checkIn,
		Days:           input.Days,
		RoomType:       input.RoomType,
		TotalPrice:     input.TotalPrice,
		InitialPayment: input.InitialPayment,
		PaymentRef:     input.PaymentDetails.ChargeID,
		CardLast4:      input.PaymentDetails.Last4,
		IntentID:       input.PaymentDetails.IntentID,
	})
	if err != nil {
		// The charge already happened; every failure from here carries the
		// charge reference so the money can be reconciled manually.
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			ctx.StatusCode(iris.StatusConflict)
			ctx.JSON(iris.Map{
				"error":          "conflict",
				"message":        conflict.Error(),
				"exhaustedDates": conflict.ExhaustedDates,
				"chargeID":       input.PaymentDetails.ChargeID,
			})
			return
		}
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			handleServiceError(ctx, err)
			return
		}
		wrapped := &services.BookingWriteFailedError{ChargeID: input.PaymentDetails.ChargeID, Err: err}
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{
			"error":    "booking_write_failed",
			"message":  wrapped.Error(),
			"chargeID": input.PaymentDetails.ChargeID,
		})
		return
	}

	// Fire-and-forget reconciliation; the booking is the durable truth.
	coordinator.AttachBookingAsync(booking.ID, input.PaymentDetails.IntentID)

	utils.JSONData(ctx, booking)
}

// GET /api/booking — the authenticated guest's bookings, newest first.
func GetUserBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	if err := storage.DB.Where("guest_id = ?", userID).
		Preload("Hotel").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONData(ctx, bookings)
}

// GET /api/booking/hotel/{hotelID} — bookings of one of the owner's hotels.
func GetHotelBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	hotelID, err := ctx.Params().GetUint("hotelID")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid hotel ID")
		return
	}

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, hotelID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if hotel.OwnerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	var bookings []models.Booking
	if err := storage.DB.Where("hotel_id = ?", hotelID).
		Preload("Guest").
		Order("check_in_date DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONData(ctx, bookings)
}

// DELETE /api/booking/{id} — cancel, subject to the 24h cutoff.
func CancelBooking(ctx iris.Context) {
	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid booking ID")
		return
	}

	ledger := services.NewBookingLedger(storage.DB)
	booking, err := ledger.CancelBooking(bookingID, actorFromContext(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.JSONData(ctx, booking)
}
