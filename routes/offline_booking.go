package routes

import (
	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/services"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
)

type OfflineBookingInput struct {
	HotelID      uint                  `json:"hotelID" validate:"required"`
	GuestContact services.GuestContact `json:"guestContact" validate:"required"`
	CheckInDate  string                `json:"checkInDate" validate:"required"`
	Days         int                   `json:"days" validate:"required,min=1"`
	RoomType     string                `json:"roomType" validate:"required,oneof=AC NON_AC"`
}

// POST /api/booking/offline
//
// Owner records a cash/in-person booking: provisions the guest account
// and writes a confirmed booking in one operation, no deposit flow. A
// duplicate email or username comes back as a Conflict naming the field,
// distinct from an availability Conflict.
func CreateOfflineBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input OfflineBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, input.HotelID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	role, _ := ctx.Values().Get("role").(string)
	if hotel.OwnerID != userID && role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "only the hotel owner can record offline bookings"})
		return
	}

	checkIn, err := parseDay(input.CheckInDate)
	if err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "validation_error", "invalid checkInDate format, expected YYYY-MM-DD")
		return
	}

	creator := services.NewOfflineBookingCreator(storage.DB)
	booking, err := creator.Create(services.OfflineBookingInput{
		HotelID:     input.HotelID,
		Contact:     input.GuestContact,
		CheckInDate: checkIn,
		Days:        input.Days,
		RoomType:    input.RoomType,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.JSONData(ctx, booking)
}
