package routes

import (
	"encoding/json"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreateHotelInput struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	AddressLine   string   `json:"addressLine"`
	City          string   `json:"city" validate:"required"`
	Country       string   `json:"country"`
	PriceAC       float64  `json:"priceAC" validate:"required,gt=0"`
	PriceNonAC    float64  `json:"priceNonAC" validate:"required,gt=0"`
	DailyCapacity int      `json:"dailyCapacity" validate:"min=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

// POST /api/hotel — owner registers a hotel.
func CreateHotel(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateHotelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	active := true
	hotel := models.Hotel{
		OwnerID:       userID,
		Name:          input.Name,
		Description:   input.Description,
		AddressLine:   input.AddressLine,
		City:          input.City,
		Country:       input.Country,
		PriceAC:       input.PriceAC,
		PriceNonAC:    input.PriceNonAC,
		DailyCapacity: input.DailyCapacity,
		Amenities:     toJSON(input.Amenities),
		Images:        toJSON(input.Images),
		IsActive:      &active,
		Status:        "active",
	}

	if err := storage.DB.Create(&hotel).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONData(ctx, hotel)
}

// GET /api/hotel/{id}
func GetHotel(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid hotel ID")
		return
	}

	var hotel models.Hotel
	if err := storage.DB.Preload("Rooms").First(&hotel, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	utils.JSONData(ctx, hotel)
}

// GET /api/hotel — hotels managed by the authenticated owner.
func GetOwnerHotels(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var hotels []models.Hotel
	if err := storage.DB.Where("owner_id = ?", userID).Order("created_at DESC").Find(&hotels).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONData(ctx, hotels)
}

type CreateRoomInput struct {
	HotelID  uint   `json:"hotelID" validate:"required"`
	Number   string `json:"number" validate:"required"`
	Category string `json:"category" validate:"required,oneof=AC NON_AC"`
}

// POST /api/hotel/room
func CreateRoom(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var hotel models.Hotel
	if err := storage.DB.Where("id = ? AND owner_id = ?", input.HotelID, userID).First(&hotel).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "hotel not found or access denied"})
		return
	}

	active := true
	room := models.Room{
		HotelID:  input.HotelID,
		Number:   input.Number,
		Category: input.Category,
		Active:   &active,
	}
	if err := storage.DB.Create(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONData(ctx, room)
}

// DELETE /api/hotel/room/{id}
//
// A room that any booking ever referenced is only deactivated, so the
// booking history stays intact; a room with no history is removed.
func DeleteRoom(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid room ID")
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, room.HotelID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if hotel.OwnerID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	var bookingCount int64
	if err := storage.DB.Model(&models.Booking{}).Where("room_id = ?", room.ID).Count(&bookingCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if bookingCount > 0 {
		inactive := false
		room.Active = &inactive
		if err := storage.DB.Save(&room).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		ctx.JSON(iris.Map{"success": true, "message": "room has booking history and was deactivated", "data": room})
		return
	}

	if err := storage.DB.Unscoped().Delete(&models.Room{}, room.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

func toJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
