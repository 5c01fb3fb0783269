package routes

import (
	"github.com/Tusharborul/hotelmanagement-sub000/services"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/availability/{hotelID}?checkInDate=YYYY-MM-DD&days=N&roomCount=N
//
// Advisory check the client runs before showing the payment form. The
// same computation is re-run authoritatively inside booking creation.
func GetAvailability(ctx iris.Context) {
	hotelID, err := ctx.Params().GetUint("hotelID")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid hotel ID")
		return
	}

	checkInStr := ctx.URLParam("checkInDate")
	if checkInStr == "" {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "validation_error", "checkInDate is required")
		return
	}
	checkIn, err := parseDay(checkInStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "validation_error", "invalid checkInDate format, expected YYYY-MM-DD")
		return
	}

	days := ctx.URLParamIntDefault("days", 1)
	if days < 1 {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "validation_error", "days must be at least 1")
		return
	}
	roomCount := ctx.URLParamIntDefault("roomCount", 1)
	if roomCount < 1 {
		roomCount = 1
	}

	result, err := services.CheckAvailability(storage.DB, hotelID, checkIn, days, roomCount)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.JSONData(ctx, result)
}
