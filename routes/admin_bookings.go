package routes

import (
	"net/http"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/services"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

var bookingStatuses = []string{
	models.BookingStatusPending,
	models.BookingStatusConfirmed,
	models.BookingStatusCancelled,
	models.BookingStatusCompleted,
}

// GET /api/admin/bookings
func AdminListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	ownerID := ctx.URLParamDefault("owner_id", "")
	guestID := ctx.URLParamDefault("guest_id", "")
	dateFrom := ctx.URLParamDefault("date_from", "")
	dateTo := ctx.URLParamDefault("date_to", "")

	if status != "" && !slices.Contains(bookingStatuses, status) {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "unknown status filter")
		return
	}

	q := storage.DB.Model(&models.Booking{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if ownerID != "" {
		q = q.Joins("JOIN hotels ON hotels.id = bookings.hotel_id").Where("hotels.owner_id = ?", ownerID)
	}
	if guestID != "" {
		q = q.Where("guest_id = ?", guestID)
	}
	if dateFrom != "" {
		if t, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			q = q.Where("check_in_date >= ?", t)
		}
	}
	if dateTo != "" {
		if t, err := time.Parse(time.RFC3339, dateTo); err == nil {
			q = q.Where("check_out_date <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var items []models.Booking
	if err := q.Preload("Hotel").Preload("Guest").Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// GET /api/admin/bookings/:id
func AdminGetBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var booking models.Booking
	if err := storage.DB.Preload("Hotel").Preload("Guest").First(&booking, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "booking not found")
		return
	}
	ctx.JSON(iris.Map{"data": booking, "meta": iris.Map{}, "links": iris.Map{}})
}

// POST /api/admin/bookings/:id/cancel { reason }
func AdminCancelBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Reason == "" {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "reason required")
		return
	}

	var before models.Booking
	if err := storage.DB.First(&before, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "booking not found")
		return
	}

	ledger := services.NewBookingLedger(storage.DB)
	booking, err := ledger.AdminCancelBooking(id, actorFromContext(ctx))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "booking.cancel", "booking", booking.ID, before, booking)
	ctx.JSON(iris.Map{"data": booking})
}

// POST /api/admin/bookings/:id/refund
func AdminIssueRefund(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var before models.Booking
	if err := storage.DB.First(&before, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "booking not found")
		return
	}

	ledger := services.NewBookingLedger(storage.DB)
	booking, err := ledger.IssueRefund(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "booking.refund", "booking", booking.ID, before, booking)
	ctx.JSON(iris.Map{"data": booking})
}
