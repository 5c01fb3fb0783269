package routes

import (
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats
func AdminStats(ctx iris.Context) {
	var hotels int64
	storage.DB.Model(&models.Hotel{}).Count(&hotels)
	var confirmed int64
	storage.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusConfirmed).Count(&confirmed)
	var pendingRefunds int64
	storage.DB.Model(&models.Booking{}).Where("refund_status = ?", models.RefundStatusPending).Count(&pendingRefunds)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newBookings7, newBookings30 int64
	storage.DB.Model(&models.Booking{}).Where("created_at >= ?", since7).Count(&newBookings7)
	storage.DB.Model(&models.Booking{}).Where("created_at >= ?", since30).Count(&newBookings30)

	var depositsCollected float64
	storage.DB.Model(&models.Booking{}).
		Where("status != ?", models.BookingStatusCancelled).
		Select("COALESCE(SUM(initial_payment), 0)").Scan(&depositsCollected)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"hotels":             hotels,
			"confirmed_bookings": confirmed,
			"pending_refunds":    pendingRefunds,
			"new_bookings_7d":    newBookings7,
			"new_bookings_30d":   newBookings30,
			"deposits_collected": depositsCollected,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// GET /api/admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}
