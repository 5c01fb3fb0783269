package routes

import (
	"net/http"
	"strings"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/users
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	role := ctx.URLParamDefault("role", "")
	search := strings.TrimSpace(ctx.URLParamDefault("q", ""))

	q := storage.DB.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(username) LIKE ?", like, like)
	}

	var total int64
	q.Count(&total)

	var users []models.User
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, users, page, perPage, total)
}

// GET /api/admin/users/:id — user plus their bookings and owned hotels
func AdminGetUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var user models.User
	if err := storage.DB.Preload("Hotels").First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	var bookings []models.Booking
	storage.DB.Where("guest_id = ?", id).Order("created_at DESC").Limit(50).Find(&bookings)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"user":     user,
			"bookings": bookings,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}
