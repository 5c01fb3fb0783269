package routes

import (
	"errors"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	Stars     int    `json:"stars" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"max=100"`
	Body      string `json:"body" validate:"max=1000"`
	BookingID uint   `json:"bookingID"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userID"`
	Stars     int       `json:"stars"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	User      struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"user"`
	IsVerified bool `json:"isVerified"`
}

// ListHotelReviews returns a hotel's reviews and whether the current
// user can still write one
func ListHotelReviews(ctx iris.Context) {
	hotelID := ctx.Params().GetUintDefault("hotelID", 0)
	if hotelID == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid hotel ID"})
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to load reviews"})
		return
	}

	var totalStars float64
	for _, review := range reviews {
		totalStars += float64(review.Stars)
	}
	avgRating := 0.0
	if len(reviews) > 0 {
		avgRating = totalStars / float64(len(reviews))
	}

	// A guest may review once per hotel, after a stay there
	canReview := false
	hasExistingReview := false
	userBookingID := uint(0)

	if v := ctx.Values().Get("userID"); v != nil {
		if userID, ok := v.(uint); ok {
			var booking models.Booking
			if err := storage.DB.Where("hotel_id = ? AND guest_id = ? AND status IN ?",
				hotelID, userID, []string{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
				Order("check_out_date DESC").
				First(&booking).Error; err == nil {
				canReview = true
				userBookingID = booking.ID

				var existing models.Review
				if err := storage.DB.Where("hotel_id = ? AND user_id = ?", hotelID, userID).First(&existing).Error; err == nil {
					hasExistingReview = true
					canReview = false
				}
			}
		}
	}

	reviewResponses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		r := ReviewResponse{
			ID:         review.ID,
			UserID:     review.UserID,
			Stars:      review.Stars,
			Title:      review.Title,
			Body:       review.Body,
			CreatedAt:  review.CreatedAt,
			IsVerified: review.IsVerified,
		}
		r.User.FirstName = review.User.FirstName
		r.User.LastName = review.User.LastName
		reviewResponses = append(reviewResponses, r)
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"reviews":           reviewResponses,
			"canReview":         canReview,
			"hasExistingReview": hasExistingReview,
			"userBookingID":     userBookingID,
			"averageRating":     avgRating,
			"reviewCount":       len(reviews),
		},
	})
}

// CreateHotelReview creates a review if the user has stayed at the
// hotel and hasn't reviewed it yet
func CreateHotelReview(ctx iris.Context) {
	userIDValue := ctx.Values().Get("userID")
	if userIDValue == nil {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "User not authenticated"})
		return
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "Invalid user ID"})
		return
	}

	hotelID := ctx.Params().GetUintDefault("hotelID", 0)
	if hotelID == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid hotel ID"})
		return
	}

	var req CreateReviewRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND hotel_id = ? AND guest_id = ? AND status IN ?",
		req.BookingID, hotelID, userID,
		[]string{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
		First(&booking).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "You can only review hotels you've stayed at"})
		return
	}

	var existing models.Review
	err := storage.DB.Where("hotel_id = ? AND user_id = ?", hotelID, userID).First(&existing).Error
	if err == nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "You have already reviewed this hotel"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	bookingID := booking.ID
	review := models.Review{
		UserID:     userID,
		HotelID:    hotelID,
		BookingID:  &bookingID,
		Title:      req.Title,
		Body:       req.Body,
		Stars:      req.Stars,
		IsVerified: !booking.CheckOutDate.After(time.Now()),
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": review})
}
