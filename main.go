package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Tusharborul/hotelmanagement-sub000/routes"
	"github.com/Tusharborul/hotelmanagement-sub000/services"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeRedis()

	// The sandbox processor approves everything except the designated
	// decline card; swapping in a real client happens here once one exists.
	routes.SetPaymentProcessor(services.NewSandboxProcessor())
	log.Println("using sandbox payment processor")

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
	}

	hotel := app.Party("/api/hotel")
	{
		hotel.Get("/{id:uint}", routes.GetHotel)
		hotel.Post("/", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.CreateHotel)
		hotel.Get("/", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.GetOwnerHotels)
		hotel.Post("/room", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.CreateRoom)
		hotel.Delete("/room/{id:uint}", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.DeleteRoom)
	}

	review := app.Party("/api/review")
	{
		review.Get("/hotel/{hotelID:uint}", routes.ListHotelReviews)
		review.Post("/hotel/{hotelID:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateHotelReview)
	}

	availability := app.Party("/api/availability")
	{
		availability.Get("/{hotelID:uint}", routes.GetAvailability)
	}

	booking := app.Party("/api/booking", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		booking.Post("/", routes.CreateBooking)
		booking.Get("/", routes.GetUserBookings)
		booking.Get("/hotel/{hotelID:uint}", routes.GetHotelBookings)
		booking.Delete("/{id:uint}", routes.CancelBooking)
		booking.Post("/offline", routes.CreateOfflineBooking)
	}

	payment := app.Party("/api/payment", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		payment.Post("/intent", routes.CreatePaymentIntent)
		payment.Post("/confirm", routes.ConfirmPayment)
		payment.Post("/attach", routes.AttachBooking)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/bookings", routes.AdminListBookings)
		admin.Get("/bookings/{id:uint}", routes.AdminGetBooking)
		admin.Post("/bookings/{id:uint}/cancel", routes.AdminCancelBooking)
		admin.Post("/bookings/{id:uint}/refund", routes.AdminIssueRefund)
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000" // fallback for local dev
	}
	addr := ":" + port

	fmt.Println("Starting server on", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
