package routes

import (
	"github.com/Tusharborul/hotelmanagement-sub000/services"
	"github.com/Tusharborul/hotelmanagement-sub000/storage"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
)

// processor is installed at startup via SetPaymentProcessor.
var processor services.PaymentProcessor = services.NewSandboxProcessor()

// SetPaymentProcessor installs the processor client used by the payment
// routes. Called once during startup.
func SetPaymentProcessor(p services.PaymentProcessor) {
	processor = p
}

func paymentCoordinator() *services.PaymentCoordinator {
	return services.NewPaymentCoordinator(storage.DB, processor, &services.RedisAttemptClaimer{Client: storage.Redis})
}

type CreateIntentInput struct {
	TotalPrice float64 `json:"totalPrice" validate:"required,gt=0"`
	// AttemptKey identifies the checkout attempt; the client generates it
	// once per checkout screen so double-clicks and retries reuse it.
	AttemptKey string            `json:"attemptKey" validate:"required"`
	Metadata   map[string]string `json:"metadata"`
}

// POST /api/payment/intent — create the deposit intent for a checkout
// attempt. Idempotent per attemptKey.
func CreatePaymentIntent(ctx iris.Context) {
	var input CreateIntentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	result, err := paymentCoordinator().CreateDepositIntent(ctx.Request().Context(), input.TotalPrice, input.AttemptKey, input.Metadata)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.JSONData(ctx, result)
}

type ConfirmPaymentInput struct {
	ClientSecret  string `json:"clientSecret" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// POST /api/payment/confirm — confirm the card charge with the
// processor. Any non-succeeded outcome is a hard failure and no booking
// may be created from it.
func ConfirmPayment(ctx iris.Context) {
	var input ConfirmPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	result, err := paymentCoordinator().ConfirmCardPayment(ctx.Request().Context(), input.ClientSecret, input.PaymentMethod)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	utils.JSONData(ctx, result)
}

type AttachBookingInput struct {
	BookingID uint   `json:"bookingID" validate:"required"`
	IntentID  string `json:"intentID" validate:"required"`
}

// POST /api/payment/attach — reconcile an intent with the booking it
// funded. Idempotent; mostly exercised by retries of the background
// attach kicked off at booking creation.
func AttachBooking(ctx iris.Context) {
	var input AttachBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := paymentCoordinator().AttachBooking(ctx.Request().Context(), input.BookingID, input.IntentID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "intent attached"})
}
