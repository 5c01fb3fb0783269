package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentProcessor is the slice of the external processor's contract the
// platform consumes. Card tokenization and 3-D Secure live entirely on
// the processor's side of this interface.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*ProcessorIntent, error)
	ConfirmPayment(ctx context.Context, clientSecret, paymentMethod string) (*ChargeResult, error)
	UpdateIntentMetadata(ctx context.Context, intentID string, metadata map[string]string) error
}

type ProcessorIntent struct {
	IntentID     string
	ClientSecret string
}

type ChargeResult struct {
	IntentID string `json:"intentId"`
	Status   string `json:"status"`
	ChargeID string `json:"chargeId"`
	Last4    string `json:"last4"`
}

// AttemptClaimer guards the one-intent-per-checkout-attempt invariant.
// Production uses Redis SetNX; tests plug in an in-memory map. Release
// gives the claim back when intent creation fails after a successful
// Claim, so the caller's retry of the same attempt can go through.
type AttemptClaimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type RedisAttemptClaimer struct {
	Client *redis.Client
}

func (c *RedisAttemptClaimer) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.Client.SetNX(ctx, "payintent:"+key, "1", ttl).Result()
}

func (c *RedisAttemptClaimer) Release(ctx context.Context, key string) error {
	return c.Client.Del(ctx, "payintent:"+key).Err()
}

const attemptClaimTTL = 30 * time.Minute

// PaymentCoordinator wraps the external payment processor: it creates
// the deposit intent for a checkout attempt, confirms card charges and
// reconciles intents with finalized bookings.
type PaymentCoordinator struct {
	db        *gorm.DB
	processor PaymentProcessor
	claimer   AttemptClaimer
}

func NewPaymentCoordinator(db *gorm.DB, processor PaymentProcessor, claimer AttemptClaimer) *PaymentCoordinator {
	return &PaymentCoordinator{db: db, processor: processor, claimer: claimer}
}

type DepositIntentResult struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

// CreateDepositIntent creates the processor-side intent for the deposit
// (half the total, rounded). It is idempotent per checkout attempt:
// whichever call claims the attempt key first creates the intent, every
// later call for the same key gets the already-recorded intent back.
// Rapid double-clicks and retried network calls never mint two intents.
func (p *PaymentCoordinator) CreateDepositIntent(ctx context.Context, totalPrice float64, attemptKey string, metadata map[string]string) (*DepositIntentResult, error) {
	if totalPrice <= 0 {
		return nil, &ValidationError{Field: "totalPrice", Reason: "must be positive"}
	}
	if attemptKey == "" {
		return nil, &ValidationError{Field: "attemptKey", Reason: "is required"}
	}
	amount := DepositAmount(totalPrice)

	claimed, err := p.claimer.Claim(ctx, attemptKey, attemptClaimTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: claiming checkout attempt: %v", ErrUpstreamUnavailable, err)
	}
	if !claimed {
		var rec models.PaymentIntentRecord
		if err := p.db.Where("attempt_key = ?", attemptKey).First(&rec).Error; err != nil {
			// Claimed by a racer that has not finished recording yet.
			return nil, &ConflictError{}
		}
		return &DepositIntentResult{IntentID: rec.IntentID, ClientSecret: rec.ClientSecret}, nil
	}

	intent, err := p.processor.CreateIntent(ctx, amount, "USD", metadata)
	if err != nil {
		// No intent exists, so the attempt must stay claimable: otherwise
		// every retry of this checkout would bounce off the stale claim
		// until the TTL expires.
		p.releaseClaim(ctx, attemptKey)
		return nil, fmt.Errorf("%w: creating payment intent: %v", ErrUpstreamUnavailable, err)
	}

	rec := models.PaymentIntentRecord{
		IntentID:     intent.IntentID,
		AttemptKey:   attemptKey,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     "USD",
		Status:       models.IntentStatusCreated,
	}
	if len(metadata) > 0 {
		if raw, jsonErr := json.Marshal(metadata); jsonErr == nil {
			rec.Metadata = datatypes.JSON(raw)
		}
	}
	if err := p.db.Create(&rec).Error; err != nil {
		p.releaseClaim(ctx, attemptKey)
		return nil, err
	}
	return &DepositIntentResult{IntentID: intent.IntentID, ClientSecret: intent.ClientSecret}, nil
}

func (p *PaymentCoordinator) releaseClaim(ctx context.Context, attemptKey string) {
	if err := p.claimer.Release(ctx, attemptKey); err != nil {
		log.Printf("payment: failed to release claim for attempt %s: %v", attemptKey, err)
	}
}

// ConfirmCardPayment delegates the charge to the processor. Any
// non-succeeded outcome is a hard failure: the caller must not create a
// booking from it.
func (p *PaymentCoordinator) ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethod string) (*ChargeResult, error) {
	res, err := p.processor.ConfirmPayment(ctx, clientSecret, paymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: confirming payment: %v", ErrUpstreamUnavailable, err)
	}

	status := models.IntentStatusFailed
	if res.Status == "succeeded" {
		status = models.IntentStatusSucceeded
	}
	err = p.db.Model(&models.PaymentIntentRecord{}).
		Where("intent_id = ?", res.IntentID).
		Update("status", status).Error
	if err != nil {
		if res.Status == "succeeded" {
			// The customer was charged but the record does not say so; the
			// booking gate would reject them. Surface the charge reference
			// for manual reconciliation instead of reporting success.
			return nil, fmt.Errorf("%w: charge %s succeeded but could not be recorded: %v", ErrUpstreamUnavailable, res.ChargeID, err)
		}
		return nil, ErrPaymentFailed
	}

	if res.Status != "succeeded" {
		return nil, ErrPaymentFailed
	}
	return res, nil
}

// VerifyDepositIntent is the payment-then-booking ordering gate: the
// recorded intent must carry a confirmed succeeded charge, must not
// already fund a booking, and its amount must be the deposit for the
// price being booked. A confirmed intent therefore passes the gate for
// exactly one booking of the price it was charged for.
func (p *PaymentCoordinator) VerifyDepositIntent(intentID string, totalPrice float64) error {
	var rec models.PaymentIntentRecord
	if err := p.db.Where("intent_id = ?", intentID).First(&rec).Error; err != nil {
		return err
	}
	if rec.Status != models.IntentStatusSucceeded {
		return ErrPaymentFailed
	}
	if rec.BookingID != nil {
		return ErrInvalidState
	}
	if rec.Amount != DepositAmount(totalPrice) {
		return ErrPaymentFailed
	}
	return nil
}

// AttachBooking stores the booking id on the intent record and pushes it
// into the processor's metadata. It is idempotent: attaching the same
// pair twice leaves exactly one association, attaching a different
// booking to an already-attached intent is rejected. Booking creation
// already records the association inside its own transaction, so for the
// normal flow this only re-confirms it and pushes the metadata.
func (p *PaymentCoordinator) AttachBooking(ctx context.Context, bookingID uint, intentID string) error {
	var rec models.PaymentIntentRecord
	if err := p.db.Where("intent_id = ?", intentID).First(&rec).Error; err != nil {
		return err
	}
	if rec.BookingID != nil {
		if *rec.BookingID == bookingID {
			p.pushBookingMetadata(ctx, bookingID, intentID)
			return nil
		}
		return ErrInvalidState
	}

	res := p.db.Model(&models.PaymentIntentRecord{}).
		Where("intent_id = ? AND booking_id IS NULL", intentID).
		Update("booking_id", bookingID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to another booking.
		return ErrInvalidState
	}

	p.pushBookingMetadata(ctx, bookingID, intentID)
	return nil
}

func (p *PaymentCoordinator) pushBookingMetadata(ctx context.Context, bookingID uint, intentID string) {
	if err := p.processor.UpdateIntentMetadata(ctx, intentID, map[string]string{
		"bookingID": strconv.FormatUint(uint64(bookingID), 10),
	}); err != nil {
		// The booking row is the durable truth; processor metadata is
		// bookkeeping only.
		log.Printf("payment: metadata update for intent %s failed: %v", intentID, err)
	}
}

// AttachBookingAsync runs AttachBooking in the background after booking
// creation. Failure is logged and never rolls the booking back.
func (p *PaymentCoordinator) AttachBookingAsync(bookingID uint, intentID string) {
	go func() {
		if err := p.AttachBooking(context.Background(), bookingID, intentID); err != nil {
			log.Printf("payment: failed to attach booking %d to intent %s: %v", bookingID, intentID, err)
		}
	}()
}
