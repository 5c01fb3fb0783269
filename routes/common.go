package routes

import (
	"errors"
	"time"

	"github.com/Tusharborul/hotelmanagement-sub000/services"
	"github.com/Tusharborul/hotelmanagement-sub000/utils"

	"github.com/kataras/iris/v12"
)

// handleServiceError maps the service-layer taxonomy onto HTTP. Expected
// outcomes carry structured detail (exhausted dates, duplicated field)
// so the caller can react without guessing.
func handleServiceError(ctx iris.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		ctx.StatusCode(iris.StatusUnprocessableEntity)
		ctx.JSON(iris.Map{"error": "validation_error", "field": validation.Field, "message": validation.Error()})
		return
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		ctx.StatusCode(iris.StatusConflict)
		body := iris.Map{"error": "conflict", "message": conflict.Error()}
		if conflict.Field != "" {
			body["field"] = conflict.Field
		}
		if len(conflict.ExhaustedDates) > 0 {
			body["exhaustedDates"] = conflict.ExhaustedDates
		}
		ctx.JSON(body)
		return
	}

	switch {
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "you are not allowed to perform this action")
	case errors.Is(err, services.ErrNotCancellable):
		utils.JSONError(ctx, iris.StatusBadRequest, "not_cancellable", "booking can no longer be cancelled")
	case errors.Is(err, services.ErrInvalidState):
		utils.JSONError(ctx, iris.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, services.ErrPaymentFailed):
		utils.JSONError(ctx, iris.StatusPaymentRequired, "payment_failed", "payment was not confirmed by the processor")
	case errors.Is(err, services.ErrUpstreamUnavailable):
		utils.JSONError(ctx, iris.StatusServiceUnavailable, "upstream_unavailable", err.Error())
	case services.IsNotFound(err):
		utils.CreateNotFound(ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

// parseDay parses a YYYY-MM-DD date.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func actorFromContext(ctx iris.Context) services.Actor {
	actor := services.Actor{}
	if v := ctx.Values().Get("userID"); v != nil {
		if id, ok := v.(uint); ok {
			actor.UserID = id
		}
	}
	if v := ctx.Values().Get("role"); v != nil {
		if role, ok := v.(string); ok {
			actor.Role = role
		}
	}
	return actor
}
