package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type validationError struct {
	ActualTag string `json:"tag"`
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Param     string `json:"param"`
}

// HandleValidationErrors turns a ReadJSON/validator error into a 422 with
// field-level detail so clients never have to guess what was malformed.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		out := make([]validationError, 0, len(errs))
		for _, e := range errs {
			out = append(out, validationError{
				ActualTag: e.ActualTag(),
				Namespace: e.Namespace(),
				Kind:      e.Kind().String(),
				Type:      e.Type().String(),
				Value:     fieldValueString(e),
				Param:     e.Param(),
			})
		}
		ctx.StatusCode(iris.StatusUnprocessableEntity)
		ctx.JSON(iris.Map{"error": "validation_error", "fields": out})
		return
	}

	CreateError(iris.StatusUnprocessableEntity, "validation_error", err.Error(), ctx)
}

func fieldValueString(e validator.FieldError) string {
	if s, ok := e.Value().(string); ok {
		return s
	}
	return ""
}

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StatusCode(statusCode)
	ctx.JSON(iris.Map{"error": title, "message": detail})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "server_error", "an internal server error occurred", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "not_found", "resource not found", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "conflict", "email already registered", ctx)
}
