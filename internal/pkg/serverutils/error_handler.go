package serverutils

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandlerMiddleware turns errors returned by handlers into a
// BaseResponse with a matching status code
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, message := classify(err)
		if code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest, describeValidation(validationErrs)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.StatusConflict, "Already exists"
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, "Internal server error"
}
