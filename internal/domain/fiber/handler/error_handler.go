package handler

import (
	"errors"

	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escaped a handler in the standard
// envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		message := e.Message
		if message == "" {
			message = "Internal Server Error"
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    e.Code,
			Message: message,
		}, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
}
