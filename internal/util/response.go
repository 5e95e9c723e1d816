package util

import (
	"errors"

	"github.com/fadilmartias/cv-dashboard/internal/config"
	"github.com/fadilmartias/cv-dashboard/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ErrorCode  Code   `json:"error_code,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	res := OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(res)
}

// ErrorResponse sends the standard error envelope. When no explicit code is
// given the status is derived from the first error.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	res := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
		Details: params.Details,
	}

	var first error
	if len(errs) > 0 {
		first = errs[0]
	}
	if first != nil {
		var ae *AppError
		if errors.As(first, &ae) {
			res.ErrorCode = ae.Code
		}
		if res.Message == "" {
			res.Message = Message(first, "Internal Server Error")
		}
	}

	if !config.LoadAppConfig().IsProduction() {
		if first != nil {
			res.DevMessage = first.Error()
		}
		if params.DevMessage != "" {
			res.DevMessage = params.DevMessage
		}
	}

	errorCode := params.Code
	if errorCode == 0 {
		if first != nil {
			errorCode = HTTPStatus(first)
		} else {
			errorCode = fiber.StatusInternalServerError
		}
	}
	return c.Status(errorCode).JSON(res)
}
