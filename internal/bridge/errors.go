package bridge

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/nhle/maildraft/internal/compose"
	"github.com/nhle/maildraft/internal/store"
)

const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNoAccount      = "NO_ACCOUNT"
	CodeLaunchFailed   = "LAUNCH_FAILED"
	CodeNotFound       = "NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func handleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: message})
}

func handleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, compose.ErrNoAccount):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{Code: CodeNoAccount, Message: err.Error()})
	case compose.IsLaunchError(err):
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Code: CodeLaunchFailed, Message: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Code: CodeNotFound, Message: err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: CodeInternalError, Message: err.Error()})
	}
}
