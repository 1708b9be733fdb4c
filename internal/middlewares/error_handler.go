package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/shopdash/internal/auth"
	"github.com/khanghh/shopdash/internal/storage"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorHandler maps core errors to HTTP statuses. Messages stay generic:
// credential failures never say which part was wrong, and storage errors are
// logged server side, not echoed.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(errorResponse{Code: "http_error", Message: fiberErr.Message})
	}

	switch {
	case errors.Is(err, auth.ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse{Code: "validation_failed", Message: err.Error()})
	case errors.Is(err, auth.ErrConflict):
		return ctx.Status(fiber.StatusConflict).JSON(errorResponse{Code: "conflict", Message: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse{Code: "invalid_credentials", Message: "Invalid username or password."})
	case errors.Is(err, auth.ErrAccountLocked):
		return ctx.Status(fiber.StatusLocked).JSON(errorResponse{Code: "account_locked", Message: "Too many failed login attempts. Please try again later."})
	case errors.Is(err, auth.ErrEmailNotVerified):
		return ctx.Status(fiber.StatusForbidden).JSON(errorResponse{Code: "email_not_verified", Message: "Please verify your email address before signing in."})
	case errors.Is(err, auth.ErrRegistrationClosed):
		return ctx.Status(fiber.StatusForbidden).JSON(errorResponse{Code: "registration_disabled", Message: "Registration is currently disabled."})
	case errors.Is(err, auth.ErrInvalidOrExpiredToken):
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse{Code: "invalid_token", Message: "This link is invalid or has expired."})
	case errors.Is(err, auth.ErrUnauthenticated):
		return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse{Code: "unauthenticated", Message: "Authentication required."})
	case errors.Is(err, auth.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(errorResponse{Code: "forbidden", Message: "You do not have permission to do that."})
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(errorResponse{Code: "not_found", Message: "Not found."})
	case errors.Is(err, storage.ErrInvalidArgument):
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse{Code: "invalid_argument", Message: "Invalid request."})
	default:
		slog.Error("Unhandled error", "path", ctx.Path(), "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse{Code: "internal_error", Message: "Something went wrong. Please try again."})
	}
}
