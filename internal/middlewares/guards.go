package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/shopdash/internal/auth"
	"github.com/khanghh/shopdash/internal/dashboard"
)

// RequireAuth rejects requests that did not resolve to an authenticated
// session. Must be registered behind dashboard.New.
func RequireAuth() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !dashboard.Get(ctx).IsAuthenticated() {
			return auth.ErrUnauthenticated
		}
		return ctx.Next()
	}
}

// RequireAdmin rejects non-admin sessions. Anonymous requests get the
// unauthenticated error so the client knows to sign in first.
func RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		dctx := dashboard.Get(ctx)
		if !dctx.IsAuthenticated() {
			return auth.ErrUnauthenticated
		}
		if !dctx.IsAdmin() {
			return auth.ErrForbidden
		}
		return ctx.Next()
	}
}
