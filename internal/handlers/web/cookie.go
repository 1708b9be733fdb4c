package web

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/shopdash/internal/audit"
	"github.com/khanghh/shopdash/params"
)

// RequestInfo collects the request metadata the core needs for audit rows
// and session records.
func RequestInfo(ctx *fiber.Ctx) audit.RequestInfo {
	return audit.RequestInfo{
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
		Method:    ctx.Method(),
		URI:       ctx.OriginalURL(),
	}
}

// isSecureRequest detects TLS either directly or through the forwarded-proto
// header when the deployment declared its proxy trusted.
func isSecureRequest(ctx *fiber.Ctx, trustProxy bool) bool {
	if ctx.Protocol() == "https" {
		return true
	}
	return trustProxy && strings.EqualFold(ctx.Get(fiber.HeaderXForwardedProto), "https")
}

func setSessionCookie(ctx *fiber.Ctx, token string, expiresAt time.Time, secure bool) {
	ctx.Cookie(&fiber.Cookie{
		Name:     params.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie uses the same attributes as issuance so the browser
// matches and drops the right cookie.
func clearSessionCookie(ctx *fiber.Ctx, secure bool) {
	ctx.Cookie(&fiber.Cookie{
		Name:     params.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
