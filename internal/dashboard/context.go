package dashboard

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/shopdash/internal/auth"
	"github.com/khanghh/shopdash/internal/settings"
	"github.com/khanghh/shopdash/internal/users"
	"github.com/khanghh/shopdash/model"
	"github.com/khanghh/shopdash/params"
	"gorm.io/gorm"
)

const contextKey = "dashboard"

// Context binds one request to its authenticated identity and settings. One
// instance is built per request by the middleware; page handlers read from
// it instead of re-resolving the cookie.
type Context struct {
	User     *model.User
	Session  *model.Session
	Prefs    *model.UserSetting
	settings *settings.Store
}

func (c *Context) IsAuthenticated() bool {
	return c.User != nil
}

func (c *Context) IsAdmin() bool {
	return c.User != nil && c.User.IsAdmin
}

// Setting reads a system setting with a default.
func (c *Context) Setting(key, def string) string {
	return c.settings.GetString(key, def)
}

// New resolves the session cookie through the auth core and loads the
// user's preference row. A request with no (or a dead) cookie still gets a
// Context, just an anonymous one.
func New(authService *auth.AuthService, sysSettings *settings.Store, prefRepo users.UserSettingRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		dctx := &Context{settings: sysSettings}

		token := ctx.Cookies(params.SessionCookieName)
		user, session, err := authService.GetCurrentUser(ctx.Context(), token)
		if err != nil {
			return err
		}
		if user != nil {
			dctx.User = user
			dctx.Session = session
			prefs, err := prefRepo.ByUser(ctx.Context(), user.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				slog.Error("Failed to load user settings", "user", user.ID, "error", err)
			}
			dctx.Prefs = prefs
		}

		ctx.Locals(contextKey, dctx)
		return ctx.Next()
	}
}

// Get returns the request's Context; the middleware guarantees presence on
// every route registered behind it.
func Get(ctx *fiber.Ctx) *Context {
	return ctx.Locals(contextKey).(*Context)
}
