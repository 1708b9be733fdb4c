package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/shopdash/internal/auth"
	"github.com/khanghh/shopdash/internal/dashboard"
	"github.com/khanghh/shopdash/internal/settings"
	"github.com/khanghh/shopdash/internal/users"
	"github.com/khanghh/shopdash/params"
)

// AccountHandler serves the signed-in user's own account surface. All routes
// sit behind the auth guard, so dashboard.Get always carries a user here.
type AccountHandler struct {
	authService *auth.AuthService
	prefRepo    users.UserSettingRepository
	trustProxy  bool
}

func NewAccountHandler(authService *auth.AuthService, prefRepo users.UserSettingRepository, trustProxy bool) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		prefRepo:    prefRepo,
		trustProxy:  trustProxy,
	}
}

func (h *AccountHandler) GetProfile(ctx *fiber.Ctx) error {
	dctx := dashboard.Get(ctx)
	return ctx.JSON(NewDataResponse(fiber.Map{
		"user":     NewUserInfoResponse(dctx.User),
		"prefs":    dctx.Prefs,
		"siteName": dctx.Setting(settings.KeySiteName, "shopdash"),
	}))
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Phone     string `json:"phone" form:"phone"`
	Timezone  string `json:"timezone" form:"timezone"`
	Language  string `json:"language" form:"language"`
}

func (h *AccountHandler) PutProfile(ctx *fiber.Ctx) error {
	var req updateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	dctx := dashboard.Get(ctx)
	err := h.authService.UpdateProfile(ctx.Context(), dctx.User.ID, auth.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Timezone:  req.Timezone,
		Language:  req.Language,
	}, RequestInfo(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"updated": true}))
}

type updatePreferencesRequest struct {
	Currency           *string `json:"currency" form:"currency"`
	ItemsPerPage       *int    `json:"itemsPerPage" form:"itemsPerPage"`
	EmailNotifications *bool   `json:"emailNotifications" form:"emailNotifications"`
	StockAlerts        *bool   `json:"stockAlerts" form:"stockAlerts"`
	OrderAlerts        *bool   `json:"orderAlerts" form:"orderAlerts"`
}

// PutPreferences patches the user's dashboard preference row. Only fields
// present in the request are written.
func (h *AccountHandler) PutPreferences(ctx *fiber.Ctx) error {
	var req updatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	columns := make(map[string]interface{})
	if req.Currency != nil {
		columns["currency"] = *req.Currency
	}
	if req.ItemsPerPage != nil {
		columns["items_per_page"] = *req.ItemsPerPage
	}
	if req.EmailNotifications != nil {
		columns["email_notifications"] = *req.EmailNotifications
	}
	if req.StockAlerts != nil {
		columns["stock_alerts"] = *req.StockAlerts
	}
	if req.OrderAlerts != nil {
		columns["order_alerts"] = *req.OrderAlerts
	}
	if len(columns) == 0 {
		return ctx.JSON(NewDataResponse(fiber.Map{"updated": false}))
	}

	dctx := dashboard.Get(ctx)
	if err := h.prefRepo.Updates(ctx.Context(), dctx.User.ID, columns); err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"updated": true}))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
}

func (h *AccountHandler) PostChangePassword(ctx *fiber.Ctx) error {
	var req changePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	dctx := dashboard.Get(ctx)
	keepToken := ctx.Cookies(params.SessionCookieName)
	err := h.authService.ChangePassword(ctx.Context(), dctx.User.ID, req.CurrentPassword, req.NewPassword, keepToken, RequestInfo(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"changed": true}))
}

func (h *AccountHandler) PostLogoutAll(ctx *fiber.Ctx) error {
	dctx := dashboard.Get(ctx)
	count, err := h.authService.LogoutAllSessions(ctx.Context(), dctx.User.ID, RequestInfo(ctx))
	if err != nil {
		return err
	}
	clearSessionCookie(ctx, isSecureRequest(ctx, h.trustProxy))
	return ctx.JSON(NewDataResponse(fiber.Map{"terminated": count}))
}

func (h *AccountHandler) PostLogoutOthers(ctx *fiber.Ctx) error {
	dctx := dashboard.Get(ctx)
	keepToken := ctx.Cookies(params.SessionCookieName)
	count, err := h.authService.LogoutOtherSessions(ctx.Context(), dctx.User.ID, keepToken, RequestInfo(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"terminated": count}))
}

func (h *AccountHandler) GetSessions(ctx *fiber.Ctx) error {
	dctx := dashboard.Get(ctx)
	sessions, err := h.authService.GetUserSessions(ctx.Context(), dctx.User.ID)
	if err != nil {
		return err
	}

	resp := make([]SessionInfoResponse, 0, len(sessions))
	for idx := range sessions {
		resp = append(resp, NewSessionInfoResponse(&sessions[idx], dctx.Session.ID))
	}
	return ctx.JSON(NewDataResponse(resp))
}

func (h *AccountHandler) DeleteSession(ctx *fiber.Ctx) error {
	sessionID, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	dctx := dashboard.Get(ctx)
	if err := h.authService.TerminateSession(ctx.Context(), dctx.User.ID, uint(sessionID), RequestInfo(ctx)); err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"terminated": true}))
}

func (h *AccountHandler) GetActivity(ctx *fiber.Ctx) error {
	dctx := dashboard.Get(ctx)
	category := ctx.Query("category")
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	events, err := h.authService.GetUserActivity(ctx.Context(), dctx.User.ID, category, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(events))
}
