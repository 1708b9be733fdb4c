package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/shopdash/internal/auth"
	"github.com/khanghh/shopdash/internal/dashboard"
	"github.com/khanghh/shopdash/internal/handlers/web"
	"github.com/khanghh/shopdash/internal/settings"
	"github.com/khanghh/shopdash/internal/storage"
	"gorm.io/gorm"
)

// AdminHandler serves the admin-only surface: system settings, account
// toggles and dashboard stats. Routes sit behind the admin guard.
type AdminHandler struct {
	db          *gorm.DB
	authService *auth.AuthService
	sysSettings *settings.Store
}

func NewAdminHandler(db *gorm.DB, authService *auth.AuthService, sysSettings *settings.Store) *AdminHandler {
	return &AdminHandler{
		db:          db,
		authService: authService,
		sysSettings: sysSettings,
	}
}

// GetStats counts the headline dashboard numbers straight off the tables.
func (h *AdminHandler) GetStats(ctx *fiber.Ctx) error {
	totalUsers, err := storage.Count(ctx.Context(), h.db, "user")
	if err != nil {
		return err
	}
	activeUsers, err := storage.Count(ctx.Context(), h.db, "user", storage.Eq("is_active", true))
	if err != nil {
		return err
	}
	admins, err := storage.Count(ctx.Context(), h.db, "user", storage.Eq("is_admin", true))
	if err != nil {
		return err
	}
	activeSessions, err := storage.Count(ctx.Context(), h.db, "session", storage.Eq("is_active", true))
	if err != nil {
		return err
	}

	return ctx.JSON(web.NewDataResponse(fiber.Map{
		"totalUsers":     totalUsers,
		"activeUsers":    activeUsers,
		"admins":         admins,
		"activeSessions": activeSessions,
	}))
}

func (h *AdminHandler) GetSettings(ctx *fiber.Ctx) error {
	all, err := h.sysSettings.All(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(web.NewDataResponse(all))
}

type updateSettingRequest struct {
	Value       string `json:"value" form:"value"`
	Type        string `json:"type" form:"type"`
	Description string `json:"description" form:"description"`
}

func (h *AdminHandler) PutSetting(ctx *fiber.Ctx) error {
	key := ctx.Params("key")
	var req updateSettingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if req.Type == "" {
		req.Type = settings.TypeString
	}

	dctx := dashboard.Get(ctx)
	if err := h.authService.UpdateSystemSetting(ctx.Context(), dctx.User.ID, key, req.Value, req.Type, req.Description, web.RequestInfo(ctx)); err != nil {
		return err
	}
	return ctx.JSON(web.NewDataResponse(fiber.Map{"key": key, "value": req.Value}))
}

func (h *AdminHandler) PostToggleUserStatus(ctx *fiber.Ctx) error {
	targetID, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	dctx := dashboard.Get(ctx)
	user, err := h.authService.ToggleUserStatus(ctx.Context(), dctx.User.ID, uint(targetID), web.RequestInfo(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(web.NewDataResponse(web.NewUserInfoResponse(user)))
}

func (h *AdminHandler) PostToggleAdminStatus(ctx *fiber.Ctx) error {
	targetID, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	dctx := dashboard.Get(ctx)
	user, err := h.authService.ToggleAdminStatus(ctx.Context(), dctx.User.ID, uint(targetID), web.RequestInfo(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(web.NewDataResponse(web.NewUserInfoResponse(user)))
}

// GetUserActivity lets an admin review any account's audit trail.
func (h *AdminHandler) GetUserActivity(ctx *fiber.Ctx) error {
	targetID, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	category := ctx.Query("category")
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	events, err := h.authService.GetUserActivity(ctx.Context(), uint(targetID), category, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(web.NewDataResponse(events))
}
