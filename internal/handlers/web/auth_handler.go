package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/shopdash/internal/auth"
	"github.com/khanghh/shopdash/params"
)

// AuthHandler serves the anonymous side of the auth surface: registration,
// login, logout, verification and reset links.
type AuthHandler struct {
	authService *auth.AuthService
	trustProxy  bool
}

func NewAuthHandler(authService *auth.AuthService, trustProxy bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		trustProxy:  trustProxy,
	}
}

type registerRequest struct {
	Username  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
}

func (h *AuthHandler) PostRegister(ctx *fiber.Ctx) error {
	var req registerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	user, err := h.authService.Register(ctx.Context(), auth.RegisterRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, RequestInfo(ctx))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(NewDataResponse(NewUserInfoResponse(user)))
}

type loginRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"rememberMe" form:"rememberMe"`
}

func (h *AuthHandler) PostLogin(ctx *fiber.Ctx) error {
	var req loginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	user, session, err := h.authService.Login(ctx.Context(), req.Identifier, req.Password, req.RememberMe, RequestInfo(ctx))
	if err != nil {
		return err
	}

	setSessionCookie(ctx, session.SessionToken, session.ExpiresAt, isSecureRequest(ctx, h.trustProxy))
	return ctx.JSON(NewDataResponse(NewUserInfoResponse(user)))
}

type logoutRequest struct {
	SessionToken string `json:"sessionToken" form:"sessionToken"`
}

func (h *AuthHandler) PostLogout(ctx *fiber.Ctx) error {
	// explicit token in the body wins over the cookie
	var req logoutRequest
	_ = ctx.BodyParser(&req)
	token := req.SessionToken
	if token == "" {
		token = ctx.Cookies(params.SessionCookieName)
	}

	if err := h.authService.Logout(ctx.Context(), token, RequestInfo(ctx)); err != nil {
		return err
	}
	clearSessionCookie(ctx, isSecureRequest(ctx, h.trustProxy))
	return ctx.JSON(NewDataResponse(nil))
}

func (h *AuthHandler) GetVerifyEmail(ctx *fiber.Ctx) error {
	token := ctx.Query("token")
	if err := h.authService.VerifyEmail(ctx.Context(), token, RequestInfo(ctx)); err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"verified": true}))
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

// PostForgotPassword always answers success; whether the address maps to an
// account is not observable from outside.
func (h *AuthHandler) PostForgotPassword(ctx *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.authService.RequestPasswordReset(ctx.Context(), req.Email, RequestInfo(ctx)); err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"sent": true}))
}

type resetPasswordRequest struct {
	Token       string `json:"token" form:"token"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

func (h *AuthHandler) PostResetPassword(ctx *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.authService.ResetPassword(ctx.Context(), req.Token, req.NewPassword, RequestInfo(ctx)); err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(fiber.Map{"reset": true}))
}
