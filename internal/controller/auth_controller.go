package controller

import (
	"errors"

	"mufessir/internal/dto"
	"mufessir/internal/pkg/serverutils"
	"mufessir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	RequestPasswordReset(ctx *fiber.Ctx) error
	ConfirmPasswordReset(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
	jwtSecret   string
}

func NewAuthController(authService service.IAuthService, jwtSecret string) IAuthController {
	return &authController{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", serverutils.JwtMiddleware(c.jwtSecret), c.Me)
	h.Post("/password/reset/request", c.RequestPasswordReset)
	h.Post("/password/reset/confirm", c.ConfirmPasswordReset)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	token, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.TokenResponse{Token: token})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	token, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	return ctx.JSON(dto.TokenResponse{Token: token})
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	me, err := c.authService.Me(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if me == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	return ctx.JSON(me)
}

func (c *authController) RequestPasswordReset(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.authService.RequestPasswordReset(ctx.Context(), &req); err != nil {
		return err
	}

	// Always ok, regardless of whether the email exists.
	return ctx.JSON(dto.OkResponse{Ok: true})
}

func (c *authController) ConfirmPasswordReset(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.authService.ConfirmPasswordReset(ctx.Context(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidResetCode) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset code")
		}
		return err
	}

	return ctx.JSON(dto.OkResponse{Ok: true})
}
