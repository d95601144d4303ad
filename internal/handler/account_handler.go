package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pavelchamgl/booking/internal/dto"
	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/service"
)

type AccountHandler struct {
	svc service.AccountService
}

func NewAccountHandler(svc service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/register/", h.Register)
	g.POST("/email/otp/resend/", h.ResendEmailOTP)
	g.POST("/email/confirmation/", h.ConfirmEmail)
	g.POST("/login/", h.Login)
	g.POST("/token/refresh/", h.RefreshToken)
	g.POST("/password/reset/otp/send/", h.SendResetOTP)
	g.POST("/password/reset/confirmation/", h.ResetPassword)

	g.POST("/logout/", h.Logout, auth)
	g.GET("/profile/me/", h.Profile, auth)
	g.PUT("/profile/update/", h.UpdateProfile, auth)
	g.DELETE("/deletion/me/", h.DeleteAccount, auth)
}

func (h *AccountHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *AccountHandler) ResendEmailOTP(c echo.Context) error {
	return h.sendOTP(c, models.PurposeEmailConfirmation, "Confirmation code sent to your email.")
}

func (h *AccountHandler) SendResetOTP(c echo.Context) error {
	return h.sendOTP(c, models.PurposePasswordReset, "Password reset code sent to your email.")
}

func (h *AccountHandler) sendOTP(c echo.Context, purpose models.OTPPurpose, msg string) error {
	var req dto.EmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.svc.RequestOTP(c.Request().Context(), req.Email, purpose); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

func (h *AccountHandler) ConfirmEmail(c echo.Context) error {
	var req dto.EmailConfirmationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, pair, err := h.svc.ConfirmEmail(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.TokenResponse{
		Message:  "Email confirmed.",
		Username: user.Username,
		Refresh:  pair.Refresh,
		Access:   pair.Access,
	})
}

func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req dto.PasswordResetConfirmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.Password); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset."})
}

func (h *AccountHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, pair, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.TokenResponse{
		Username: user.Username,
		Refresh:  pair.Refresh,
		Access:   pair.Access,
	})
}

func (h *AccountHandler) RefreshToken(c echo.Context) error {
	var req dto.RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	access, err := h.svc.RefreshToken(c.Request().Context(), req.Refresh)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.AccessTokenResponse{Access: access})
}

func (h *AccountHandler) Logout(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.svc.Logout(c.Request().Context(), userID, req.RefreshToken); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out."})
}

func (h *AccountHandler) Profile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.svc.Profile(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), userID, service.ProfileInput{
		Username:    req.Username,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteAccount(c.Request().Context(), userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
