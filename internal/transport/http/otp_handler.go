package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/service"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/util"
)

type OTPHandler struct {
	otp *service.OTPService
}

func RegisterOTP(e *echo.Echo, otp *service.OTPService) {
	handler := &OTPHandler{otp: otp}

	group := e.Group("/api/otp")
	group.POST("/register/request", handler.requestRegister)
	group.POST("/register/verify", handler.verifyRegister)
	group.POST("/login/request", handler.requestLogin)
	group.POST("/login/verify", handler.verifyLogin)
}

func (h *OTPHandler) requestRegister(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("name, email and password are required"))
	}

	if err := h.otp.RequestRegisterOTP(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordTooWeak):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrEmailAlreadyUsed):
			return c.JSON(http.StatusConflict, util.Error("email already registered"))
		case errors.Is(err, service.ErrTooManyRequests):
			return c.JSON(http.StatusTooManyRequests, util.Error("too many requests"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not send code"))
		}
	}
	return c.JSON(http.StatusOK, util.Message("code sent"))
}

func (h *OTPHandler) verifyRegister(c echo.Context) error {
	var req OTPVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("email and code are required"))
	}

	result, err := h.otp.VerifyRegisterOTP(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return h.verifyError(c, err)
	}
	return c.JSON(http.StatusCreated, newAuthEnvelope(result))
}

func (h *OTPHandler) requestLogin(c echo.Context) error {
	var req OTPLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("email is required"))
	}

	if err := h.otp.RequestLoginOTP(c.Request().Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			return c.JSON(http.StatusBadRequest, util.Error("invalid email address"))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("no account for this email"))
		case errors.Is(err, service.ErrTooManyRequests):
			return c.JSON(http.StatusTooManyRequests, util.Error("too many requests"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not send code"))
		}
	}
	return c.JSON(http.StatusOK, util.Message("code sent"))
}

func (h *OTPHandler) verifyLogin(c echo.Context) error {
	var req OTPVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("email and code are required"))
	}

	result, err := h.otp.VerifyLoginOTP(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return h.verifyError(c, err)
	}
	return c.JSON(http.StatusOK, newAuthEnvelope(result))
}

func (h *OTPHandler) verifyError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return c.JSON(http.StatusBadRequest, util.Error("invalid email address"))
	case errors.Is(err, service.ErrOTPNotFound),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrOTPAlreadyUsed):
		return c.JSON(http.StatusBadRequest, util.Error("invalid or expired code"))
	case errors.Is(err, service.ErrOTPMismatch):
		return c.JSON(http.StatusBadRequest, util.Error("incorrect code"))
	case errors.Is(err, service.ErrOTPTooManyAttempts):
		return c.JSON(http.StatusTooManyRequests, util.Error("too many incorrect attempts"))
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		return c.JSON(http.StatusConflict, util.Error("email already registered"))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Error("no account for this email"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("could not verify code"))
	}
}
