package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moizrehman/portfolio-api/internal/service"
	"github.com/moizrehman/portfolio-api/internal/util"
)

type OTPHandler struct {
	otps *service.OTPService
}

type otpRequest struct {
	Action   string  `json:"action"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Message  string  `json:"message"`
	FileName *string `json:"fileName"`
	Code     string  `json:"code"`
}

type otpFormData struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Message  string  `json:"message"`
	FileName *string `json:"fileName"`
}

type otpVerifyResponse struct {
	Success  bool        `json:"success"`
	Verified bool        `json:"verified"`
	FormData otpFormData `json:"formData"`
}

func RegisterOTP(e *echo.Echo, otps *service.OTPService) {
	handler := &OTPHandler{otps: otps}
	e.POST("/send-otp", handler.handle)
}

// handle dispatches POST /send-otp on the "action" discriminator.
func (h *OTPHandler) handle(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	// Email shape is checked before the action dispatch, so even an
	// unrecognized action reports the email problem first.
	if !service.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, util.Error("Valid email is required"))
	}

	switch req.Action {
	case "send":
		return h.send(c, req)
	case "verify":
		return h.verify(c, req)
	default:
		return c.JSON(http.StatusBadRequest, util.Error("Invalid action"))
	}
}

func (h *OTPHandler) send(c echo.Context, req otpRequest) error {
	err := h.otps.Send(c.Request().Context(), service.OTPSendInput{
		Email:    req.Email,
		Name:     req.Name,
		Message:  req.Message,
		FileName: req.FileName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			return c.JSON(http.StatusBadRequest, util.Error("Valid email is required"))
		case errors.Is(err, service.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, util.Error("Name and message are required"))
		case errors.Is(err, service.ErrOTPCooldown):
			return c.JSON(http.StatusTooManyRequests, util.Error("Please wait before requesting another code"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
		}
	}
	return c.JSON(http.StatusOK, util.Success("OTP sent to your email"))
}

func (h *OTPHandler) verify(c echo.Context, req otpRequest) error {
	sub, err := h.otps.Verify(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			return c.JSON(http.StatusBadRequest, util.Error("Valid email is required"))
		case errors.Is(err, service.ErrMissingCode):
			return c.JSON(http.StatusBadRequest, util.Error("OTP code is required"))
		case errors.Is(err, service.ErrOTPNotFound):
			return c.JSON(http.StatusBadRequest, util.Error("No OTP found. Please request a new code."))
		case errors.Is(err, service.ErrOTPExpired):
			return c.JSON(http.StatusBadRequest, util.Error("OTP expired. Please request a new code."))
		case errors.Is(err, service.ErrOTPMismatch):
			return c.JSON(http.StatusBadRequest, util.Error("Invalid OTP code"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
		}
	}

	return c.JSON(http.StatusOK, otpVerifyResponse{
		Success:  true,
		Verified: true,
		FormData: otpFormData{
			Name:     sub.Name,
			Email:    sub.Email,
			Message:  sub.Message,
			FileName: sub.FileName,
		},
	})
}
