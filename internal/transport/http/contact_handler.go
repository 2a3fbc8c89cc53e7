package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moizrehman/portfolio-api/internal/domain"
	"github.com/moizrehman/portfolio-api/internal/service"
	"github.com/moizrehman/portfolio-api/internal/util"
)

type ContactHandler struct {
	contact *service.ContactService
}

func RegisterContact(e *echo.Echo, contact *service.ContactService) {
	handler := &ContactHandler{contact: contact}
	e.POST("/send-contact-email", handler.send)
}

// send handles POST /send-contact-email
func (h *ContactHandler) send(c echo.Context) error {
	var sub domain.ContactSubmission
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.contact.Relay(c.Request().Context(), sub); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingContactFields):
			return c.JSON(http.StatusBadRequest, util.Error("Name, email, and message are required"))
		case errors.Is(err, service.ErrInvalidEmail):
			return c.JSON(http.StatusBadRequest, util.Error("Invalid email format"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
		}
	}

	return c.JSON(http.StatusOK, util.Success("Emails sent successfully"))
}
