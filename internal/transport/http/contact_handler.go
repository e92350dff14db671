package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/service"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/util"
)

type ContactHandler struct {
	contact *service.ContactService
}

func RegisterContact(e *echo.Echo, contact *service.ContactService) {
	handler := &ContactHandler{contact: contact}
	e.POST("/api/contact", handler.submit)
}

func (h *ContactHandler) submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("name, email and message are required"))
	}

	if _, err := h.contact.Submit(c.Request().Context(), req.Name, req.Email, req.Message); err != nil {
		switch {
		case errors.Is(err, service.ErrContactInvalid):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not submit message"))
		}
	}
	return c.JSON(http.StatusCreated, util.Message("message received"))
}
