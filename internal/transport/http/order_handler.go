package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/service"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/util"
)

type OrderHandler struct {
	orders *service.OrderService
}

func RegisterOrders(e *echo.Echo, auth *service.AuthService, orders *service.OrderService) {
	handler := &OrderHandler{orders: orders}

	group := e.Group("/api/orders", RequireAuth(auth))
	group.POST("", handler.createOrder)
	group.GET("", handler.listOrders)
	group.GET("/summary/by-product", handler.summaryByProduct)
	group.GET("/:id", handler.getOrder)
}

func (h *OrderHandler) createOrder(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("order must contain at least one valid item"))
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	order, err := h.orders.Create(c.Request().Context(), user.ID, items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderInvalid):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not create order"))
		}
	}
	return c.JSON(http.StatusCreated, util.Data("order", order))
}

func (h *OrderHandler) listOrders(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.orders.List(c.Request().Context(), user.ID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list orders"))
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, util.Data("orders", orders))
}

func (h *OrderHandler) getOrder(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("order id must be a valid UUID"))
	}

	order, err := h.orders.Get(c.Request().Context(), user.ID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, util.Error("order not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not load order"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("order", order))
}

func (h *OrderHandler) summaryByProduct(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	summary, err := h.orders.SummaryByProduct(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not build summary"))
	}
	if summary == nil {
		summary = []domain.ProductSummary{}
	}
	return c.JSON(http.StatusOK, util.Data("summary", summary))
}
