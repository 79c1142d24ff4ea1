package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/services"
	"github.com/example/tanksmart/internal/utils"
)

// AdminHandler manages the back-office order endpoints.
type AdminHandler struct {
	orders   *services.OrderService
	telegram *services.TelegramService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(orders *services.OrderService, telegram *services.TelegramService) *AdminHandler {
	return &AdminHandler{orders: orders, telegram: telegram}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.orders.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// ListOrders returns orders with pagination, status filter and search.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	orders, total, err := h.orders.List(c.Context(), services.OrderFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order including its communication log.
func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.Get(c.Context(), id)
	if errors.Is(err, services.ErrOrderNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// ListCommunications returns the communication log for one order.
func (h *AdminHandler) ListCommunications(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	comms, err := h.orders.Communications(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": comms})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus transitions an order to a new lifecycle status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.UpdateStatus(c.Context(), id, req.Status)
	if errors.Is(err, services.ErrOrderNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	if order.Status == models.StatusDelivered && order.PaymentReceivedAt != nil {
		if err := h.telegram.NotifyPaymentReceived(order); err != nil {
			log.Printf("[Admin] telegram alert failed for %s: %v", order.OrderNumber, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":                  order.ID,
			"status":              order.Status,
			"payment_received_at": order.PaymentReceivedAt,
		},
	})
}

type bulkDeleteRequest struct {
	IDs     []string `json:"ids"`
	Confirm bool     `json:"confirm"`
}

// BulkDelete permanently removes the selected orders and their
// communications. The explicit confirm flag guards against accidental
// multi-select deletes.
func (h *AdminHandler) BulkDelete(c *fiber.Ctx) error {
	var req bulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !req.Confirm {
		return fiber.NewError(fiber.StatusBadRequest, "bulk delete requires confirmation")
	}
	if len(req.IDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no order ids given")
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order id "+raw)
		}
		ids = append(ids, id)
	}

	if err := h.orders.BulkDelete(c.Context(), ids); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"deleted": len(ids)},
	})
}
