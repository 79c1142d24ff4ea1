package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tanksmart/internal/pricing"
	"github.com/example/tanksmart/internal/services"
	"github.com/example/tanksmart/internal/wizard"
)

// OrderHandler accepts whole-draft order submissions from storefronts that
// keep the wizard state client-side.
type OrderHandler struct {
	orders   *services.OrderService
	settings *services.SettingsService
	dispatch *services.DispatchService
	telegram *services.TelegramService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService, settings *services.SettingsService,
	dispatch *services.DispatchService, telegram *services.TelegramService) *OrderHandler {
	return &OrderHandler{orders: orders, settings: settings, dispatch: dispatch, telegram: telegram}
}

// Create validates a complete draft against all six step predicates and
// persists it as a pending order.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	session := wizard.NewSession()
	if err := c.BodyParser(&session.Draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if session.Draft.Quantity > pricing.MaxQuantity {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "quantity must be between 500 and 50000 liters")
	}

	for step := wizard.StepProduct; step <= wizard.StepPayment; step++ {
		if !session.CanProceed(step) {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("step %d is incomplete", step))
		}
	}

	order := session.Draft.ToOrder()
	if err := h.orders.Create(c.Context(), order); err != nil {
		log.Printf("[Order] insert failed: %v", err)
		return fiber.NewError(fiber.StatusBadGateway, "order could not be saved, please try again")
	}

	if err := h.telegram.NotifyNewOrder(order); err != nil {
		log.Printf("[Order] telegram alert failed for %s: %v", order.OrderNumber, err)
	}

	if h.settings.AutoConfirmationEnabled(c.Context()) {
		if _, err := h.dispatch.SendEmail(c.Context(), order.ID, "order_confirmation", services.EmailOptions{}); err != nil {
			log.Printf("[Order] auto-confirmation email failed for %s: %v", order.OrderNumber, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
		},
	})
}
