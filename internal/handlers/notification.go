package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/tanksmart/internal/services"
)

// NotificationHandler exposes the admin-triggered communication operations:
// templated email and SMS sends, the on-demand SMS status refresh and the
// advisory phone lookups.
type NotificationHandler struct {
	dispatch *services.DispatchService
	seven    *services.SevenService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(dispatch *services.DispatchService, seven *services.SevenService) *NotificationHandler {
	return &NotificationHandler{dispatch: dispatch, seven: seven}
}

type sendEmailRequest struct {
	TemplateKey          string `json:"template_key"`
	CustomSubject        string `json:"custom_subject"`
	CustomBody           string `json:"custom_body"`
	DeliveryDateOverride string `json:"delivery_date_override"`
	PaymentDueOverride   string `json:"payment_due_date_override"`
}

// SendEmail renders and sends a templated email for an order.
func (h *NotificationHandler) SendEmail(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var req sendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TemplateKey == "" {
		return fiber.NewError(fiber.StatusBadRequest, "template_key is required")
	}

	opts := services.EmailOptions{
		CustomSubject: req.CustomSubject,
		CustomBody:    req.CustomBody,
	}
	if req.DeliveryDateOverride != "" {
		parsed, err := time.Parse("2006-01-02", req.DeliveryDateOverride)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid delivery date override")
		}
		opts.DeliveryDateOverride = &parsed
	}
	if req.PaymentDueOverride != "" {
		parsed, err := time.Parse("2006-01-02", req.PaymentDueOverride)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payment due date override")
		}
		opts.PaymentDueOverride = &parsed
	}

	comm, err := h.dispatch.SendEmail(c.Context(), orderID, req.TemplateKey, opts)
	if err != nil {
		return sendFailure(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": comm})
}

type sendSMSRequest struct {
	TemplateKey string `json:"template_key"`
	Phone       string `json:"phone"`
}

// SendSMS renders and sends a templated SMS for an order.
func (h *NotificationHandler) SendSMS(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var req sendSMSRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TemplateKey == "" {
		return fiber.NewError(fiber.StatusBadRequest, "template_key is required")
	}

	comm, err := h.dispatch.SendSMS(c.Context(), orderID, req.TemplateKey, req.Phone)
	if err != nil {
		return sendFailure(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": comm})
}

type refreshStatusRequest struct {
	MessageID string `json:"message_id"`
}

// RefreshSMSStatus reconciles the delivery status of a previously sent SMS.
func (h *NotificationHandler) RefreshSMSStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var req refreshStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.MessageID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message_id is required")
	}

	status, err := h.dispatch.RefreshSMSStatus(c.Context(), orderID, req.MessageID)
	if err != nil {
		return sendFailure(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"status": status},
	})
}

type phoneLookupRequest struct {
	Phone string `json:"phone"`
}

// CheckHLR runs the line-reachability lookup for an order's phone number.
func (h *NotificationHandler) CheckHLR(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var req phoneLookupRequest
	_ = c.BodyParser(&req)

	result, err := h.dispatch.CheckHLR(c.Context(), orderID, req.Phone)
	if err != nil {
		return sendFailure(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// CheckCNAM runs the caller-name lookup for an order's phone number.
func (h *NotificationHandler) CheckCNAM(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var req phoneLookupRequest
	_ = c.BodyParser(&req)

	result, err := h.dispatch.CheckCNAM(c.Context(), orderID, req.Phone)
	if err != nil {
		return sendFailure(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// Balance returns the SMS gateway account balance.
func (h *NotificationHandler) Balance(c *fiber.Ctx) error {
	balance, err := h.seven.Balance(c.Context())
	if err != nil {
		return sendFailure(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"balance": balance},
	})
}

// sendFailure maps dispatch errors onto client-facing status codes: missing
// configuration and templates are the operator's problem (4xx), transport
// failures are upstream problems (502).
func sendFailure(err error) error {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	case errors.Is(err, services.ErrTemplateNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no active template for this key")
	case errors.Is(err, services.ErrSMTPNotConfigured):
		return fiber.NewError(fiber.StatusBadRequest, "smtp is not configured")
	case errors.Is(err, services.ErrSevenNotConfigured):
		return fiber.NewError(fiber.StatusBadRequest, "sms gateway is not configured")
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}
