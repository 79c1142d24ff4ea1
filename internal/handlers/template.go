package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/services"
)

// TemplateHandler manages the notification template catalogue.
type TemplateHandler struct {
	templates *services.TemplateService
}

// NewTemplateHandler constructs TemplateHandler.
func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List returns all templates, active or not, optionally filtered by channel.
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	channel := c.Query("channel")
	if channel != "" && channel != models.ChannelEmail && channel != models.ChannelSMS {
		return fiber.NewError(fiber.StatusBadRequest, "channel must be email or sms")
	}

	templates, err := h.templates.List(c.Context(), channel)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": templates})
}

type saveTemplateRequest struct {
	ID          *uuid.UUID `json:"id"`
	TemplateKey string     `json:"template_key"`
	Channel     string     `json:"channel"`
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	IsActive    *bool      `json:"is_active"`
}

// Save creates or updates a template.
func (h *TemplateHandler) Save(c *fiber.Ctx) error {
	var req saveTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TemplateKey == "" {
		return fiber.NewError(fiber.StatusBadRequest, "template_key is required")
	}
	if req.Channel != models.ChannelEmail && req.Channel != models.ChannelSMS {
		return fiber.NewError(fiber.StatusBadRequest, "channel must be email or sms")
	}
	if req.Body == "" {
		return fiber.NewError(fiber.StatusBadRequest, "body is required")
	}
	if req.Channel == models.ChannelEmail && req.Subject == "" {
		return fiber.NewError(fiber.StatusBadRequest, "subject is required for email templates")
	}

	template := models.NotificationTemplate{
		TemplateKey: req.TemplateKey,
		Channel:     req.Channel,
		Name:        req.Name,
		Subject:     req.Subject,
		Body:        req.Body,
		IsActive:    true,
	}
	if req.ID != nil {
		template.ID = *req.ID
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := h.templates.Save(c.Context(), &template); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": template})
}

// Delete removes a template by id.
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid template id")
	}

	if err := h.templates.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Template deleted",
	})
}
