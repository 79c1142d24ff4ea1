package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/services"
)

// SettingsHandler reads and writes the flat application settings.
type SettingsHandler struct {
	settings *services.SettingsService
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// knownSettingKeys guards against the settings table becoming a dumping
// ground for arbitrary keys.
var knownSettingKeys = map[string]bool{
	models.SettingMarketPrice:           true,
	models.SettingAutoOrderConfirmation: true,
	models.SettingBankRecipient:         true,
	models.SettingBankIBAN:              true,
	models.SettingBankBIC:               true,
	models.SettingCompanyName:           true,
	models.SettingCompanyEmail:          true,
	models.SettingCompanyPhone:          true,
	models.SettingCompanyAddress:        true,
	models.SettingCompanyCity:           true,
	models.SettingCompanyCEO:            true,
	models.SettingCompanyRegister:       true,
	models.SettingCompanyTaxID:          true,
}

// List returns every stored setting.
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	values, err := h.settings.GetAll(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": values})
}

type updateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

// Update upserts one or more settings in a single request.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Settings) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "settings must not be empty")
	}

	for key, value := range req.Settings {
		if !knownSettingKeys[key] {
			return fiber.NewError(fiber.StatusBadRequest, "unknown setting key: "+key)
		}
		if key == models.SettingMarketPrice {
			price, err := strconv.ParseFloat(value, 64)
			if err != nil || price <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "market_price must be a positive number")
			}
		}
		if key == models.SettingAutoOrderConfirmation && value != "true" && value != "false" {
			return fiber.NewError(fiber.StatusBadRequest, "auto_order_confirmation must be true or false")
		}
	}

	for key, value := range req.Settings {
		if err := h.settings.Set(c.Context(), key, value); err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Settings updated",
	})
}
