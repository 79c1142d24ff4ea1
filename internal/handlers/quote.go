package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tanksmart/internal/pricing"
	"github.com/example/tanksmart/internal/schedule"
	"github.com/example/tanksmart/internal/services"
)

// QuoteHandler serves the public comparison data: the provider roster with
// per-provider prices, the market price and the selectable delivery dates.
type QuoteHandler struct {
	settings *services.SettingsService
	roster   []pricing.Provider
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(settings *services.SettingsService, roster []pricing.Provider) *QuoteHandler {
	return &QuoteHandler{settings: settings, roster: roster}
}

// MarketPrice returns the current market base price per liter.
func (h *QuoteHandler) MarketPrice(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"market_price": h.settings.MarketPrice(c.Context())},
	})
}

type providerQuote struct {
	pricing.Provider
	PricePerLiter float64 `json:"price_per_liter"`
	TotalPrice    float64 `json:"total_price"`
}

// ListProviders returns the roster. With quantity and oil_type query
// parameters each entry carries its computed quote, sorted as configured
// (cheapest multiplier first).
func (h *QuoteHandler) ListProviders(c *fiber.Ctx) error {
	quantity := c.QueryInt("quantity", 0)
	oilType := pricing.OilType(c.Query("oil_type", string(pricing.OilStandard)))

	if quantity == 0 {
		return c.JSON(fiber.Map{"success": true, "data": h.roster})
	}

	if quantity < pricing.MinQuantity || quantity > pricing.MaxQuantity {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "quantity must be between 500 and 50000 liters")
	}
	if !oilType.Valid() {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "unknown oil type")
	}

	marketPrice := h.settings.MarketPrice(c.Context())
	quotes := make([]providerQuote, 0, len(h.roster))
	for _, provider := range h.roster {
		perLiter, total := pricing.ComputePrice(quantity, oilType, provider.PriceMultiplier, marketPrice)
		quotes = append(quotes, providerQuote{
			Provider:      provider,
			PricePerLiter: perLiter,
			TotalPrice:    total,
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": quotes})
}

// DeliveryDates returns the earliest selectable date and every selectable
// date within the requested window (default: the next eight weeks).
func (h *QuoteHandler) DeliveryDates(c *fiber.Ctx) error {
	today := time.Now()
	minDate := schedule.MinSelectableDate(today)

	from := minDate
	to := minDate.AddDate(0, 0, 56)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from date")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to date")
		}
		to = parsed
	}

	selectable := schedule.SelectableDates(from, to, today)
	dates := make([]string, 0, len(selectable))
	for _, d := range selectable {
		dates = append(dates, d.Format("2006-01-02"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"min_date":         minDate.Format("2006-01-02"),
			"selectable_dates": dates,
		},
	})
}
