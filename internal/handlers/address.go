package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tanksmart/internal/services"
)

// AddressHandler serves the postal-code and street autocompletion used by the
// checkout address step. Lookup failures degrade to empty results so the
// customer can always type the address manually.
type AddressHandler struct {
	addresses *services.AddressService
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Localities returns candidate localities for a postal code.
func (h *AddressHandler) Localities(c *fiber.Ctx) error {
	postalCode := c.Query("postal_code")

	localities, err := h.addresses.Localities(c.Context(), postalCode)
	if err != nil {
		log.Printf("[Address] locality lookup failed for %s: %v", postalCode, err)
		localities = []services.Locality{}
	}

	return c.JSON(fiber.Map{"success": true, "data": localities})
}

// Streets returns candidate street names for a postal code and name prefix.
func (h *AddressHandler) Streets(c *fiber.Ctx) error {
	postalCode := c.Query("postal_code")
	name := c.Query("name")

	streets, err := h.addresses.Streets(c.Context(), postalCode, name)
	if err != nil {
		log.Printf("[Address] street lookup failed for %s %q: %v", postalCode, name, err)
		streets = []services.Street{}
	}

	return c.JSON(fiber.Map{"success": true, "data": streets})
}
