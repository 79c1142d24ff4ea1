package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tanksmart/internal/pricing"
	"github.com/example/tanksmart/internal/services"
	"github.com/example/tanksmart/internal/wizard"
)

// CheckoutHandler drives the six-step checkout wizard over HTTP. The draft
// lives server-side in the session registry; the storefront only sends step
// updates and navigation commands.
type CheckoutHandler struct {
	sessions *wizard.Registry
	orders   *services.OrderService
	settings *services.SettingsService
	dispatch *services.DispatchService
	telegram *services.TelegramService
	roster   []pricing.Provider
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(sessions *wizard.Registry, orders *services.OrderService,
	settings *services.SettingsService, dispatch *services.DispatchService,
	telegram *services.TelegramService, roster []pricing.Provider) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		orders:   orders,
		settings: settings,
		dispatch: dispatch,
		telegram: telegram,
		roster:   roster,
	}
}

const sessionHeader = "X-Checkout-Session"

func (h *CheckoutHandler) session(c *fiber.Ctx) (*wizard.Session, error) {
	token := c.Get(sessionHeader)
	if token == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing checkout session header")
	}

	session, ok := h.sessions.Get(token)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "checkout session not found or expired")
	}
	return session, nil
}

// CreateSession starts a new checkout and returns its token. An optional
// gclid query parameter is captured for attribution.
func (h *CheckoutHandler) CreateSession(c *fiber.Ctx) error {
	token, session := h.sessions.Create()

	if gclid := c.Query("gclid"); gclid != "" {
		session.Draft.Gclid = gclid
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":        token,
			"current_step": session.CurrentStep,
			"draft":        session.Draft,
		},
	})
}

// GetState returns the current draft and step.
func (h *CheckoutHandler) GetState(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	session.Lock()
	defer session.Unlock()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"current_step": session.CurrentStep,
			"draft":        session.Draft,
			"can_proceed":  session.CanProceed(session.CurrentStep),
		},
	})
}

type draftUpdateRequest struct {
	PostalCode *string          `json:"postal_code"`
	City       *string          `json:"city"`
	OilType    *pricing.OilType `json:"oil_type"`
	Quantity   *int             `json:"quantity"`
	Additive   *string          `json:"additive"`

	DeliveryDate *wizard.Date `json:"delivery_date"`
	TimeSlot     *string      `json:"time_slot"`

	Street          *string `json:"street"`
	HouseNumber     *string `json:"house_number"`
	TruckAccessible *bool   `json:"truck_accessible"`
	HoseLength      *string `json:"hose_length"`
	DeliveryNotes   *string `json:"delivery_notes"`

	Salutation         *string `json:"salutation"`
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	BillingAddressSame *bool   `json:"billing_address_same"`
	BillingStreet      *string `json:"billing_street"`
	BillingHouseNumber *string `json:"billing_house_number"`
	BillingPostalCode  *string `json:"billing_postal_code"`
	BillingCity        *string `json:"billing_city"`
	Remarks            *string `json:"remarks"`

	AcceptedTerms   *bool `json:"accepted_terms"`
	AcceptedPrivacy *bool `json:"accepted_privacy"`

	Gclid *string `json:"gclid"`
}

const maxRemarksLength = 500

// UpdateDraft applies partial field updates to the draft. Product changes
// reprice an already selected provider.
func (h *CheckoutHandler) UpdateDraft(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	var req draftUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	session.Lock()
	defer session.Unlock()

	if req.OilType != nil && !req.OilType.Valid() {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "unknown oil type")
	}
	if req.Quantity != nil && (*req.Quantity < pricing.MinQuantity || *req.Quantity > pricing.MaxQuantity) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "quantity must be between 500 and 50000 liters")
	}
	if req.Remarks != nil && len(*req.Remarks) > maxRemarksLength {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "remarks too long")
	}

	d := &session.Draft
	productChanged := false

	if req.PostalCode != nil {
		d.PostalCode = *req.PostalCode
	}
	if req.City != nil {
		d.City = *req.City
	}
	if req.OilType != nil {
		d.OilType = *req.OilType
		productChanged = true
	}
	if req.Quantity != nil {
		d.Quantity = *req.Quantity
		productChanged = true
	}
	if req.Additive != nil {
		d.Additive = *req.Additive
	}
	if req.DeliveryDate != nil {
		d.DeliveryDate = req.DeliveryDate
	}
	if req.TimeSlot != nil {
		d.TimeSlot = *req.TimeSlot
	}
	if req.Street != nil {
		d.Street = *req.Street
	}
	if req.HouseNumber != nil {
		d.HouseNumber = *req.HouseNumber
	}
	if req.TruckAccessible != nil {
		d.TruckAccessible = *req.TruckAccessible
	}
	if req.HoseLength != nil {
		d.HoseLength = *req.HoseLength
	}
	if req.DeliveryNotes != nil {
		d.DeliveryNotes = *req.DeliveryNotes
	}
	if req.Salutation != nil {
		d.Salutation = *req.Salutation
	}
	if req.FirstName != nil {
		d.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		d.LastName = *req.LastName
	}
	if req.Email != nil {
		d.Email = *req.Email
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}
	if req.BillingAddressSame != nil {
		d.BillingAddressSame = *req.BillingAddressSame
	}
	if req.BillingStreet != nil {
		d.BillingStreet = *req.BillingStreet
	}
	if req.BillingHouseNumber != nil {
		d.BillingHouseNumber = *req.BillingHouseNumber
	}
	if req.BillingPostalCode != nil {
		d.BillingPostalCode = *req.BillingPostalCode
	}
	if req.BillingCity != nil {
		d.BillingCity = *req.BillingCity
	}
	if req.Remarks != nil {
		d.Remarks = *req.Remarks
	}
	if req.AcceptedTerms != nil {
		d.AcceptedTerms = *req.AcceptedTerms
	}
	if req.AcceptedPrivacy != nil {
		d.AcceptedPrivacy = *req.AcceptedPrivacy
	}
	if req.Gclid != nil {
		d.Gclid = *req.Gclid
	}

	if productChanged {
		session.Reprice(h.settings.MarketPrice(c.Context()))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"current_step": session.CurrentStep,
			"draft":        session.Draft,
			"can_proceed":  session.CanProceed(session.CurrentStep),
		},
	})
}

type selectProviderRequest struct {
	ProviderID string `json:"provider_id"`
}

// SelectProvider chooses a reseller, computes the draft pricing and advances
// to the date step.
func (h *CheckoutHandler) SelectProvider(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	var req selectProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	provider, ok := pricing.FindProvider(h.roster, req.ProviderID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown provider")
	}

	marketPrice := h.settings.MarketPrice(c.Context())
	session.Lock()
	defer session.Unlock()
	session.SelectProvider(provider, marketPrice)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"current_step":    session.CurrentStep,
			"price_per_liter": session.Draft.PricePerLiter,
			"total_price":     session.Draft.TotalPrice,
		},
	})
}

// Advance moves the wizard forward one step.
func (h *CheckoutHandler) Advance(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Advance(); err != nil {
		if errors.Is(err, wizard.ErrStepIncomplete) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "current step is incomplete")
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"current_step": session.CurrentStep},
	})
}

type backRequest struct {
	Step int `json:"step"`
}

// Back navigates to an earlier, already completed step.
func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	var req backRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Back(req.Step); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid step")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"current_step": session.CurrentStep},
	})
}

// Submit finalizes the checkout: the draft becomes a persisted order, the
// session resets and the order number is returned. When auto-confirmation is
// enabled the confirmation email goes out; a mail failure never fails the
// order.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	token := c.Get(sessionHeader)
	session, err := h.session(c)
	if err != nil {
		return err
	}

	session.Lock()
	draft := session.Draft
	orderNumber, err := session.Submit(c.Context(), h.orders)
	session.Unlock()
	if err != nil {
		if errors.Is(err, wizard.ErrStepIncomplete) || errors.Is(err, wizard.ErrNotOnFinalStep) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return fiber.NewError(fiber.StatusBadGateway, "order could not be saved, please try again")
	}

	h.sessions.Delete(token)
	h.afterSubmit(c, orderNumber, draft.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"order_number": orderNumber},
	})
}

func (h *CheckoutHandler) afterSubmit(c *fiber.Ctx, orderNumber, email string) {
	ctx := c.Context()

	order, err := h.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		log.Printf("[Checkout] post-submit lookup failed for %s: %v", orderNumber, err)
		return
	}

	if err := h.telegram.NotifyNewOrder(order); err != nil {
		log.Printf("[Checkout] telegram alert failed for %s: %v", orderNumber, err)
	}

	if !h.settings.AutoConfirmationEnabled(ctx) {
		return
	}
	if _, err := h.dispatch.SendEmail(ctx, order.ID, "order_confirmation", services.EmailOptions{}); err != nil {
		log.Printf("[Checkout] auto-confirmation email failed for %s (%s): %v", orderNumber, email, err)
	}
}
