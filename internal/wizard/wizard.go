// Package wizard drives the six-step checkout: a single mutable order draft,
// per-step validation predicates and gated forward navigation.
package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/pricing"
)

// Checkout steps in order.
const (
	StepProduct      = 1
	StepProvider     = 2
	StepDate         = 3
	StepDelivery     = 4
	StepPersonalData = 5
	StepPayment      = 6
)

var (
	ErrStepIncomplete = errors.New("current step is not complete")
	ErrInvalidStep    = errors.New("invalid step")
	ErrNotOnFinalStep = errors.New("draft can only be submitted from the payment step")
)

// Draft is the in-progress order state held during checkout. It mirrors the
// persisted order but stays ephemeral until submission.
type Draft struct {
	// Step 1 - Product
	PostalCode string          `json:"postal_code"`
	City       string          `json:"city"`
	OilType    pricing.OilType `json:"oil_type"`
	Quantity   int             `json:"quantity"`
	Additive   string          `json:"additive"`

	// Step 2 - Provider
	Provider      *pricing.Provider `json:"provider"`
	PricePerLiter float64           `json:"price_per_liter"`
	TotalPrice    float64           `json:"total_price"`

	// Step 3 - Date
	DeliveryDate *Date  `json:"delivery_date"`
	TimeSlot     string `json:"time_slot"`

	// Step 4 - Delivery
	Street          string `json:"street"`
	HouseNumber     string `json:"house_number"`
	TruckAccessible bool   `json:"truck_accessible"`
	HoseLength      string `json:"hose_length"`
	DeliveryNotes   string `json:"delivery_notes"`

	// Step 5 - Personal data
	Salutation         string `json:"salutation"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	BillingAddressSame bool   `json:"billing_address_same"`
	BillingStreet      string `json:"billing_street"`
	BillingHouseNumber string `json:"billing_house_number"`
	BillingPostalCode  string `json:"billing_postal_code"`
	BillingCity        string `json:"billing_city"`
	Remarks            string `json:"remarks"`

	// Step 6 - Consent
	AcceptedTerms   bool `json:"accepted_terms"`
	AcceptedPrivacy bool `json:"accepted_privacy"`

	// Attribution
	Gclid string `json:"gclid"`
}

// NewDraft returns the empty initial draft state.
func NewDraft() Draft {
	return Draft{
		OilType:            pricing.OilStandard,
		Quantity:           2000,
		Additive:           "none",
		TimeSlot:           "flexible",
		TruckAccessible:    true,
		HoseLength:         "standard",
		Salutation:         "herr",
		BillingAddressSame: true,
	}
}

// Session is one active checkout: the draft plus the navigation position.
// Sessions are shared between requests carrying the same token; callers must
// hold the session lock around any read or mutation.
type Session struct {
	mu sync.Mutex

	Draft       Draft `json:"draft"`
	CurrentStep int   `json:"current_step"`
}

// NewSession starts a checkout on the product step.
func NewSession() *Session {
	return &Session{Draft: NewDraft(), CurrentStep: StepProduct}
}

// Lock takes the session lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// CanProceed reports whether the given step's validation predicate holds.
func (s *Session) CanProceed(step int) bool {
	d := &s.Draft
	switch step {
	case StepProduct:
		return len(d.PostalCode) == 5 && d.Quantity >= pricing.MinQuantity
	case StepProvider:
		return d.Provider != nil
	case StepDate:
		return d.DeliveryDate != nil
	case StepDelivery:
		return len(d.Street) > 0 && len(d.HouseNumber) > 0
	case StepPersonalData:
		return len(d.FirstName) > 0 &&
			len(d.LastName) > 0 &&
			strings.Contains(d.Email, "@") &&
			len(d.Phone) >= 6
	case StepPayment:
		return d.AcceptedTerms && d.AcceptedPrivacy
	default:
		return false
	}
}

// Advance moves forward one step after the current step's predicate passes.
func (s *Session) Advance() error {
	if s.CurrentStep >= StepPayment {
		return ErrInvalidStep
	}
	if !s.CanProceed(s.CurrentStep) {
		return ErrStepIncomplete
	}
	s.CurrentStep++
	return nil
}

// Back jumps to an earlier step. Backward navigation has no predicate.
func (s *Session) Back(step int) error {
	if step < StepProduct || step > s.CurrentStep {
		return ErrInvalidStep
	}
	s.CurrentStep = step
	return nil
}

// SelectProvider stores the chosen provider, writes the computed pricing into
// the draft and auto-advances from the provider step to the date step.
func (s *Session) SelectProvider(p pricing.Provider, marketPrice float64) {
	s.Draft.Provider = &p
	s.Draft.PricePerLiter, s.Draft.TotalPrice = pricing.ComputePrice(
		s.Draft.Quantity, s.Draft.OilType, p.PriceMultiplier, marketPrice)

	if s.CurrentStep == StepProvider {
		s.CurrentStep = StepDate
	}
}

// Reprice recomputes draft pricing after a product change with a provider
// already selected.
func (s *Session) Reprice(marketPrice float64) {
	if s.Draft.Provider == nil {
		return
	}
	s.Draft.PricePerLiter, s.Draft.TotalPrice = pricing.ComputePrice(
		s.Draft.Quantity, s.Draft.OilType, s.Draft.Provider.PriceMultiplier, marketPrice)
}

// OrderCreator persists a submitted draft and returns the stored record.
type OrderCreator interface {
	Create(ctx context.Context, order *models.Order) error
}

// Submit converts the draft into an order and hands it to the persistence
// collaborator. On success the session resets to its initial state and the
// new order number is returned; on failure the draft is left untouched.
func (s *Session) Submit(ctx context.Context, store OrderCreator) (string, error) {
	if s.CurrentStep != StepPayment {
		return "", ErrNotOnFinalStep
	}
	if !s.CanProceed(StepPayment) {
		return "", ErrStepIncomplete
	}

	order := s.Draft.ToOrder()
	if err := store.Create(ctx, order); err != nil {
		return "", err
	}

	s.Draft = NewDraft()
	s.CurrentStep = StepProduct
	return order.OrderNumber, nil
}

// ToOrder flattens the draft into a persistable order record.
func (d *Draft) ToOrder() *models.Order {
	order := &models.Order{
		Status:             models.StatusPending,
		OilType:            string(d.OilType),
		Quantity:           d.Quantity,
		Additive:           d.Additive,
		PricePerLiter:      d.PricePerLiter,
		TotalPrice:         d.TotalPrice,
		TimeSlot:           d.TimeSlot,
		Street:             d.Street,
		HouseNumber:        d.HouseNumber,
		PostalCode:         d.PostalCode,
		City:               d.City,
		TruckAccessible:    d.TruckAccessible,
		HoseLength:         d.HoseLength,
		DeliveryNotes:      d.DeliveryNotes,
		CustomerSalutation: salutationLabel(d.Salutation),
		CustomerFirstName:  d.FirstName,
		CustomerLastName:   d.LastName,
		CustomerEmail:      d.Email,
		CustomerPhone:      d.Phone,
		Remarks:            d.Remarks,
		PaymentMethod:      "invoice",
		Gclid:              d.Gclid,
	}

	if d.Provider != nil {
		order.ProviderID = d.Provider.ID
		order.ProviderName = d.Provider.Name
	}

	if d.DeliveryDate != nil {
		t := d.DeliveryDate.Time()
		order.DeliveryDate = &t
	}

	if !d.BillingAddressSame {
		order.BillingStreet = d.BillingStreet
		order.BillingHouseNumber = d.BillingHouseNumber
		order.BillingPostalCode = d.BillingPostalCode
		order.BillingCity = d.BillingCity
	}

	return order
}

func salutationLabel(s string) string {
	switch s {
	case "herr":
		return "Herr"
	case "frau":
		return "Frau"
	case "divers":
		return "Divers"
	}
	return "Herr"
}
