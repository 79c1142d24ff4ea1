package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/pricing"
)

func completeSession() *Session {
	s := NewSession()
	s.Draft.PostalCode = "20095"
	s.Draft.City = "Hamburg"
	s.Draft.Quantity = 3000
	s.SelectProvider(pricing.DefaultProviders()[0], 0.89)
	d := NewDate(time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC))
	s.Draft.DeliveryDate = &d
	s.Draft.Street = "Musterstraße"
	s.Draft.HouseNumber = "12a"
	s.Draft.FirstName = "Max"
	s.Draft.LastName = "Mustermann"
	s.Draft.Email = "max@example.com"
	s.Draft.Phone = "0170 1234567"
	s.Draft.AcceptedTerms = true
	s.Draft.AcceptedPrivacy = true
	s.CurrentStep = StepPayment
	return s
}

func TestCanProceedProductStep(t *testing.T) {
	tests := []struct {
		name       string
		postalCode string
		quantity   int
		want       bool
	}{
		{"valid", "12345", 500, true},
		{"postal code too short", "1234", 2000, false},
		{"postal code too long", "123456", 2000, false},
		{"quantity below minimum", "12345", 499, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession()
			s.Draft.PostalCode = tc.postalCode
			s.Draft.Quantity = tc.quantity
			assert.Equal(t, tc.want, s.CanProceed(StepProduct))
		})
	}
}

func TestCanProceedLaterSteps(t *testing.T) {
	s := NewSession()

	assert.False(t, s.CanProceed(StepProvider))
	s.Draft.Provider = &pricing.Provider{ID: "hoyer"}
	assert.True(t, s.CanProceed(StepProvider))

	assert.False(t, s.CanProceed(StepDate))
	d := NewDate(time.Now())
	s.Draft.DeliveryDate = &d
	assert.True(t, s.CanProceed(StepDate))

	assert.False(t, s.CanProceed(StepDelivery))
	s.Draft.Street = "Musterstraße"
	s.Draft.HouseNumber = "1"
	assert.True(t, s.CanProceed(StepDelivery))

	assert.False(t, s.CanProceed(StepPersonalData))
	s.Draft.FirstName = "Max"
	s.Draft.LastName = "Mustermann"
	s.Draft.Email = "not-an-email"
	s.Draft.Phone = "123456"
	assert.False(t, s.CanProceed(StepPersonalData))
	s.Draft.Email = "max@example.com"
	assert.True(t, s.CanProceed(StepPersonalData))
	s.Draft.Phone = "12345"
	assert.False(t, s.CanProceed(StepPersonalData))
	s.Draft.Phone = "123456"

	assert.False(t, s.CanProceed(StepPayment))
	s.Draft.AcceptedTerms = true
	assert.False(t, s.CanProceed(StepPayment))
	s.Draft.AcceptedPrivacy = true
	assert.True(t, s.CanProceed(StepPayment))

	assert.False(t, s.CanProceed(0))
	assert.False(t, s.CanProceed(7))
}

func TestAdvanceGated(t *testing.T) {
	s := NewSession()
	require.Equal(t, StepProduct, s.CurrentStep)

	err := s.Advance()
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, StepProduct, s.CurrentStep)

	s.Draft.PostalCode = "20095"
	require.NoError(t, s.Advance())
	assert.Equal(t, StepProvider, s.CurrentStep)
}

func TestBack(t *testing.T) {
	s := completeSession()

	// Back never checks predicates.
	s.Draft.PostalCode = ""
	require.NoError(t, s.Back(StepProduct))
	assert.Equal(t, StepProduct, s.CurrentStep)

	assert.ErrorIs(t, s.Back(StepDate), ErrInvalidStep)
	assert.ErrorIs(t, s.Back(0), ErrInvalidStep)
}

func TestSelectProviderWritesPricingAndAdvances(t *testing.T) {
	s := NewSession()
	s.Draft.PostalCode = "20095"
	s.Draft.Quantity = 2000
	require.NoError(t, s.Advance())

	s.SelectProvider(pricing.DefaultProviders()[0], 0.89)

	assert.Equal(t, StepDate, s.CurrentStep)
	require.NotNil(t, s.Draft.Provider)
	assert.Equal(t, "hoyer", s.Draft.Provider.ID)
	assert.InDelta(t, 0.890, s.Draft.PricePerLiter, 1e-9)
	assert.InDelta(t, 1780.00, s.Draft.TotalPrice, 1e-9)
}

func TestReprice(t *testing.T) {
	s := NewSession()
	s.Reprice(0.89) // no provider yet, no-op
	assert.Zero(t, s.Draft.TotalPrice)

	s.SelectProvider(pricing.DefaultProviders()[0], 0.89)
	s.Draft.Quantity = 5000
	s.Reprice(0.89)
	assert.InDelta(t, 0.870, s.Draft.PricePerLiter, 1e-9)
	assert.InDelta(t, 4350.00, s.Draft.TotalPrice, 1e-9)
}

type fakeOrderStore struct {
	created *models.Order
	err     error
	calls   int
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	order.OrderNumber = "TS-20260829-1234"
	f.created = order
	return nil
}

func TestSubmit(t *testing.T) {
	s := completeSession()
	store := &fakeOrderStore{}

	orderNumber, err := s.Submit(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "TS-20260829-1234", orderNumber)

	require.NotNil(t, store.created)
	assert.Equal(t, models.StatusPending, store.created.Status)
	assert.Equal(t, "Herr", store.created.CustomerSalutation)
	assert.Equal(t, "invoice", store.created.PaymentMethod)
	assert.Equal(t, 3000, store.created.Quantity)
	require.NotNil(t, store.created.DeliveryDate)
	assert.Equal(t, time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC), *store.created.DeliveryDate)

	// Session resets to its initial state.
	assert.Equal(t, StepProduct, s.CurrentStep)
	assert.Equal(t, NewDraft(), s.Draft)
}

func TestSubmitWithoutConsentNeverHitsStore(t *testing.T) {
	s := completeSession()
	s.Draft.AcceptedTerms = false
	store := &fakeOrderStore{}

	_, err := s.Submit(context.Background(), store)
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Zero(t, store.calls)
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	s := completeSession()
	store := &fakeOrderStore{err: errors.New("insert failed")}

	_, err := s.Submit(context.Background(), store)
	require.Error(t, err)

	// Draft untouched, still on the payment step.
	assert.Equal(t, StepPayment, s.CurrentStep)
	assert.Equal(t, "Max", s.Draft.FirstName)
	require.NotNil(t, s.Draft.Provider)
}

func TestSubmitFromEarlierStep(t *testing.T) {
	s := completeSession()
	require.NoError(t, s.Back(StepPersonalData))

	_, err := s.Submit(context.Background(), &fakeOrderStore{})
	assert.ErrorIs(t, err, ErrNotOnFinalStep)
}

func TestSessionLockSerializesMutation(t *testing.T) {
	s := NewSession()
	start := s.Draft.Quantity

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Lock()
			s.Draft.Quantity++
			s.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, start+100, s.Draft.Quantity)
}
