package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/tanksmart/internal/models"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "123,45", FormatMoney(123.45))
	assert.Equal(t, "1.780,00", FormatMoney(1780))
	assert.Equal(t, "0,89", FormatMoney(0.89))
}

func TestFormatLongDate(t *testing.T) {
	d := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Montag, 2. März 2026", FormatLongDate(d))
}

func TestFormatShortDate(t *testing.T) {
	d := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02.03.2026", FormatShortDate(d))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Heizöl EL Premium", OilTypeLabel("premium"))
	assert.Equal(t, "Bio-Heizöl", OilTypeLabel("bio"))
	assert.Equal(t, "somethingelse", OilTypeLabel("somethingelse"))

	assert.Equal(t, "Vormittag (8:00 - 12:00 Uhr)", TimeSlotLabel("morning"))
	assert.Equal(t, "Flexibel (ganztägig)", TimeSlotLabel("flexible"))
}

func testOrder() *models.Order {
	delivery := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	order := &models.Order{
		OrderNumber:        "TS-20260829-1234",
		OilType:            "standard",
		Quantity:           3000,
		PricePerLiter:      0.918,
		TotalPrice:         2754.00,
		ProviderName:       "Hoyer",
		DeliveryDate:       &delivery,
		TimeSlot:           "morning",
		Street:             "Musterstraße",
		HouseNumber:        "12a",
		PostalCode:         "20095",
		City:               "Hamburg",
		CustomerSalutation: "Herr",
		CustomerFirstName:  "Max",
		CustomerLastName:   "Mustermann",
		CustomerEmail:      "max@example.com",
		CustomerPhone:      "+491701234567",
	}
	order.CreatedAt = time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	return order
}

func TestBuildContext(t *testing.T) {
	settings := map[string]string{
		models.SettingBankIBAN:    "DE02120300000000202051",
		models.SettingCompanyName: "TankSmart24 GmbH",
	}

	ctx := BuildContext(testOrder(), settings, ContextOverrides{})

	assert.Equal(t, "TS-20260829-1234", ctx.OrderNumber)
	assert.Equal(t, "Herr Max Mustermann", ctx.CustomerName)
	assert.Equal(t, "Heizöl EL Standard", ctx.OilType)
	assert.Equal(t, ctx.OilType, ctx.Product)
	assert.Equal(t, "3000", ctx.Quantity)
	assert.Equal(t, "2.754,00", ctx.TotalPrice)
	assert.Equal(t, "1.377,00", ctx.DepositAmount)
	assert.Equal(t, "1.377,00", ctx.RemainingAmount)
	assert.Equal(t, "Musterstraße 12a, 20095 Hamburg", ctx.Address)
	assert.Equal(t, "Donnerstag, 10. September 2026", ctx.DeliveryDate)
	// Due date defaults to two days before delivery.
	assert.Equal(t, "Dienstag, 8. September 2026", ctx.PaymentDueDate)
	assert.Equal(t, "DE02120300000000202051", ctx.BankIBAN)
	assert.Equal(t, "TankSmart24 GmbH", ctx.CompanyName)
}

func TestBuildContextOverrides(t *testing.T) {
	due := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	delivery := time.Date(2026, time.September, 21, 0, 0, 0, 0, time.UTC)

	ctx := BuildContext(testOrder(), nil, ContextOverrides{
		DeliveryDate:   &delivery,
		PaymentDueDate: &due,
	})

	assert.Equal(t, "Montag, 21. September 2026", ctx.DeliveryDate)
	assert.Equal(t, "Dienstag, 1. September 2026", ctx.PaymentDueDate)
	// Company name falls back to its default when settings are absent.
	assert.Equal(t, "Die Heizer GmbH", ctx.CompanyName)
}

func TestBuildContextOddTotal(t *testing.T) {
	order := testOrder()
	order.TotalPrice = 100.01
	order.DeliveryDate = nil

	ctx := BuildContext(order, nil, ContextOverrides{})
	// 100.01*0.5 is exactly 50.005, which rounds half away from zero; the
	// remainder picks up the missing cent.
	assert.Equal(t, "50,01", ctx.DepositAmount)
	assert.Equal(t, "50,00", ctx.RemainingAmount)
	assert.Empty(t, ctx.DeliveryDate)
	assert.Empty(t, ctx.PaymentDueDate)
}
