package notify

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/tanksmart/internal/models"
)

// RenderContext carries every placeholder value the template vocabulary
// knows. Fields map 1:1 onto {{token}} names; anything not listed here is an
// unknown token at render time.
type RenderContext struct {
	OrderNumber       string
	OrderDate         string
	CustomerName      string
	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string
	CustomerPhone     string
	OilType           string
	Product           string
	Quantity          string
	PricePerLiter     string
	TotalPrice        string
	DepositAmount     string
	RemainingAmount   string
	PaymentDueDate    string
	Address           string
	Street            string
	HouseNumber       string
	PostalCode        string
	City              string
	DeliveryDate      string
	TimeSlot          string
	ProviderName      string
	BankRecipient     string
	BankIBAN          string
	BankBIC           string
	CompanyName       string
	CompanyEmail      string
	CompanyPhone      string
	CompanyAddress    string
	CompanyCity       string
	CompanyCEO        string
	CompanyRegister   string
	CompanyTaxID      string
}

// Values returns the placeholder map keyed by token name.
func (c RenderContext) Values() map[string]string {
	return map[string]string{
		"order_number":        c.OrderNumber,
		"order_date":          c.OrderDate,
		"customer_name":       c.CustomerName,
		"customer_first_name": c.CustomerFirstName,
		"customer_last_name":  c.CustomerLastName,
		"customer_email":      c.CustomerEmail,
		"customer_phone":      c.CustomerPhone,
		"oil_type":            c.OilType,
		"product":             c.Product,
		"quantity":            c.Quantity,
		"price_per_liter":     c.PricePerLiter,
		"total_price":         c.TotalPrice,
		"deposit_amount":      c.DepositAmount,
		"remaining_amount":    c.RemainingAmount,
		"payment_due_date":    c.PaymentDueDate,
		"address":             c.Address,
		"street":              c.Street,
		"house_number":        c.HouseNumber,
		"postal_code":         c.PostalCode,
		"city":                c.City,
		"delivery_date":       c.DeliveryDate,
		"time_slot":           c.TimeSlot,
		"provider_name":       c.ProviderName,
		"bank_recipient":      c.BankRecipient,
		"bank_iban":           c.BankIBAN,
		"bank_bic":            c.BankBIC,
		"company_name":        c.CompanyName,
		"company_email":       c.CompanyEmail,
		"company_phone":       c.CompanyPhone,
		"company_address":     c.CompanyAddress,
		"company_city":        c.CompanyCity,
		"company_ceo":         c.CompanyCEO,
		"company_register":    c.CompanyRegister,
		"company_tax_id":      c.CompanyTaxID,
	}
}

// ContextOverrides adjust derived values for a single send without touching
// the stored order.
type ContextOverrides struct {
	DeliveryDate   *time.Time
	PaymentDueDate *time.Time
}

// BuildContext assembles the full placeholder context for an order. Monetary
// values get a German decimal comma with two digits, quantities stay plain
// integers, dates are long-form German. The deposit is half the total; the
// payment due date defaults to two days before delivery unless overridden.
func BuildContext(order *models.Order, settings map[string]string, ov ContextOverrides) RenderContext {
	deliveryDate := order.DeliveryDate
	if ov.DeliveryDate != nil {
		deliveryDate = ov.DeliveryDate
	}

	deposit := roundCents(order.TotalPrice * 0.5)
	remaining := roundCents(order.TotalPrice - deposit)

	var paymentDue string
	if ov.PaymentDueDate != nil {
		paymentDue = FormatLongDate(*ov.PaymentDueDate)
	} else if deliveryDate != nil {
		paymentDue = FormatLongDate(deliveryDate.AddDate(0, 0, -2))
	}

	var deliveryDateStr string
	if deliveryDate != nil {
		deliveryDateStr = FormatLongDate(*deliveryDate)
	}

	return RenderContext{
		OrderNumber:       order.OrderNumber,
		OrderDate:         FormatLongDate(order.CreatedAt),
		CustomerName:      fmt.Sprintf("%s %s %s", order.CustomerSalutation, order.CustomerFirstName, order.CustomerLastName),
		CustomerFirstName: order.CustomerFirstName,
		CustomerLastName:  order.CustomerLastName,
		CustomerEmail:     order.CustomerEmail,
		CustomerPhone:     order.CustomerPhone,
		OilType:           OilTypeLabel(order.OilType),
		Product:           OilTypeLabel(order.OilType),
		Quantity:          strconv.Itoa(order.Quantity),
		PricePerLiter:     FormatMoney(order.PricePerLiter),
		TotalPrice:        FormatMoney(order.TotalPrice),
		DepositAmount:     FormatMoney(deposit),
		RemainingAmount:   FormatMoney(remaining),
		PaymentDueDate:    paymentDue,
		Address:           fmt.Sprintf("%s %s, %s %s", order.Street, order.HouseNumber, order.PostalCode, order.City),
		Street:            order.Street,
		HouseNumber:       order.HouseNumber,
		PostalCode:        order.PostalCode,
		City:              order.City,
		DeliveryDate:      deliveryDateStr,
		TimeSlot:          TimeSlotLabel(order.TimeSlot),
		ProviderName:      order.ProviderName,
		BankRecipient:     settings[models.SettingBankRecipient],
		BankIBAN:          settings[models.SettingBankIBAN],
		BankBIC:           settings[models.SettingBankBIC],
		CompanyName:       settingOr(settings, models.SettingCompanyName, "Die Heizer GmbH"),
		CompanyEmail:      settings[models.SettingCompanyEmail],
		CompanyPhone:      settings[models.SettingCompanyPhone],
		CompanyAddress:    settings[models.SettingCompanyAddress],
		CompanyCity:       settings[models.SettingCompanyCity],
		CompanyCEO:        settings[models.SettingCompanyCEO],
		CompanyRegister:   settings[models.SettingCompanyRegister],
		CompanyTaxID:      settings[models.SettingCompanyTaxID],
	}
}

var germanPrinter = message.NewPrinter(language.German)

// FormatMoney renders a monetary value with German separators and exactly two
// decimal digits.
func FormatMoney(v float64) string {
	return germanPrinter.Sprintf("%.2f", v)
}

var germanWeekdays = [...]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}

var germanMonths = [...]string{"", "Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember"}

// FormatLongDate renders "Montag, 2. März 2026".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d. %s %d", germanWeekdays[t.Weekday()], t.Day(), germanMonths[t.Month()], t.Year())
}

// FormatShortDate renders "02.03.2026", the compact form used in SMS bodies.
func FormatShortDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// OilTypeLabel maps an oil grade onto its customer-facing product name.
func OilTypeLabel(oilType string) string {
	switch oilType {
	case "standard":
		return "Heizöl EL Standard"
	case "premium":
		return "Heizöl EL Premium"
	case "bio":
		return "Bio-Heizöl"
	}
	return oilType
}

// TimeSlotLabel maps a delivery time slot onto its customer-facing label.
func TimeSlotLabel(slot string) string {
	switch slot {
	case "morning":
		return "Vormittag (8:00 - 12:00 Uhr)"
	case "afternoon":
		return "Nachmittag (12:00 - 17:00 Uhr)"
	case "flexible":
		return "Flexibel (ganztägig)"
	}
	return slot
}

func settingOr(settings map[string]string, key, fallback string) string {
	if v := settings[key]; v != "" {
		return v
	}
	return fallback
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
