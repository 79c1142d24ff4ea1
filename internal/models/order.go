package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order lifecycle statuses. Transitions are unrestricted: the admin may move
// an order from any status to any other.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusScheduled = "scheduled"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusScheduled, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is a submitted heating-oil purchase.
type Order struct {
	BaseModel
	OrderNumber string `gorm:"uniqueIndex" json:"order_number"`
	Status      string `gorm:"index" json:"status"`

	// Product
	OilType  string `json:"oil_type"`
	Quantity int    `json:"quantity"`
	Additive string `json:"additive"`

	// Pricing
	PricePerLiter float64 `json:"price_per_liter"`
	TotalPrice    float64 `json:"total_price"`
	ProviderID    string  `json:"provider_id"`
	ProviderName  string  `json:"provider_name"`

	// Delivery
	DeliveryDate    *time.Time `json:"delivery_date"`
	TimeSlot        string     `json:"time_slot"`
	Street          string     `json:"street"`
	HouseNumber     string     `json:"house_number"`
	PostalCode      string     `gorm:"index" json:"postal_code"`
	City            string     `json:"city"`
	TruckAccessible bool       `json:"truck_accessible"`
	HoseLength      string     `json:"hose_length"`
	DeliveryNotes   string     `json:"delivery_notes"`

	// Customer
	CustomerSalutation string `json:"customer_salutation"`
	CustomerFirstName  string `json:"customer_first_name"`
	CustomerLastName   string `json:"customer_last_name"`
	CustomerEmail      string `json:"customer_email"`
	CustomerPhone      string `json:"customer_phone"`
	BillingStreet      string `json:"billing_street"`
	BillingHouseNumber string `json:"billing_house_number"`
	BillingPostalCode  string `json:"billing_postal_code"`
	BillingCity        string `json:"billing_city"`
	Remarks            string `json:"remarks"`

	PaymentMethod     string     `json:"payment_method"`
	PaymentReceivedAt *time.Time `json:"payment_received_at"`

	// Advisory phone-intelligence results from the SMS gateway.
	PhoneVerified    bool           `json:"phone_verified"`
	PhoneValidatedAt *time.Time     `json:"phone_validated_at"`
	HLRStatus        datatypes.JSON `json:"hlr_status"`
	CNAMStatus       datatypes.JSON `json:"cnam_status"`

	// Google Ads click id captured from the entry URL, if any.
	Gclid string `json:"gclid"`

	Communications []OrderCommunication `json:"communications,omitempty"`
}
