package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Communication channels.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Delivery statuses of an outbound message. Email records stay at their
// initial status; SMS records are updated in place when a gateway status
// refresh returns a terminal state.
const (
	CommStatusSent         = "sent"
	CommStatusTransmitted  = "transmitted"
	CommStatusDelivered    = "delivered"
	CommStatusNotDelivered = "notdelivered"
)

// OrderCommunication logs one outbound email or SMS for an order.
type OrderCommunication struct {
	BaseModel
	OrderID     uuid.UUID      `gorm:"type:uuid;index" json:"order_id"`
	Channel     string         `json:"channel"`
	TemplateKey string         `json:"template_key"`
	Recipient   string         `json:"recipient"`
	Subject     string         `json:"subject"`
	Body        string         `json:"body"`
	Status      string         `json:"status"`
	Metadata    datatypes.JSON `json:"metadata"`
}
