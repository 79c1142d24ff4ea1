package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/notify"
)

// TelegramService pushes back-office alerts to a Telegram chat. All sends are
// best effort: an unconfigured or failing bot never blocks order processing.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// NotifyNewOrder alerts the admin chat about a freshly submitted order.
func (s *TelegramService) NotifyNewOrder(order *models.Order) error {
	if s.adminChatID == "" {
		return nil
	}

	deliveryDate := "flexibel"
	if order.DeliveryDate != nil {
		deliveryDate = notify.FormatShortDate(*order.DeliveryDate)
	}

	message := fmt.Sprintf(`<b>🛢 NEUE BESTELLUNG!</b>
<b>📋 Bestellung:</b> %s
<b>👤 Kunde:</b> %s %s
<b>📞 Telefon:</b> %s
<b>🛒 Produkt:</b> %s, %d Liter
<b>💰 Gesamt:</b> %s €
<b>🚚 Lieferung:</b> %s, %s %s
<b>📅 Wunschtermin:</b> %s
━━━━━━━━━━━━━━━━━━`,
		order.OrderNumber,
		order.CustomerFirstName,
		order.CustomerLastName,
		order.CustomerPhone,
		notify.OilTypeLabel(order.OilType),
		order.Quantity,
		notify.FormatMoney(order.TotalPrice),
		order.Street+" "+order.HouseNumber,
		order.PostalCode,
		order.City,
		deliveryDate,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

// NotifyPaymentReceived alerts the admin chat when an order is marked delivered
// with payment recorded.
func (s *TelegramService) NotifyPaymentReceived(order *models.Order) error {
	if s.adminChatID == "" {
		return nil
	}

	message := fmt.Sprintf(`<b>✅ ZAHLUNG EINGEGANGEN!</b>
<b>📋 Bestellung:</b> %s
<b>💰 Summe:</b> %s €
━━━━━━━━━━━━━━━━━━`,
		order.OrderNumber,
		notify.FormatMoney(order.TotalPrice),
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}
