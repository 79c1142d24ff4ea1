package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/notify"
)

// DispatchService renders notification templates for an order, hands them to
// the email or SMS transport and records every attempt as an
// OrderCommunication.
type DispatchService struct {
	db          *gorm.DB
	orders      *OrderService
	templates   *TemplateService
	settings    *SettingsService
	mail        *MailService
	seven       *SevenService
	countryCode string
}

// NewDispatchService constructs a DispatchService.
func NewDispatchService(db *gorm.DB, orders *OrderService, templates *TemplateService,
	settings *SettingsService, mail *MailService, seven *SevenService, countryCode string) *DispatchService {
	return &DispatchService{
		db:          db,
		orders:      orders,
		templates:   templates,
		settings:    settings,
		mail:        mail,
		seven:       seven,
		countryCode: countryCode,
	}
}

// EmailOptions adjust a single email send.
type EmailOptions struct {
	CustomSubject        string
	CustomBody           string
	DeliveryDateOverride *time.Time
	PaymentDueOverride   *time.Time
}

var contextSettingKeys = []string{
	models.SettingBankRecipient, models.SettingBankIBAN, models.SettingBankBIC,
	models.SettingCompanyName, models.SettingCompanyEmail, models.SettingCompanyPhone,
	models.SettingCompanyAddress, models.SettingCompanyCity, models.SettingCompanyCEO,
	models.SettingCompanyRegister, models.SettingCompanyTaxID,
}

// SendEmail renders and sends one templated email for an order. A transport
// failure is recorded as a notdelivered communication and returned to the
// caller; there is no automatic retry.
func (s *DispatchService) SendEmail(ctx context.Context, orderID uuid.UUID, templateKey string, opts EmailOptions) (*models.OrderCommunication, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	template, err := s.templates.GetActive(ctx, templateKey, models.ChannelEmail)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetAll(ctx, contextSettingKeys...)
	if err != nil {
		return nil, err
	}

	renderCtx := notify.BuildContext(order, settings, notify.ContextOverrides{
		DeliveryDate:   opts.DeliveryDateOverride,
		PaymentDueDate: opts.PaymentDueOverride,
	})

	subjectSource := template.Subject
	if opts.CustomSubject != "" {
		subjectSource = opts.CustomSubject
	}
	bodySource := template.Body
	if opts.CustomBody != "" {
		bodySource = opts.CustomBody
	}

	subject := notify.Render(subjectSource, renderCtx)
	html := notify.Render(bodySource, renderCtx)
	text := notify.StripHTML(html)

	comm := &models.OrderCommunication{
		OrderID:     order.ID,
		Channel:     models.ChannelEmail,
		TemplateKey: templateKey,
		Recipient:   order.CustomerEmail,
		Subject:     subject,
		Body:        html,
		Status:      models.CommStatusSent,
	}

	if sendErr := s.mail.Send(order.CustomerEmail, subject, html, text); sendErr != nil {
		log.Printf("[Dispatch] email send failed for order %s: %v", order.OrderNumber, sendErr)
		comm.Status = models.CommStatusNotDelivered
		comm.Metadata = mustJSON(map[string]any{"error": sendErr.Error()})
		if err := s.db.WithContext(ctx).Create(comm).Error; err != nil {
			log.Printf("[Dispatch] failed to log email communication: %v", err)
		}
		return comm, sendErr
	}

	if err := s.db.WithContext(ctx).Create(comm).Error; err != nil {
		return comm, fmt.Errorf("log email communication: %w", err)
	}

	log.Printf("[Dispatch] email %s sent to %s for order %s", templateKey, order.CustomerEmail, order.OrderNumber)
	return comm, nil
}

// SendSMS renders and sends one templated SMS for an order, storing the
// gateway message id for later status reconciliation.
func (s *DispatchService) SendSMS(ctx context.Context, orderID uuid.UUID, templateKey, phoneOverride string) (*models.OrderCommunication, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	phone := phoneOverride
	if phone == "" {
		phone = order.CustomerPhone
	}
	if phone == "" {
		return nil, fmt.Errorf("order %s has no phone number", order.OrderNumber)
	}

	template, err := s.templates.GetActive(ctx, templateKey, models.ChannelSMS)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetAll(ctx, contextSettingKeys...)
	if err != nil {
		return nil, err
	}

	renderCtx := notify.BuildContext(order, settings, notify.ContextOverrides{})
	// SMS bodies use the compact date and slot forms.
	if order.DeliveryDate != nil {
		renderCtx.DeliveryDate = notify.FormatShortDate(*order.DeliveryDate)
	}
	renderCtx.TimeSlot = shortTimeSlot(order.TimeSlot)

	text := notify.Render(template.Body, renderCtx)
	recipient := notify.NormalizePhone(phone, s.countryCode)

	result, err := s.seven.SendSMS(ctx, recipient, text)
	if err != nil {
		return nil, err
	}

	status := models.CommStatusTransmitted
	if !result.Accepted {
		status = models.CommStatusNotDelivered
	}

	comm := &models.OrderCommunication{
		OrderID:     order.ID,
		Channel:     models.ChannelSMS,
		TemplateKey: templateKey,
		Recipient:   recipient,
		Body:        text,
		Status:      status,
		Metadata: mustJSON(map[string]any{
			"seven_message_id": result.MessageID,
			"raw_response":     result.Raw,
		}),
	}

	if err := s.db.WithContext(ctx).Create(comm).Error; err != nil {
		return comm, fmt.Errorf("log sms communication: %w", err)
	}

	log.Printf("[Dispatch] sms %s to %s for order %s: %s", templateKey, recipient, order.OrderNumber, status)
	return comm, nil
}

// MapSMSStatus translates the gateway's status vocabulary onto the internal
// enumeration. Unrecognized values fall back to sent rather than failing.
func MapSMSStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case "DELIVERED":
		return models.CommStatusDelivered
	case "TRANSMITTED", "ACCEPTED", "BUFFERED":
		return models.CommStatusTransmitted
	case "NOTDELIVERED", "EXPIRED", "FAILED", "REJECTED":
		return models.CommStatusNotDelivered
	default:
		return models.CommStatusSent
	}
}

// RefreshSMSStatus queries the gateway for the current delivery status of a
// message and updates the matching communication record in place. When no
// record carries the message id, the refresh is a silent no-op.
func (s *DispatchService) RefreshSMSStatus(ctx context.Context, orderID uuid.UUID, messageID string) (string, error) {
	gatewayStatus, err := s.seven.Status(ctx, messageID)
	if err != nil {
		return "", err
	}

	mapped := MapSMSStatus(gatewayStatus)

	var comms []models.OrderCommunication
	if err := s.db.WithContext(ctx).
		Where("order_id = ? AND channel = ?", orderID, models.ChannelSMS).
		Find(&comms).Error; err != nil {
		return mapped, err
	}

	for _, comm := range comms {
		var meta struct {
			SevenMessageID string `json:"seven_message_id"`
		}
		if err := json.Unmarshal(comm.Metadata, &meta); err != nil {
			continue
		}
		if meta.SevenMessageID != messageID {
			continue
		}

		if err := s.db.WithContext(ctx).Model(&models.OrderCommunication{}).
			Where("id = ?", comm.ID).
			Update("status", mapped).Error; err != nil {
			return mapped, err
		}
		log.Printf("[Dispatch] sms %s status refreshed: %s -> %s", messageID, gatewayStatus, mapped)
		break
	}

	return mapped, nil
}

// CheckHLR runs the advisory line-reachability lookup and stores the result
// blob on the order. Failures never block order progression.
func (s *DispatchService) CheckHLR(ctx context.Context, orderID uuid.UUID, phone string) (*HLRResult, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if phone == "" {
		phone = order.CustomerPhone
	}

	result, err := s.seven.LookupHLR(ctx, notify.NormalizePhone(phone, s.countryCode))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{
		"hlr_status":         mustJSON(result),
		"phone_verified":     result.Valid,
		"phone_validated_at": &now,
	}
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).Updates(updates).Error; err != nil {
		return result, err
	}
	return result, nil
}

// CheckCNAM runs the advisory caller-name lookup and stores the result blob
// on the order.
func (s *DispatchService) CheckCNAM(ctx context.Context, orderID uuid.UUID, phone string) (*CNAMResult, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if phone == "" {
		phone = order.CustomerPhone
	}

	result, err := s.seven.LookupCNAM(ctx, notify.NormalizePhone(phone, s.countryCode))
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("cnam_status", mustJSON(result)).Error; err != nil {
		return result, err
	}
	return result, nil
}

func shortTimeSlot(slot string) string {
	switch slot {
	case "morning":
		return "Vormittag"
	case "afternoon":
		return "Nachmittag"
	case "flexible":
		return "Flexibel"
	}
	return slot
}

func mustJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON(`{}`)
	}
	return datatypes.JSON(data)
}
