package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/tanksmart/internal/config"
)

// ErrSevenNotConfigured is returned when the SMS gateway has no API key.
var ErrSevenNotConfigured = errors.New("seven gateway is not configured")

var sevenHTTPClient = &http.Client{Timeout: 15 * time.Second}

// SevenService talks to the seven.io SMS gateway: sending, delivery status,
// account balance and the advisory HLR/CNAM phone lookups.
type SevenService struct {
	baseURL  string
	apiKey   string
	senderID string
	client   *http.Client
}

// NewSevenService constructs a SevenService from configuration.
func NewSevenService(cfg *config.Config) *SevenService {
	return &SevenService{
		baseURL:  strings.TrimRight(cfg.SevenBaseURL, "/"),
		apiKey:   cfg.SevenAPIKey,
		senderID: cfg.SevenSenderID,
		client:   sevenHTTPClient,
	}
}

// Configured reports whether an API key is present.
func (s *SevenService) Configured() bool {
	return s.apiKey != ""
}

// SMSResult is the gateway's synchronous answer to a send.
type SMSResult struct {
	Accepted  bool
	MessageID string
	Raw       json.RawMessage
}

type sevenSMSResponse struct {
	Success  string `json:"success"`
	Messages []struct {
		ID json.Number `json:"id"`
	} `json:"messages"`
}

// SendSMS dispatches a text message. The gateway's accept code "100" marks
// the message as transmitted; anything else is a rejection.
func (s *SevenService) SendSMS(ctx context.Context, to, text string) (*SMSResult, error) {
	if !s.Configured() {
		return nil, ErrSevenNotConfigured
	}

	payload, _ := json.Marshal(map[string]string{
		"to":   to,
		"text": text,
		"from": s.senderID,
	})

	body, err := s.do(ctx, http.MethodPost, "/sms", nil, payload)
	if err != nil {
		return nil, err
	}

	var parsed sevenSMSResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("seven sms response: %w", err)
	}

	result := &SMSResult{
		Accepted: parsed.Success == "100",
		Raw:      json.RawMessage(body),
	}
	if len(parsed.Messages) > 0 {
		result.MessageID = parsed.Messages[0].ID.String()
	}
	return result, nil
}

// Status fetches the raw delivery status text for a message id.
func (s *SevenService) Status(ctx context.Context, messageID string) (string, error) {
	if !s.Configured() {
		return "", ErrSevenNotConfigured
	}

	body, err := s.do(ctx, http.MethodGet, "/status", url.Values{"msg_id": {messageID}}, nil)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(string(body))), nil
}

// Balance returns the account balance in euros.
func (s *SevenService) Balance(ctx context.Context) (float64, error) {
	if !s.Configured() {
		return 0, ErrSevenNotConfigured
	}

	body, err := s.do(ctx, http.MethodGet, "/balance", nil, nil)
	if err != nil {
		return 0, err
	}

	balance, err := strconv.ParseFloat(strings.TrimSpace(string(body)), 64)
	if err != nil {
		return 0, fmt.Errorf("seven balance response %q: %w", string(body), err)
	}
	return balance, nil
}

// HLRResult condenses the gateway's line-reachability lookup.
type HLRResult struct {
	Valid               bool            `json:"valid"`
	Reachable           bool            `json:"reachable"`
	Carrier             string          `json:"carrier"`
	NetworkType         string          `json:"network_type"`
	Country             string          `json:"country"`
	InternationalFormat string          `json:"international_format"`
	RawResponse         json.RawMessage `json:"raw_response"`
}

type sevenHLRResponse struct {
	Status         any    `json:"status"`
	StatusMessage  string `json:"status_message"`
	Ported         *bool  `json:"ported"`
	CountryCode    string `json:"country_code"`
	CountryName    string `json:"country_name"`
	International  string `json:"international_format"`
	CurrentCarrier *struct {
		Name        string `json:"name"`
		NetworkType string `json:"network_type"`
	} `json:"current_carrier"`
	OriginalCarrier *struct {
		Name string `json:"name"`
	} `json:"original_carrier"`
}

// LookupHLR checks whether a number is valid and reachable.
func (s *SevenService) LookupHLR(ctx context.Context, number string) (*HLRResult, error) {
	if !s.Configured() {
		return nil, ErrSevenNotConfigured
	}

	body, err := s.do(ctx, http.MethodGet, "/lookup/hlr", url.Values{"number": {number}}, nil)
	if err != nil {
		return nil, err
	}

	var parsed sevenHLRResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("seven hlr response: %w", err)
	}

	result := &HLRResult{
		Valid:               parsed.Status == true || parsed.Status == "valid",
		Reachable:           strings.Contains(strings.ToLower(parsed.StatusMessage), "reachable") || (parsed.Ported != nil && !*parsed.Ported),
		NetworkType:         "unknown",
		Country:             parsed.CountryCode,
		InternationalFormat: number,
		RawResponse:         json.RawMessage(body),
	}
	if parsed.CurrentCarrier != nil {
		result.Carrier = parsed.CurrentCarrier.Name
		if parsed.CurrentCarrier.NetworkType != "" {
			result.NetworkType = parsed.CurrentCarrier.NetworkType
		}
	} else if parsed.OriginalCarrier != nil {
		result.Carrier = parsed.OriginalCarrier.Name
	}
	if result.Carrier == "" {
		result.Carrier = "Unknown"
	}
	if result.Country == "" {
		result.Country = parsed.CountryName
	}
	if parsed.International != "" {
		result.InternationalFormat = parsed.International
	}
	return result, nil
}

// CNAMResult condenses the gateway's caller-name lookup.
type CNAMResult struct {
	Name        string          `json:"name"`
	Number      string          `json:"number"`
	Success     bool            `json:"success"`
	RawResponse json.RawMessage `json:"raw_response"`
}

// LookupCNAM resolves the registered caller name for a number.
func (s *SevenService) LookupCNAM(ctx context.Context, number string) (*CNAMResult, error) {
	if !s.Configured() {
		return nil, ErrSevenNotConfigured
	}

	body, err := s.do(ctx, http.MethodGet, "/lookup/cnam", url.Values{"number": {number}}, nil)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Name   string `json:"name"`
		Number string `json:"number"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("seven cnam response: %w", err)
	}

	result := &CNAMResult{
		Name:        parsed.Name,
		Number:      parsed.Number,
		Success:     parsed.Name != "",
		RawResponse: json.RawMessage(body),
	}
	if result.Number == "" {
		result.Number = number
	}
	return result, nil
}

func (s *SevenService) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("seven request build: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seven request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("seven response read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("seven returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
