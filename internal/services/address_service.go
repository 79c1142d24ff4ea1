package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/example/tanksmart/internal/config"
)

var (
	addressHTTPClient = &http.Client{Timeout: 10 * time.Second}
	postalCodePattern = regexp.MustCompile(`^\d{5}$`)
)

// AddressService queries the OpenPLZ API for localities and street names.
// Results only assist input; they are never authoritative for an order.
type AddressService struct {
	baseURL string
	client  *http.Client
}

// NewAddressService constructs an AddressService.
func NewAddressService(cfg *config.Config) *AddressService {
	return &AddressService{
		baseURL: strings.TrimRight(cfg.AddressAPIBaseURL, "/"),
		client:  addressHTTPClient,
	}
}

// Locality is a postal-code match.
type Locality struct {
	Name         string `json:"name"`
	PostalCode   string `json:"postal_code"`
	Municipality string `json:"municipality"`
}

// Street is a street-name match within a postal code.
type Street struct {
	Name       string `json:"name"`
	PostalCode string `json:"postal_code"`
	Locality   string `json:"locality"`
}

// Localities returns candidate localities for a five-digit postal code.
func (s *AddressService) Localities(ctx context.Context, postalCode string) ([]Locality, error) {
	if !postalCodePattern.MatchString(postalCode) {
		return []Locality{}, nil
	}

	body, err := s.get(ctx, "/Localities", url.Values{"postalCode": {postalCode}})
	if err != nil {
		return nil, err
	}

	var parsed []struct {
		Name         string `json:"name"`
		PostalCode   string `json:"postalCode"`
		Municipality *struct {
			Name string `json:"name"`
		} `json:"municipality"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("locality response: %w", err)
	}

	localities := make([]Locality, 0, len(parsed))
	for _, item := range parsed {
		locality := Locality{Name: item.Name, PostalCode: item.PostalCode}
		if item.Municipality != nil {
			locality.Municipality = item.Municipality.Name
		}
		localities = append(localities, locality)
	}
	return localities, nil
}

// Streets returns candidate street names for a postal code and name prefix.
func (s *AddressService) Streets(ctx context.Context, postalCode, namePrefix string) ([]Street, error) {
	if !postalCodePattern.MatchString(postalCode) || namePrefix == "" {
		return []Street{}, nil
	}

	body, err := s.get(ctx, "/Streets", url.Values{
		"postalCode": {postalCode},
		"name":       {namePrefix},
	})
	if err != nil {
		return nil, err
	}

	var parsed []struct {
		Name       string `json:"name"`
		PostalCode string `json:"postalCode"`
		Locality   *struct {
			Name string `json:"name"`
		} `json:"locality"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("street response: %w", err)
	}

	streets := make([]Street, 0, len(parsed))
	for _, item := range parsed {
		street := Street{Name: item.Name, PostalCode: item.PostalCode}
		if item.Locality != nil {
			street.Locality = item.Locality.Name
		}
		streets = append(streets, street)
	}
	return streets, nil
}

func (s *AddressService) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := s.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("address request build: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("address lookup: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("address response read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("address lookup returned status %d", resp.StatusCode)
	}
	return body, nil
}
