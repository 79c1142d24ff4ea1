package pricing

// Provider describes a heating-oil reseller offered in the comparison list.
// The roster is injected configuration; the price function only ever sees the
// multiplier.
type Provider struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	PriceMultiplier float64  `json:"price_multiplier"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	DeliveryTime    string   `json:"delivery_time"`
	Certifications  []string `json:"certifications"`
}

// DefaultProviders returns the fixed reseller roster.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ID:              "hoyer",
			Name:            "Hoyer",
			FullName:        "Wilhelm Hoyer B.V. & Co. KG",
			PriceMultiplier: 1.0,
			Rating:          4.8,
			ReviewCount:     3420,
			DeliveryTime:    "2-5 Werktage",
			Certifications:  []string{"RAL-Gütezeichen", "Klimaneutral-Option"},
		},
		{
			ID:              "team-energie",
			Name:            "team energie",
			FullName:        "team energie GmbH & Co. KG",
			PriceMultiplier: 1.02,
			Rating:          4.7,
			ReviewCount:     2890,
			DeliveryTime:    "2-5 Werktage",
			Certifications:  []string{"RAL-Gütezeichen"},
		},
		{
			ID:              "mobene",
			Name:            "mobene",
			FullName:        "mobene GmbH & Co. KG",
			PriceMultiplier: 1.04,
			Rating:          4.6,
			ReviewCount:     1950,
			DeliveryTime:    "3-5 Werktage",
			Certifications:  []string{"RAL-Gütezeichen", "TÜV-geprüft"},
		},
		{
			ID:              "nordoel",
			Name:            "NORDOEL",
			FullName:        "Clement Heins GmbH & Co. KG",
			PriceMultiplier: 1.05,
			Rating:          4.5,
			ReviewCount:     1680,
			DeliveryTime:    "3-5 Werktage",
			Certifications:  []string{"RAL-Gütezeichen"},
		},
		{
			ID:              "baywa",
			Name:            "BayWa Energie",
			FullName:        "BayWa AG – Energie",
			PriceMultiplier: 1.07,
			Rating:          4.6,
			ReviewCount:     2340,
			DeliveryTime:    "2-4 Werktage",
			Certifications:  []string{"RAL-Gütezeichen", "Klimaneutral-Option"},
		},
		{
			ID:              "esso",
			Name:            "Esso Heizöl",
			FullName:        "ExxonMobil Central Europe Holding GmbH",
			PriceMultiplier: 1.09,
			Rating:          4.4,
			ReviewCount:     1120,
			DeliveryTime:    "3-5 Werktage",
			Certifications:  []string{"Premium-Partner"},
		},
	}
}

// FindProvider looks up a roster entry by id.
func FindProvider(roster []Provider, id string) (Provider, bool) {
	for _, p := range roster {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}
