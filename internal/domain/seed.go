package domain

// SeedProducts returns the built-in catalog used until a feed or seed file replaces it
func SeedProducts() []Product {
	return []Product{
		{
			ID:           "1",
			Name:         "AirPods Pro (2nd Gen)",
			Website:      "Amazon India",
			Price:        24900,
			Features:     []string{"Active Noise Cancellation", "Transparency Mode", "Spatial Audio"},
			Rating:       4.8,
			DeliveryTime: "Same Day",
			URL:          "https://amazon.in",
			ImageURL:     "https://picsum.photos/seed/pods1/400/400",
			Category:     "Audio",
		},
		{
			ID:           "2",
			Name:         "AirPods Pro (2nd Gen)",
			Website:      "Flipkart",
			Price:        23999,
			Features:     []string{"MagSafe Case (USB-C)", "H2 Chip", "Up to 6hrs battery"},
			Rating:       4.7,
			DeliveryTime: "2 Days",
			URL:          "https://flipkart.com",
			ImageURL:     "https://picsum.photos/seed/pods2/400/400",
			Category:     "Audio",
		},
		{
			ID:           "3",
			Name:         "Nike Air Max 270",
			Website:      "Myntra",
			Price:        13995,
			Features:     []string{"Knit Upper", "Large Air unit", "Lightweight"},
			Rating:       4.5,
			DeliveryTime: "4 Days",
			URL:          "https://myntra.com",
			ImageURL:     "https://picsum.photos/seed/nike1/400/400",
			Category:     "Footwear",
		},
		{
			ID:           "4",
			Name:         "Sony WH-1000XM5",
			Website:      "Croma",
			Price:        29990,
			Features:     []string{"Industry leading NC", "30hr battery", "Multipoint connection"},
			Rating:       4.9,
			DeliveryTime: "1 Day",
			URL:          "https://croma.com",
			ImageURL:     "https://picsum.photos/seed/sony1/400/400",
			Category:     "Audio",
		},
		{
			ID:           "5",
			Name:         "DeLonghi Dedica Espresso Maker",
			Website:      "Tata CLiQ Luxury",
			Price:        21500,
			Features:     []string{"15 Bar Pressure", "Slim Design", "Manual Milk Frother"},
			Rating:       4.6,
			DeliveryTime: "5 Days",
			URL:          "https://tatacliq.com",
			ImageURL:     "https://picsum.photos/seed/coffee1/400/400",
			Category:     "Kitchen",
		},
	}
}
