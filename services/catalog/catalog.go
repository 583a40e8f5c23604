// Package catalog holds the static stopover programme data and the pure
// pricing/recommendation functions computed over it. Everything here is
// read-only after init and safe to share across conversations without locking.
package catalog

import "stopover/models"

// Categories in display order. Catalog order is load-bearing: recommendation
// ties and listing order both follow it.
var Categories = []models.StopoverCategory{
	{
		ID:            models.CategoryStandard,
		Name:          "Standard",
		PricePerNight: 80,
		ImageKey:      "category-standard",
		Highlights:    []string{"4-star comfort", "City centre locations", "Breakfast included"},
	},
	{
		ID:            models.CategoryPremium,
		Name:          "Premium",
		PricePerNight: 150,
		ImageKey:      "category-premium",
		Highlights:    []string{"5-star properties", "West Bay and Corniche views", "Club lounge access"},
	},
	{
		ID:            models.CategoryPremiumBeach,
		Name:          "Premium Beach",
		PricePerNight: 215,
		ImageKey:      "category-premium-beach",
		Highlights:    []string{"Private beach resorts", "Pools and water sports", "Family friendly"},
	},
	{
		ID:            models.CategoryLuxury,
		Name:          "Luxury",
		PricePerNight: 320,
		ImageKey:      "category-luxury",
		Highlights:    []string{"Flagship suites", "Butler service", "Fine dining"},
	},
}

var Hotels = []models.HotelOption{
	{
		ID:            "oryx-city",
		Name:          "Oryx City Hotel",
		CategoryID:    models.CategoryStandard,
		PricePerNight: 80,
		ImageKey:      "hotel-oryx-city",
		Amenities:     []string{"Free Wi-Fi", "Rooftop pool", "Souq Waqif 10 min away"},
	},
	{
		ID:            "corniche-park",
		Name:          "Corniche Park Towers",
		CategoryID:    models.CategoryStandard,
		PricePerNight: 80,
		ImageKey:      "hotel-corniche-park",
		Amenities:     []string{"Free Wi-Fi", "Gym", "Corniche promenade access"},
	},
	{
		ID:            "millennium",
		Name:          "Millennium Hotel Doha",
		CategoryID:    models.CategoryPremium,
		PricePerNight: 150,
		ImageKey:      "hotel-millennium",
		Amenities:     []string{"Club lounge", "Outdoor pool", "Spa and sauna", "Airport shuttle"},
	},
	{
		ID:            "west-bay-grand",
		Name:          "Grand West Bay",
		CategoryID:    models.CategoryPremium,
		PricePerNight: 150,
		ImageKey:      "hotel-west-bay-grand",
		Amenities:     []string{"Skyline views", "Executive floors", "Three restaurants"},
	},
	{
		ID:            "banana-island",
		Name:          "Banana Island Resort",
		CategoryID:    models.CategoryPremiumBeach,
		PricePerNight: 215,
		ImageKey:      "hotel-banana-island",
		Amenities:     []string{"Private beach", "Overwater villas", "Kids club", "Water sports"},
	},
	{
		ID:            "sealine-beach",
		Name:          "Sealine Beach Resort",
		CategoryID:    models.CategoryPremiumBeach,
		PricePerNight: 215,
		ImageKey:      "hotel-sealine-beach",
		Amenities:     []string{"Beachfront chalets", "Dune access", "Camel rides"},
	},
	{
		ID:            "raffles-iconic",
		Name:          "Raffles Doha",
		CategoryID:    models.CategoryLuxury,
		PricePerNight: 320,
		ImageKey:      "hotel-raffles-iconic",
		Amenities:     []string{"All-suite", "Butler service", "Iconic Katara Towers"},
	},
	{
		ID:            "pearl-royal",
		Name:          "The Pearl Royal",
		CategoryID:    models.CategoryLuxury,
		PricePerNight: 320,
		ImageKey:      "hotel-pearl-royal",
		Amenities:     []string{"Marina views", "Michelin dining", "Private yacht charter"},
	},
}

var Tours = []models.TourOption{
	{
		ID:            "desert-safari",
		Name:          "Desert Safari & Inland Sea",
		PricePerGuest: 195,
		DurationHours: 6,
		ImageKey:      "tour-desert-safari",
		Highlights:    []string{"Dune bashing", "Inland sea", "Sunset camp", "adventure", "desert"},
	},
	{
		ID:            "city-highlights",
		Name:          "Doha City Highlights",
		PricePerGuest: 95,
		DurationHours: 4,
		ImageKey:      "tour-city-highlights",
		Highlights:    []string{"Museum of Islamic Art", "Souq Waqif", "Katara village", "culture", "city"},
	},
	{
		ID:            "dhow-cruise",
		Name:          "Traditional Dhow Cruise",
		PricePerGuest: 65,
		DurationHours: 2,
		ImageKey:      "tour-dhow-cruise",
		Highlights:    []string{"Corniche skyline", "Evening sail", "Refreshments", "relaxation", "sea"},
	},
	{
		ID:            "pearl-diving",
		Name:          "Pearl Diving Experience",
		PricePerGuest: 240,
		DurationHours: 5,
		ImageKey:      "tour-pearl-diving",
		Highlights:    []string{"Heritage diving", "Boat trip", "Keep your pearl", "adventure", "sea"},
	},
}

var Transfers = []models.TransferOption{
	{
		ID:          "private-transfer",
		Name:        "Private Airport Transfer",
		Price:       60,
		ImageKey:    "transfer-private",
		Description: "Chauffeured sedan between Hamad International and your hotel, both ways.",
	},
	{
		ID:          "luxury-transfer",
		Name:        "Luxury Transfer",
		Price:       120,
		ImageKey:    "transfer-luxury",
		Description: "BMW 7 Series with meet-and-greet service, both ways.",
	},
}

// DefaultTransferID is the transfer offered when the customer just says
// "add transfers" without picking one.
const DefaultTransferID = "private-transfer"

// Category returns the category with the given id, or nil when absent.
// Absence is not an error; callers must handle the nil.
func Category(id string) *models.StopoverCategory {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

// Hotel returns the hotel with the given id, or nil when absent.
func Hotel(id string) *models.HotelOption {
	for i := range Hotels {
		if Hotels[i].ID == id {
			return &Hotels[i]
		}
	}
	return nil
}

// Tour returns the tour with the given id, or nil when absent.
func Tour(id string) *models.TourOption {
	for i := range Tours {
		if Tours[i].ID == id {
			return &Tours[i]
		}
	}
	return nil
}

// Transfer returns the transfer with the given id, or nil when absent.
func Transfer(id string) *models.TransferOption {
	for i := range Transfers {
		if Transfers[i].ID == id {
			return &Transfers[i]
		}
	}
	return nil
}

// HotelsByCategory returns the hotels of one category in catalog order.
func HotelsByCategory(categoryID string) []models.HotelOption {
	var out []models.HotelOption
	for _, h := range Hotels {
		if h.CategoryID == categoryID {
			out = append(out, h)
		}
	}
	return out
}
