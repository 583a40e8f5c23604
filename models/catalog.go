package models

// Category identifiers form a closed set; every StopoverCategory and HotelOption
// carries one of these values.
const (
	CategoryStandard     = "standard"
	CategoryPremium      = "premium"
	CategoryPremiumBeach = "premium-beach"
	CategoryLuxury       = "luxury"
)

// StopoverCategory is one tier of the stopover programme (room class + nightly rate).
type StopoverCategory struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PricePerNight float64  `json:"pricePerNight"`
	ImageKey      string   `json:"imageKey"`
	Highlights    []string `json:"highlights"`
}

// HotelOption is a bookable property within a category.
type HotelOption struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CategoryID    string   `json:"categoryId"`
	PricePerNight float64  `json:"pricePerNight"`
	ImageKey      string   `json:"imageKey"`
	Amenities     []string `json:"amenities"`
}

// TourOption is an optional excursion priced per person.
type TourOption struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PricePerGuest float64  `json:"pricePerGuest"`
	DurationHours int      `json:"durationHours"`
	ImageKey      string   `json:"imageKey"`
	Highlights    []string `json:"highlights"`
}

// TransferOption is an airport transfer priced per booking.
type TransferOption struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageKey    string  `json:"imageKey"`
	Description string  `json:"description"`
}
