package models

// Stopover timing relative to the original itinerary.
const (
	TimingOutbound = "outbound"
	TimingReturn   = "return"
)

// Duration bounds for a stopover, in nights.
const (
	MinNights = 1
	MaxNights = 4
)

// TourSelection pairs a tour with a guest count.
type TourSelection struct {
	TourID   string `json:"tourId"`
	Quantity int    `json:"quantity"`
}

// SelectedExtras holds the optional add-ons chosen during the extras step.
type SelectedExtras struct {
	TransferID string          `json:"transferId,omitempty"`
	Tours      []TourSelection `json:"tours,omitempty"`
}

// StopoverSelection is the customer's in-progress choice. Fields fill in funnel
// order: a hotel implies a category, timing/nights imply a hotel, and so on.
type StopoverSelection struct {
	CategoryID string         `json:"categoryId,omitempty"`
	HotelID    string         `json:"hotelId,omitempty"`
	Timing     string         `json:"timing,omitempty"`
	Nights     int            `json:"nights,omitempty"`
	Extras     SelectedExtras `json:"extras"`
}

// PricingBreakdown is derived from a StopoverSelection and never stored as the
// source of truth; callers recompute it on demand to avoid drift.
type PricingBreakdown struct {
	HotelCost         float64 `json:"hotelCost"`
	FlightFareDelta   float64 `json:"flightFareDelta"`
	TransfersCost     float64 `json:"transfersCost"`
	ToursCost         float64 `json:"toursCost"`
	TotalCashPrice    float64 `json:"totalCashPrice"`
	TotalLoyaltyPrice int64   `json:"totalLoyaltyPrice"`
	Currency          string  `json:"currency"`
}
