package catalog

import (
	"math"

	"stopover/models"
)

// FareDelta is the fixed surcharge added to the original fare for routing the
// itinerary through the stopover hub. A real fare engine would derive this per
// market and booking class; the flat value is a deliberate simplification.
const FareDelta = 115.0

// AviosPerUnit converts the cash total into loyalty currency at a fixed rate.
// Same caveat as FareDelta: real conversion varies by market and tier.
const AviosPerUnit = 125.0

// Currency for all catalog prices.
const Currency = "USD"

// ComputePricing derives the full price breakdown for a selection. It is pure:
// the breakdown is recomputed from the selection every time rather than stored,
// so the summary can never drift from the chosen options.
func ComputePricing(sel models.StopoverSelection, nights int) models.PricingBreakdown {
	var hotelCost float64
	if h := Hotel(sel.HotelID); h != nil {
		hotelCost = h.PricePerNight * float64(nights)
	}

	var transfersCost float64
	if t := Transfer(sel.Extras.TransferID); t != nil {
		transfersCost = t.Price
	}

	var toursCost float64
	for _, ts := range sel.Extras.Tours {
		if tour := Tour(ts.TourID); tour != nil {
			toursCost += tour.PricePerGuest * float64(ts.Quantity)
		}
	}

	totalCash := FareDelta + hotelCost + transfersCost + toursCost
	return models.PricingBreakdown{
		HotelCost:         hotelCost,
		FlightFareDelta:   FareDelta,
		TransfersCost:     transfersCost,
		ToursCost:         toursCost,
		TotalCashPrice:    totalCash,
		TotalLoyaltyPrice: int64(math.Round(totalCash * AviosPerUnit)),
		Currency:          Currency,
	}
}
