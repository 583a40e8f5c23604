package tools

import (
	"fmt"

	"stopover/models"
	"stopover/services/catalog"
	"stopover/utils"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stripe/stripe-go/v76"
)

// PaymentForm is the descriptor behind the "form" UI component. For card
// payments it embeds a prepared (never executed) Stripe PaymentIntent payload;
// loyalty payments carry an Avios debit instead.
type PaymentForm struct {
	Method        string                      `json:"method"`
	AmountCash    float64                     `json:"amountCash,omitempty"`
	AmountLoyalty int64                       `json:"amountLoyalty,omitempty"`
	Currency      string                      `json:"currency"`
	Intent        *stripe.PaymentIntentParams `json:"intent,omitempty"`
	LoyaltyDebit  *LoyaltyDebit               `json:"loyaltyDebit,omitempty"`
}

// LoyaltyDebit describes a points redemption against the member account.
type LoyaltyDebit struct {
	MemberID string `json:"memberId"`
	Avios    int64  `json:"avios"`
}

func bookingDefinitions() []Definition {
	return []Definition{
		{
			Name:        ToolListCategories,
			Description: "Show the customer the available stopover package categories with nightly prices.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Execute: execListCategories,
		},
		{
			Name:        ToolSelectStopoverCategory,
			Description: "Record the customer's chosen stopover category and show the hotels available in it.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"categoryId": {
						Type:        genai.TypeString,
						Description: "Identifier of the chosen category.",
						Enum: []string{
							models.CategoryStandard, models.CategoryPremium,
							models.CategoryPremiumBeach, models.CategoryLuxury,
						},
					},
				},
				Required: []string{"categoryId"},
			},
			Execute: execSelectCategory,
		},
		{
			Name:        ToolSelectHotel,
			Description: "Record the customer's chosen hotel and show stopover timing and duration options.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"hotelId": {
						Type:        genai.TypeString,
						Description: "Identifier of the chosen hotel from the presented list.",
					},
				},
				Required: []string{"hotelId"},
			},
			Execute: execSelectHotel,
		},
		{
			Name:        ToolSelectTimingAndDuration,
			Description: "Record whether the stopover is on the outbound or return leg and for how many nights, then show the optional extras.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"timing": {
						Type:        genai.TypeString,
						Description: "Which leg of the journey the stopover is on.",
						Enum:        []string{models.TimingOutbound, models.TimingReturn},
					},
					"nights": {
						Type:        genai.TypeInteger,
						Description: "Number of nights, between 1 and 4.",
					},
				},
				Required: []string{"timing", "nights"},
			},
			Execute: execSelectTiming,
		},
		{
			Name:        ToolSelectExtras,
			Description: "Record the customer's optional transfers and tours, then show the full booking summary with pricing.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"transferId": {
						Type:        genai.TypeString,
						Description: "Identifier of the chosen transfer, omit for none.",
					},
					"tours": {
						Type:        genai.TypeArray,
						Description: "Tours to add, each with a tourId and guest quantity.",
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"tourId":   {Type: genai.TypeString},
								"quantity": {Type: genai.TypeInteger},
							},
							Required: []string{"tourId", "quantity"},
						},
					},
				},
			},
			Execute: execSelectExtras,
		},
		{
			Name:        ToolInitiatePayment,
			Description: "Start payment for the summarised booking. Requires the payment method and the amount the customer confirmed.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"method": {
						Type:        genai.TypeString,
						Description: "Payment method.",
						Enum:        []string{"card", "loyalty-currency"},
					},
					"amount": {
						Type:        genai.TypeNumber,
						Description: "Amount to charge: cash total for card, Avios total for loyalty-currency.",
					},
				},
				Required: []string{"method", "amount"},
			},
			Execute: execInitiatePayment,
		},
		{
			Name:        ToolCompleteBooking,
			Description: "Finalise the booking after payment details are captured and issue the new booking reference.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Execute: execCompleteBooking,
		},
	}
}

func execListCategories(_ map[string]any, _ *models.BookingSession) *models.ToolResult {
	return &models.ToolResult{
		Success: true,
		Message: "Here are our stopover packages in Doha. Which one suits you best?",
		UIComponent: &models.UIComponent{
			Type: models.UICategories,
			Data: map[string]any{"categories": catalog.Categories},
		},
		QuickReplies: []string{"Premium please", "What's included?"},
	}
}

func execSelectCategory(args map[string]any, session *models.BookingSession) *models.ToolResult {
	categoryID, verr := stringArg(args, "categoryId", true)
	if verr != nil {
		return failure(verr.Error(), "I didn't catch which package you'd like. Could you pick one of the listed categories?")
	}
	cat := catalog.Category(categoryID)
	if cat == nil {
		return failure(fmt.Sprintf("unknown category %q", categoryID),
			"I don't recognise that package. Could you pick one of the listed categories?")
	}

	sel := session.Selection
	if sel.CategoryID != categoryID {
		// Changing category invalidates everything chosen after it.
		sel = models.StopoverSelection{CategoryID: categoryID}
	}
	hotels := catalog.HotelsByCategory(categoryID)
	return &models.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Great choice. Here are our %s hotels, from %s %.0f per night.",
			cat.Name, catalog.Currency, cat.PricePerNight),
		UIComponent: &models.UIComponent{
			Type: models.UIHotels,
			Data: map[string]any{"category": cat, "hotels": hotels},
		},
		SessionPatch: &models.SessionPatch{Selection: &sel},
	}
}

func execSelectHotel(args map[string]any, session *models.BookingSession) *models.ToolResult {
	hotelID, verr := stringArg(args, "hotelId", true)
	if verr != nil {
		return failure(verr.Error(), "Which hotel would you like? Pick one from the list above.")
	}
	hotel := catalog.Hotel(hotelID)
	if hotel == nil {
		return failure(fmt.Sprintf("unknown hotel %q", hotelID),
			"I couldn't find that hotel. Could you choose one from the list?")
	}
	if session.Selection.CategoryID == "" {
		return failure("no category selected yet",
			"Let's pick a stopover package first, then I'll show you its hotels.")
	}
	if hotel.CategoryID != session.Selection.CategoryID {
		return failure(fmt.Sprintf("hotel %q is not in category %q", hotelID, session.Selection.CategoryID),
			"That hotel belongs to a different package. Pick one from the list, or change the package.")
	}

	sel := session.Selection
	sel.HotelID = hotelID
	sel.Timing = ""
	sel.Nights = 0
	sel.Extras = models.SelectedExtras{}
	return &models.ToolResult{
		Success: true,
		Message: fmt.Sprintf("%s it is. Would you like the stopover on your outbound or return journey, and for how many nights (1-%d)?",
			hotel.Name, models.MaxNights),
		UIComponent: &models.UIComponent{
			Type: models.UIOptions,
			Data: map[string]any{
				"hotel":     hotel,
				"timings":   []string{models.TimingOutbound, models.TimingReturn},
				"minNights": models.MinNights,
				"maxNights": models.MaxNights,
			},
		},
		SessionPatch: &models.SessionPatch{Selection: &sel},
	}
}

func execSelectTiming(args map[string]any, session *models.BookingSession) *models.ToolResult {
	timing, verr := stringArg(args, "timing", true)
	if verr != nil {
		return failure(verr.Error(), "Would you like the stopover on your outbound or return journey?")
	}
	if timing != models.TimingOutbound && timing != models.TimingReturn {
		return failure(fmt.Sprintf("invalid timing %q", timing),
			"The stopover can be on the outbound or the return journey. Which would you prefer?")
	}
	nights, verr := intArg(args, "nights", true)
	if verr != nil {
		return failure(verr.Error(), "How many nights would you like to stay?")
	}
	if nights < models.MinNights || nights > models.MaxNights {
		return failure(fmt.Sprintf("nights must be between %d and %d, got %d", models.MinNights, models.MaxNights, nights),
			fmt.Sprintf("Stopovers run from %d to %d nights. How many would you like?", models.MinNights, models.MaxNights))
	}
	if session.Selection.HotelID == "" {
		return failure("no hotel selected yet",
			"Let's choose a hotel first, then we'll sort out the dates.")
	}

	sel := session.Selection
	sel.Timing = timing
	sel.Nights = nights
	recommended := catalog.RecommendTour(catalog.Tours, catalog.RecommendContext{
		Nights: nights,
		Timing: timing,
	})
	return &models.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Perfect, %d night(s) on your %s journey. Would you like to add transfers or tours?", nights, timing),
		UIComponent: &models.UIComponent{
			Type: models.UIExtras,
			Data: map[string]any{
				"tours":       catalog.Tours,
				"transfers":   catalog.Transfers,
				"recommended": recommended,
			},
		},
		QuickReplies: []string{"Add the transfer", "No extras, thanks"},
		SessionPatch: &models.SessionPatch{Selection: &sel},
	}
}

func execSelectExtras(args map[string]any, session *models.BookingSession) *models.ToolResult {
	if session.Selection.HotelID == "" || session.Selection.Nights == 0 {
		return failure("hotel and duration must be selected before extras",
			"Let's finish choosing your hotel and dates first, then we'll add extras.")
	}

	transferID, verr := stringArg(args, "transferId", false)
	if verr != nil {
		return failure(verr.Error(), "I didn't catch which transfer you'd like.")
	}
	if transferID != "" && catalog.Transfer(transferID) == nil {
		return failure(fmt.Sprintf("unknown transfer %q", transferID),
			"I couldn't find that transfer option. Could you pick one from the list?")
	}
	tourArgs, verr := tourListArg(args, "tours")
	if verr != nil {
		return failure(verr.Error(), "I couldn't read the tour selection. Could you pick the tours again?")
	}

	var tours []models.TourSelection
	for _, ta := range tourArgs {
		if catalog.Tour(ta.TourID) == nil {
			return failure(fmt.Sprintf("unknown tour %q", ta.TourID),
				"One of those tours isn't in our catalogue. Could you pick from the list?")
		}
		if ta.Quantity < 1 {
			return failure(fmt.Sprintf("tour %q quantity must be at least 1, got %d", ta.TourID, ta.Quantity),
				"How many guests should I book the tour for?")
		}
		tours = append(tours, models.TourSelection{TourID: ta.TourID, Quantity: ta.Quantity})
	}

	sel := session.Selection
	sel.Extras = models.SelectedExtras{TransferID: transferID, Tours: tours}
	pricing := catalog.ComputePricing(sel, sel.Nights)
	return &models.ToolResult{
		Success: true,
		Message: fmt.Sprintf("Here's your stopover summary. The total comes to %s %.2f, or %d Avios.",
			pricing.Currency, pricing.TotalCashPrice, pricing.TotalLoyaltyPrice),
		UIComponent: &models.UIComponent{
			Type: models.UISummary,
			Data: summaryData(sel, pricing),
		},
		QuickReplies: []string{"Pay by card", "Pay with Avios"},
		SessionPatch: &models.SessionPatch{Selection: &sel},
	}
}

func execInitiatePayment(args map[string]any, session *models.BookingSession) *models.ToolResult {
	method, verr := stringArg(args, "method", true)
	if verr != nil {
		return failure(verr.Error(), "Would you like to pay by card or with Avios?")
	}
	if method != "card" && method != "loyalty-currency" {
		return failure(fmt.Sprintf("invalid payment method %q", method),
			"You can pay by card or with Avios. Which would you prefer?")
	}
	amount, verr := floatArg(args, "amount", true)
	if verr != nil {
		return failure(verr.Error(), "I couldn't work out the amount to charge. Let me show the summary again.")
	}
	if amount <= 0 {
		return failure(fmt.Sprintf("amount must be positive, got %v", amount),
			"That amount doesn't look right. Let me show the summary again.")
	}
	if session.Selection.HotelID == "" || session.Selection.Nights == 0 {
		return failure("booking summary incomplete",
			"We need to finish your selection before payment. Shall we continue where we left off?")
	}

	pricing := catalog.ComputePricing(session.Selection, session.Selection.Nights)
	form := PaymentForm{Method: method, Currency: pricing.Currency}
	if method == "card" {
		form.AmountCash = pricing.TotalCashPrice
		// Prepared only: the widget submits this payload to the payments
		// backend, nothing is charged here.
		form.Intent = &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(pricing.TotalCashPrice * 100)),
			Currency: stripe.String("usd"),
			Params: stripe.Params{Metadata: map[string]string{
				"bookingReference": session.BookingReference,
				"sessionId":        session.SessionID,
			}},
		}
	} else {
		form.AmountLoyalty = pricing.TotalLoyaltyPrice
		form.LoyaltyDebit = &LoyaltyDebit{MemberID: session.CustomerID, Avios: pricing.TotalLoyaltyPrice}
	}

	return &models.ToolResult{
		Success: true,
		Message: "Almost there. Please confirm your payment details below.",
		UIComponent: &models.UIComponent{
			Type: models.UIForm,
			Data: form,
		},
		SessionPatch: &models.SessionPatch{PaymentMethod: method},
	}
}

func execCompleteBooking(_ map[string]any, session *models.BookingSession) *models.ToolResult {
	if session.PaymentMethod == "" {
		return failure("payment has not been initiated",
			"We need your payment details before I can confirm the booking.")
	}
	if session.Status == models.SessionConfirmed {
		return failure("booking already confirmed",
			fmt.Sprintf("Your stopover is already confirmed under reference %s.", session.NewReference))
	}

	newRef := utils.NewBookingReference()
	pricing := catalog.ComputePricing(session.Selection, session.Selection.Nights)
	return &models.ToolResult{
		Success: true,
		Message: fmt.Sprintf("All done, %s! Your stopover is confirmed under reference %s. Enjoy Doha!",
			session.CustomerName, newRef),
		UIComponent: &models.UIComponent{
			Type: models.UISummary,
			Data: map[string]any{
				"confirmed":         true,
				"newReference":      newRef,
				"originalReference": session.BookingReference,
				"selection":         session.Selection,
				"pricing":           pricing,
			},
		},
		SessionPatch: &models.SessionPatch{
			Status:       models.SessionConfirmed,
			NewReference: newRef,
		},
	}
}

func summaryData(sel models.StopoverSelection, pricing models.PricingBreakdown) map[string]any {
	data := map[string]any{
		"selection": sel,
		"pricing":   pricing,
	}
	if h := catalog.Hotel(sel.HotelID); h != nil {
		data["hotel"] = h
	}
	if c := catalog.Category(sel.CategoryID); c != nil {
		data["category"] = c
	}
	if t := catalog.Transfer(sel.Extras.TransferID); t != nil {
		data["transfer"] = t
	}
	return data
}
