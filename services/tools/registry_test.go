package tools

import (
	"testing"

	"stopover/models"
	"stopover/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeSession() *models.BookingSession {
	return &models.BookingSession{
		SessionID:        "sess-1",
		ConversationID:   "conv-1",
		CustomerID:       "cust-42",
		CustomerName:     "Alex Johnson",
		BookingReference: "X4HG8",
		Status:           models.SessionActive,
	}
}

func sessionWithSummary() *models.BookingSession {
	s := activeSession()
	s.Selection = models.StopoverSelection{
		CategoryID: models.CategoryPremium,
		HotelID:    "millennium",
		Timing:     models.TimingOutbound,
		Nights:     2,
		Extras: models.SelectedExtras{
			TransferID: "private-transfer",
			Tours:      []models.TourSelection{{TourID: "desert-safari", Quantity: 2}},
		},
	}
	return s
}

func TestRegistryNamesInFunnelOrder(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{
		ToolListCategories,
		ToolSelectStopoverCategory,
		ToolSelectHotel,
		ToolSelectTimingAndDuration,
		ToolSelectExtras,
		ToolInitiatePayment,
		ToolCompleteBooking,
	}, r.Names())

	decls := r.Declarations()
	require.Len(t, decls, 7)
	for i, d := range decls {
		assert.Equal(t, r.Names()[i], d.Name)
		assert.NotEmpty(t, d.Description)
		require.NotNil(t, d.Parameters)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	r := NewRegistry()
	sess := activeSession()
	before := *sess

	res := r.Dispatch("cancelFlight", nil, sess)
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.NotEmpty(t, res.Message)
	assert.Nil(t, res.SessionPatch)
	assert.Equal(t, before, *sess, "a failed dispatch must not touch the session")
}

func TestListCategories(t *testing.T) {
	r := NewRegistry()
	res := r.Dispatch(ToolListCategories, nil, activeSession())

	require.True(t, res.Success)
	require.NotNil(t, res.UIComponent)
	assert.Equal(t, models.UICategories, res.UIComponent.Type)
	assert.Nil(t, res.SessionPatch)
}

func TestSelectCategory(t *testing.T) {
	r := NewRegistry()

	t.Run("valid category patches the selection", func(t *testing.T) {
		sess := activeSession()
		res := r.Dispatch(ToolSelectStopoverCategory, map[string]any{"categoryId": models.CategoryPremium}, sess)

		require.True(t, res.Success)
		require.NotNil(t, res.UIComponent)
		assert.Equal(t, models.UIHotels, res.UIComponent.Type)
		require.NotNil(t, res.SessionPatch)
		require.NotNil(t, res.SessionPatch.Selection)
		assert.Equal(t, models.CategoryPremium, res.SessionPatch.Selection.CategoryID)

		// The tool itself leaves the session alone; only Apply changes it.
		assert.Empty(t, sess.Selection.CategoryID)
		res.SessionPatch.Apply(sess)
		assert.Equal(t, models.CategoryPremium, sess.Selection.CategoryID)
	})

	t.Run("unknown category fails without a patch", func(t *testing.T) {
		sess := activeSession()
		res := r.Dispatch(ToolSelectStopoverCategory, map[string]any{"categoryId": "economy"}, sess)

		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
		assert.Nil(t, res.SessionPatch)
	})

	t.Run("missing argument fails", func(t *testing.T) {
		res := r.Dispatch(ToolSelectStopoverCategory, map[string]any{}, activeSession())
		assert.False(t, res.Success)
	})

	t.Run("changing category resets downstream choices", func(t *testing.T) {
		sess := sessionWithSummary()
		res := r.Dispatch(ToolSelectStopoverCategory, map[string]any{"categoryId": models.CategoryLuxury}, sess)

		require.True(t, res.Success)
		require.NotNil(t, res.SessionPatch.Selection)
		got := res.SessionPatch.Selection
		assert.Equal(t, models.CategoryLuxury, got.CategoryID)
		assert.Empty(t, got.HotelID)
		assert.Zero(t, got.Nights)
		assert.Empty(t, got.Extras.TransferID)
		assert.Empty(t, got.Extras.Tours)
	})

	t.Run("re-selecting the same category keeps downstream choices", func(t *testing.T) {
		sess := sessionWithSummary()
		res := r.Dispatch(ToolSelectStopoverCategory, map[string]any{"categoryId": models.CategoryPremium}, sess)

		require.True(t, res.Success)
		assert.Equal(t, "millennium", res.SessionPatch.Selection.HotelID)
	})
}

func TestSelectHotel(t *testing.T) {
	r := NewRegistry()

	t.Run("requires a category first", func(t *testing.T) {
		res := r.Dispatch(ToolSelectHotel, map[string]any{"hotelId": "millennium"}, activeSession())
		assert.False(t, res.Success)
	})

	t.Run("rejects a hotel from another category", func(t *testing.T) {
		sess := activeSession()
		sess.Selection.CategoryID = models.CategoryPremium
		res := r.Dispatch(ToolSelectHotel, map[string]any{"hotelId": "raffles-iconic"}, sess)

		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "not in category")
	})

	t.Run("valid hotel shows timing options", func(t *testing.T) {
		sess := activeSession()
		sess.Selection.CategoryID = models.CategoryPremium
		res := r.Dispatch(ToolSelectHotel, map[string]any{"hotelId": "millennium"}, sess)

		require.True(t, res.Success)
		assert.Equal(t, models.UIOptions, res.UIComponent.Type)
		require.NotNil(t, res.SessionPatch.Selection)
		assert.Equal(t, "millennium", res.SessionPatch.Selection.HotelID)
	})
}

func TestSelectTimingAndDuration(t *testing.T) {
	r := NewRegistry()

	base := func() *models.BookingSession {
		sess := activeSession()
		sess.Selection.CategoryID = models.CategoryPremium
		sess.Selection.HotelID = "millennium"
		return sess
	}

	tests := []struct {
		name    string
		timing  string
		nights  any
		wantOK  bool
	}{
		{"one night outbound", models.TimingOutbound, float64(1), true},
		{"four nights return", models.TimingReturn, float64(4), true},
		{"zero nights rejected", models.TimingOutbound, float64(0), false},
		{"five nights rejected not clamped", models.TimingOutbound, float64(5), false},
		{"bad timing rejected", "midway", float64(2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Dispatch(ToolSelectTimingAndDuration,
				map[string]any{"timing": tt.timing, "nights": tt.nights}, base())

			assert.Equal(t, tt.wantOK, res.Success)
			if tt.wantOK {
				require.NotNil(t, res.SessionPatch.Selection)
				assert.Equal(t, tt.timing, res.SessionPatch.Selection.Timing)
				assert.Equal(t, models.UIExtras, res.UIComponent.Type)
			} else {
				assert.Nil(t, res.SessionPatch)
			}
		})
	}

	t.Run("requires a hotel first", func(t *testing.T) {
		res := r.Dispatch(ToolSelectTimingAndDuration,
			map[string]any{"timing": models.TimingOutbound, "nights": float64(2)}, activeSession())
		assert.False(t, res.Success)
	})
}

func TestSelectExtras(t *testing.T) {
	r := NewRegistry()

	base := func() *models.BookingSession {
		sess := activeSession()
		sess.Selection = models.StopoverSelection{
			CategoryID: models.CategoryPremium,
			HotelID:    "millennium",
			Timing:     models.TimingOutbound,
			Nights:     2,
		}
		return sess
	}

	t.Run("summary totals for transfer plus safari", func(t *testing.T) {
		res := r.Dispatch(ToolSelectExtras, map[string]any{
			"transferId": "private-transfer",
			"tours":      []any{map[string]any{"tourId": "desert-safari", "quantity": float64(2)}},
		}, base())

		require.True(t, res.Success, res.Error)
		assert.Equal(t, models.UISummary, res.UIComponent.Type)

		data, ok := res.UIComponent.Data.(map[string]any)
		require.True(t, ok)
		pricing, ok := data["pricing"].(models.PricingBreakdown)
		require.True(t, ok)
		assert.Equal(t, 865.0, pricing.TotalCashPrice)
		assert.Equal(t, int64(108125), pricing.TotalLoyaltyPrice)
	})

	t.Run("no extras is a valid choice", func(t *testing.T) {
		res := r.Dispatch(ToolSelectExtras, map[string]any{}, base())

		require.True(t, res.Success, res.Error)
		require.NotNil(t, res.SessionPatch.Selection)
		assert.Empty(t, res.SessionPatch.Selection.Extras.TransferID)
		assert.Empty(t, res.SessionPatch.Selection.Extras.Tours)
	})

	t.Run("unknown tour rejected", func(t *testing.T) {
		res := r.Dispatch(ToolSelectExtras, map[string]any{
			"tours": []any{map[string]any{"tourId": "moon-walk", "quantity": float64(1)}},
		}, base())
		assert.False(t, res.Success)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		res := r.Dispatch(ToolSelectExtras, map[string]any{
			"tours": []any{map[string]any{"tourId": "desert-safari", "quantity": float64(0)}},
		}, base())
		assert.False(t, res.Success)
	})

	t.Run("requires hotel and duration first", func(t *testing.T) {
		res := r.Dispatch(ToolSelectExtras, map[string]any{}, activeSession())
		assert.False(t, res.Success)
	})
}

func TestInitiatePayment(t *testing.T) {
	r := NewRegistry()

	t.Run("card prepares a payment intent without charging", func(t *testing.T) {
		sess := sessionWithSummary()
		res := r.Dispatch(ToolInitiatePayment, map[string]any{"method": "card", "amount": 865.0}, sess)

		require.True(t, res.Success, res.Error)
		assert.Equal(t, models.UIForm, res.UIComponent.Type)

		form, ok := res.UIComponent.Data.(PaymentForm)
		require.True(t, ok)
		assert.Equal(t, "card", form.Method)
		assert.Equal(t, 865.0, form.AmountCash)
		require.NotNil(t, form.Intent)
		assert.Equal(t, int64(86500), *form.Intent.Amount)
		assert.Nil(t, form.LoyaltyDebit)

		require.NotNil(t, res.SessionPatch)
		assert.Equal(t, "card", res.SessionPatch.PaymentMethod)
	})

	t.Run("loyalty prepares an avios debit", func(t *testing.T) {
		sess := sessionWithSummary()
		res := r.Dispatch(ToolInitiatePayment, map[string]any{"method": "loyalty-currency", "amount": 108125.0}, sess)

		require.True(t, res.Success, res.Error)
		form, ok := res.UIComponent.Data.(PaymentForm)
		require.True(t, ok)
		assert.Equal(t, int64(108125), form.AmountLoyalty)
		require.NotNil(t, form.LoyaltyDebit)
		assert.Equal(t, "cust-42", form.LoyaltyDebit.MemberID)
		assert.Nil(t, form.Intent)
	})

	t.Run("rejects unknown methods", func(t *testing.T) {
		res := r.Dispatch(ToolInitiatePayment, map[string]any{"method": "cheque", "amount": 865.0}, sessionWithSummary())
		assert.False(t, res.Success)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		res := r.Dispatch(ToolInitiatePayment, map[string]any{"method": "card", "amount": 0.0}, sessionWithSummary())
		assert.False(t, res.Success)
	})

	t.Run("rejects payment before a summary exists", func(t *testing.T) {
		res := r.Dispatch(ToolInitiatePayment, map[string]any{"method": "card", "amount": 100.0}, activeSession())
		assert.False(t, res.Success)
	})
}

func TestCompleteBooking(t *testing.T) {
	r := NewRegistry()

	t.Run("issues a fresh reference and confirms", func(t *testing.T) {
		sess := sessionWithSummary()
		sess.PaymentMethod = "card"
		res := r.Dispatch(ToolCompleteBooking, nil, sess)

		require.True(t, res.Success, res.Error)
		require.NotNil(t, res.SessionPatch)
		assert.Equal(t, models.SessionConfirmed, res.SessionPatch.Status)

		newRef := res.SessionPatch.NewReference
		assert.Len(t, newRef, 6)
		assert.NotEqual(t, sess.BookingReference, newRef)
		assert.Contains(t, res.Message, newRef)
	})

	t.Run("requires payment first", func(t *testing.T) {
		res := r.Dispatch(ToolCompleteBooking, nil, sessionWithSummary())
		assert.False(t, res.Success)
	})

	t.Run("rejects a second confirmation", func(t *testing.T) {
		sess := sessionWithSummary()
		sess.PaymentMethod = "card"
		sess.Status = models.SessionConfirmed
		sess.NewReference = "AB12CD"
		res := r.Dispatch(ToolCompleteBooking, nil, sess)

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "AB12CD")
	})

	t.Run("confirmed booking rejects every tool", func(t *testing.T) {
		for _, name := range r.Names() {
			sess := sessionWithSummary()
			sess.Status = models.SessionConfirmed
			sess.NewReference = "AB12CD"
			res := r.Dispatch(name, map[string]any{"categoryId": models.CategoryPremium}, sess)

			assert.False(t, res.Success, name)
			assert.Nil(t, res.SessionPatch, name)
		}
	})
}

func TestPaymentAmountMatchesRecomputedPricing(t *testing.T) {
	r := NewRegistry()
	sess := sessionWithSummary()
	want := catalog.ComputePricing(sess.Selection, sess.Selection.Nights)

	res := r.Dispatch(ToolInitiatePayment, map[string]any{"method": "card", "amount": want.TotalCashPrice}, sess)
	require.True(t, res.Success)
	form := res.UIComponent.Data.(PaymentForm)
	assert.Equal(t, want.TotalCashPrice, form.AmountCash)
}
