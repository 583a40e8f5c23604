package intelligence

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"stopover/models"
	"stopover/services/catalog"
	"stopover/services/tools"
)

// OfflineResponder is a keyword-matching stand-in for the model, used in
// development when no API key is configured. It maps free text onto the same
// tool calls the model would make, keyed off the current conversation step.
// Production always defers to the model; this path never runs there.
type OfflineResponder struct{}

// NewOfflineResponder builds the dev-mode responder.
func NewOfflineResponder() *OfflineResponder { return &OfflineResponder{} }

func (o *OfflineResponder) Complete(_ context.Context, req CompletionRequest) (*ModelTurn, error) {
	return o.respond(req), nil
}

func (o *OfflineResponder) CompleteStream(_ context.Context, req CompletionRequest, emit StreamFunc) (*ModelTurn, error) {
	turn := o.respond(req)
	if emit != nil && turn.Text != "" {
		emit(turn.Text)
	}
	return turn, nil
}

func (o *OfflineResponder) respond(req CompletionRequest) *ModelTurn {
	text := strings.ToLower(req.Input)

	switch req.CurrentStep {
	case models.StepWelcome, "":
		if id := matchCategory(text); id != "" {
			return toolTurn(tools.ToolSelectStopoverCategory, map[string]any{"categoryId": id})
		}
		if containsAny(text, "package", "categor", "stopover", "show", "option") {
			return toolTurn(tools.ToolListCategories, map[string]any{})
		}
	case models.StepCategorySelection:
		if id := matchCategory(text); id != "" {
			return toolTurn(tools.ToolSelectStopoverCategory, map[string]any{"categoryId": id})
		}
		return toolTurn(tools.ToolListCategories, map[string]any{})
	case models.StepHotelSelection:
		if id := matchHotel(text); id != "" {
			return toolTurn(tools.ToolSelectHotel, map[string]any{"hotelId": id})
		}
	case models.StepTimingDuration:
		timing := models.TimingOutbound
		if strings.Contains(text, "return") {
			timing = models.TimingReturn
		}
		if n := firstNumber(text); n > 0 {
			return toolTurn(tools.ToolSelectTimingAndDuration, map[string]any{
				"timing": timing, "nights": float64(n),
			})
		}
	case models.StepExtrasSelection:
		args := map[string]any{}
		if containsAny(text, "transfer", "pickup", "chauffeur") {
			args["transferId"] = catalog.DefaultTransferID
		}
		if id := matchTour(text); id != "" {
			args["tours"] = []any{map[string]any{"tourId": id, "quantity": float64(1)}}
		}
		if len(args) > 0 || containsAny(text, "no extras", "nothing", "skip", "no thanks") {
			return toolTurn(tools.ToolSelectExtras, args)
		}
	case models.StepBookingSummary:
		if containsAny(text, "card", "avios", "loyalty", "points", "pay") {
			method := "card"
			if containsAny(text, "avios", "loyalty", "points") {
				method = "loyalty-currency"
			}
			amount := req.AmountDue
			if method == "loyalty-currency" {
				amount = req.AmountDue * catalog.AviosPerUnit
			}
			return toolTurn(tools.ToolInitiatePayment, map[string]any{
				"method": method, "amount": amount,
			})
		}
	case models.StepPayment:
		if containsAny(text, "confirm", "yes", "done", "complete") {
			return toolTurn(tools.ToolCompleteBooking, map[string]any{})
		}
	}

	return &ModelTurn{Text: "I can help you add a Doha stopover to your booking. Would you like to see the packages?"}
}

func toolTurn(name string, args map[string]any) *ModelTurn {
	return &ModelTurn{FunctionCall: &FunctionCall{Name: name, Args: args}}
}

// matchCategory prefers the longest matching name so "premium beach" resolves
// to premium-beach rather than the premium prefix.
func matchCategory(text string) string {
	best := ""
	bestLen := 0
	for _, c := range catalog.Categories {
		for _, needle := range []string{strings.ToLower(c.Name), c.ID} {
			if len(needle) > bestLen && strings.Contains(text, needle) {
				best = c.ID
				bestLen = len(needle)
			}
		}
	}
	return best
}

func matchHotel(text string) string {
	for _, h := range catalog.Hotels {
		if strings.Contains(text, strings.ToLower(h.Name)) || strings.Contains(text, h.ID) {
			return h.ID
		}
		// First word of the hotel name is usually enough ("millennium").
		first := strings.ToLower(strings.Fields(h.Name)[0])
		if strings.Contains(text, first) {
			return h.ID
		}
	}
	return ""
}

func matchTour(text string) string {
	for _, t := range catalog.Tours {
		if strings.Contains(text, strings.ToLower(t.Name)) || strings.Contains(text, t.ID) {
			return t.ID
		}
		for _, h := range t.Highlights {
			if strings.Contains(text, strings.ToLower(h)) {
				return t.ID
			}
		}
	}
	return ""
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func firstNumber(text string) int {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsDigit(r)
	}) {
		if n, err := strconv.Atoi(field); err == nil {
			return n
		}
	}
	return 0
}
