package catalog

import (
	"fmt"
	"strings"

	"stopover/models"
)

// RecommendContext is what the scorer knows about the customer's stay.
type RecommendContext struct {
	Nights    int
	Timing    string
	Interests []string
}

// RecommendedTour is a tour plus the reason it was picked.
type RecommendedTour struct {
	Tour   models.TourOption `json:"tour"`
	Reason string            `json:"reason"`
}

// RecommendTour returns the single highest-scoring tour for the context.
// Scoring is deterministic and ties break in catalog order (first listed wins),
// so the same input always yields the same recommendation.
func RecommendTour(tours []models.TourOption, rctx RecommendContext) *RecommendedTour {
	if len(tours) == 0 {
		return nil
	}

	best := 0
	bestScore := scoreTour(tours[0], rctx)
	for i := 1; i < len(tours); i++ {
		if s := scoreTour(tours[i], rctx); s > bestScore {
			best, bestScore = i, s
		}
	}

	tour := tours[best]
	reason := fmt.Sprintf("%s fits a %d-night stay", tour.Name, rctx.Nights)
	if matched := matchedInterests(tour, rctx.Interests); len(matched) > 0 {
		reason += " and matches your interest in " + strings.Join(matched, ", ")
	}
	return &RecommendedTour{Tour: tour, Reason: reason}
}

func scoreTour(t models.TourOption, rctx RecommendContext) int {
	score := 0
	// Short stays favour short tours: a tour should fit comfortably inside one
	// day of the stopover.
	if rctx.Nights <= 1 && t.DurationHours <= 4 {
		score += 2
	}
	if rctx.Nights >= 2 && t.DurationHours >= 5 {
		score += 1
	}
	score += 3 * len(matchedInterests(t, rctx.Interests))
	return score
}

func matchedInterests(t models.TourOption, interests []string) []string {
	var matched []string
	for _, interest := range interests {
		needle := strings.ToLower(strings.TrimSpace(interest))
		if needle == "" {
			continue
		}
		for _, h := range t.Highlights {
			if strings.Contains(strings.ToLower(h), needle) {
				matched = append(matched, interest)
				break
			}
		}
	}
	return matched
}
