package services

import (
	"math"

	"travel-app/tour-review-service/internal/models"
)

// BuildSummary derives the average rating and per-star histogram from a review
// slice. Average and percentages are rounded to one decimal; an empty slice
// yields zeroes.
func BuildSummary(reviews []models.Review) models.RatingSummary {
	counts := make(map[int]int, 5)
	sum := 0
	for _, review := range reviews {
		counts[review.Rating]++
		sum += review.Rating
	}

	total := len(reviews)
	summary := models.RatingSummary{TotalReviews: total}
	if total > 0 {
		summary.Average = roundOne(float64(sum) / float64(total))
	}

	for star := 5; star >= 1; star-- {
		entry := models.StarCount{Star: star, Count: counts[star]}
		if total > 0 {
			entry.Percent = roundOne(float64(counts[star]) / float64(total) * 100)
		}
		summary.Stars = append(summary.Stars, entry)
	}
	return summary
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
