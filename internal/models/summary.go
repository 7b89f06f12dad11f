package models

// RatingSummary is derived from a tour's reviews on every request, nothing is
// persisted.
type RatingSummary struct {
	Average      float64     `json:"average"`
	TotalReviews int         `json:"totalReviews"`
	Stars        []StarCount `json:"stars"`
}

// StarCount holds the histogram entry for a single star value.
type StarCount struct {
	Star    int     `json:"star"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}
