package domain

// ScoredDestination is one entry of a ranked recommendation list, carrying
// the blended score plus the destination's aggregate stats.
type ScoredDestination struct {
	Destination     string  `json:"destination"`
	Score           float64 `json:"score"`
	PopularityScore float64 `json:"popularity_score"`
	BookingCount    int     `json:"booking_count"`
	AvgRating       float64 `json:"avg_rating"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []ScoredDestination
	CacheHit        bool
}
