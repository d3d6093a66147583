package domain

// DestinationStats is the aggregated view of one destination across the
// whole training set. Recomputed from scratch on every retrain.
type DestinationStats struct {
	Destination       string  `json:"destination"`
	BookingCount      int     `json:"booking_count"`
	AvgRating         float64 `json:"avg_rating"`
	CompletedBookings int     `json:"completed_bookings"`
	UniqueUsers       int     `json:"unique_users"`
	PopularityScore   float64 `json:"popularity_score"`
}
