package model

import (
	"sort"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

// Weights of the destination popularity score.
const (
	popWeightCount     = 0.3
	popWeightAvgRating = 0.4
	popWeightCompleted = 0.2
	popWeightUsers     = 0.1
)

// AggregateDestinationStats reduces the record set into per-destination
// stats, ordered by popularity score descending. Destinations are visited
// in lexical order before the stable sort, so equal scores always resolve
// the same way.
func AggregateDestinationStats(records []domain.BookingRecord) []domain.DestinationStats {
	type acc struct {
		count     int
		ratingSum float64
		completed int
		users     map[int64]struct{}
	}

	byDest := make(map[string]*acc)
	for _, rec := range records {
		a := byDest[rec.Destination]
		if a == nil {
			a = &acc{users: make(map[int64]struct{})}
			byDest[rec.Destination] = a
		}
		a.count++
		a.ratingSum += rec.Rating
		if rec.BookingComplete {
			a.completed++
		}
		a.users[rec.UserID] = struct{}{}
	}

	dests := make([]string, 0, len(byDest))
	for dest := range byDest {
		dests = append(dests, dest)
	}
	sort.Strings(dests)

	stats := make([]domain.DestinationStats, 0, len(dests))
	for _, dest := range dests {
		a := byDest[dest]
		avg := a.ratingSum / float64(a.count)
		stats = append(stats, domain.DestinationStats{
			Destination:       dest,
			BookingCount:      a.count,
			AvgRating:         avg,
			CompletedBookings: a.completed,
			UniqueUsers:       len(a.users),
			PopularityScore: popWeightCount*float64(a.count) +
				popWeightAvgRating*avg +
				popWeightCompleted*float64(a.completed) +
				popWeightUsers*float64(len(a.users)),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].PopularityScore > stats[j].PopularityScore
	})
	return stats
}
