package model

import (
	"sort"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

// RankedSource is one recommender's ordered candidate list together with
// its blend weight.
type RankedSource struct {
	Name         string
	Destinations []string
	Weight       float64
}

// Blend merges ranked candidate lists into a single list of at most n
// destinations. A destination at rank i of a source contributes
// (2n − i)·weight; sources are expected to be fetched at twice the target
// size, and shorter lists keep the same base. Ties keep first-seen order.
// Destinations with no stats entry in the snapshot are dropped: every
// source draws from the same record set as the stats, so a miss means the
// candidate is not a real destination of this model.
func (s *Snapshot) Blend(sources []RankedSource, n int) []domain.ScoredDestination {
	base := 2 * n
	scores := make(map[string]float64)
	var order []string
	for _, src := range sources {
		for i, dest := range src.Destinations {
			if _, seen := scores[dest]; !seen {
				order = append(order, dest)
			}
			scores[dest] += float64(base-i) * src.Weight
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}

	result := make([]domain.ScoredDestination, 0, len(order))
	for _, dest := range order {
		st, ok := s.StatsFor(dest)
		if !ok {
			continue
		}
		result = append(result, domain.ScoredDestination{
			Destination:     dest,
			Score:           scores[dest],
			PopularityScore: st.PopularityScore,
			BookingCount:    st.BookingCount,
			AvgRating:       st.AvgRating,
		})
	}
	return result
}
