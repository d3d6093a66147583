package model

import (
	"sort"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

const (
	// Neighborhood size for collaborative filtering.
	cfNeighborCount = 10
	// A neighbor's rating must clear this bar to count as a liked destination.
	cfLikedThreshold = 3.0

	// Weights of the contextual scorers (seasonal, trip-type, origin,
	// preference), which re-rank a filtered slice of the record set.
	ctxWeightCount     = 0.6
	ctxWeightAvgRating = 0.4
)

// Recommenders bundles the per-strategy scorers. Every scorer reads only
// the snapshot it was constructed with; there is no ambient state.
type Recommenders struct {
	snap *Snapshot
}

func NewRecommenders(snap *Snapshot) *Recommenders {
	return &Recommenders{snap: snap}
}

// PopularityBased returns the n destinations with the highest popularity
// score. The snapshot's stats are already in that order.
func (r *Recommenders) PopularityBased(n int) []string {
	stats := r.snap.Stats
	if n > len(stats) {
		n = len(stats)
	}
	dests := make([]string, n)
	for i := 0; i < n; i++ {
		dests[i] = stats[i].Destination
	}
	return dests
}

// CollaborativeFiltering scores destinations liked by the target user's
// nearest neighbors that the target has not rated, weighting each neighbor
// rating by the neighbor's similarity. Unknown users and empty candidate
// sets fall back to popularity.
func (r *Recommenders) CollaborativeFiltering(userID int64, n int) []string {
	m := r.snap.Matrix
	sim := r.snap.Similarity
	target, ok := sim.userIndex[userID]
	if !ok {
		return r.PopularityBased(n)
	}

	type neighbor struct {
		row int
		sim float64
	}
	neighbors := make([]neighbor, 0, len(sim.Users)-1)
	for j := range sim.Users {
		if j == target {
			continue
		}
		neighbors = append(neighbors, neighbor{row: j, sim: sim.Rows[target][j]})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].sim > neighbors[j].sim
	})
	if len(neighbors) > cfNeighborCount {
		neighbors = neighbors[:cfNeighborCount]
	}

	targetRow := m.Rows[target]
	scores := make(map[string]float64)
	var order []string
	for _, nb := range neighbors {
		if nb.sim <= 0 {
			continue
		}
		row := m.Rows[nb.row]
		for d, dest := range m.Destinations {
			if row[d] <= cfLikedThreshold || targetRow[d] > 0 {
				continue
			}
			if _, seen := scores[dest]; !seen {
				order = append(order, dest)
			}
			scores[dest] += nb.sim * row[d]
		}
	}
	if len(order) == 0 {
		return r.PopularityBased(n)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// Seasonal ranks destinations by bookings made in the given season.
func (r *Recommenders) Seasonal(season domain.Season, n int) []string {
	return r.weightedByDestination(n, func(rec domain.BookingRecord) bool {
		return rec.Season == season
	})
}

// TripType ranks destinations by bookings with the given trip purpose.
func (r *Recommenders) TripType(purpose domain.TripPurpose, n int) []string {
	return r.weightedByDestination(n, func(rec domain.BookingRecord) bool {
		return rec.TripPurpose == purpose
	})
}

// OriginBased ranks destinations by bookings departing from the given
// origin airport.
func (r *Recommenders) OriginBased(origin string, n int) []string {
	return r.weightedByDestination(n, func(rec domain.BookingRecord) bool {
		return rec.Origin == origin
	})
}

// PreferenceBased ranks destinations by bookings from travelers whose
// add-on choices match exactly and whose party size and stay length are
// close (±1 passenger, ±3 days). An empty match set yields an empty list.
func (r *Recommenders) PreferenceBased(prefs domain.Preferences, n int) []string {
	return r.weightedByDestination(n, func(rec domain.BookingRecord) bool {
		if rec.WantsExtraBaggage != prefs.WantsExtraBaggage ||
			rec.WantsPreferredSeat != prefs.WantsPreferredSeat ||
			rec.WantsInFlightMeals != prefs.WantsInFlightMeals {
			return false
		}
		if rec.NumPassengers < prefs.NumPassengers-1 || rec.NumPassengers > prefs.NumPassengers+1 {
			return false
		}
		return rec.LengthOfStay >= prefs.LengthOfStay-3 && rec.LengthOfStay <= prefs.LengthOfStay+3
	})
}

// weightedByDestination aggregates the matching slice of the record set by
// destination and ranks by 0.6·count + 0.4·avg_rating. Destinations are
// visited lexically before the stable sort so ties are deterministic.
func (r *Recommenders) weightedByDestination(n int, match func(domain.BookingRecord) bool) []string {
	type acc struct {
		count     int
		ratingSum float64
	}
	byDest := make(map[string]*acc)
	for _, rec := range r.snap.Records {
		if !match(rec) {
			continue
		}
		a := byDest[rec.Destination]
		if a == nil {
			a = &acc{}
			byDest[rec.Destination] = a
		}
		a.count++
		a.ratingSum += rec.Rating
	}

	dests := make([]string, 0, len(byDest))
	for dest := range byDest {
		dests = append(dests, dest)
	}
	sort.Strings(dests)

	score := func(dest string) float64 {
		a := byDest[dest]
		return ctxWeightCount*float64(a.count) + ctxWeightAvgRating*a.ratingSum/float64(a.count)
	}
	sort.SliceStable(dests, func(i, j int) bool {
		return score(dests[i]) > score(dests[j])
	})
	if len(dests) > n {
		dests = dests[:n]
	}
	return dests
}
