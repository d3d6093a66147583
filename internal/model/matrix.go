package model

import (
	"sort"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

// Weights blending a raw implicit rating with destination popularity.
// The popularity term dampens noise from users with very few bookings.
const (
	adjustedWeightRating     = 0.8
	adjustedWeightPopularity = 0.2
)

// UserItemMatrix holds popularity-adjusted ratings, one row per user and
// one column per destination. Destinations are ordered by popularity score
// descending, which doubles as the destination-ID mapping. Cells without a
// booking hold 0.
type UserItemMatrix struct {
	Users        []int64     `json:"users"`
	Destinations []string    `json:"destinations"`
	Rows         [][]float64 `json:"rows"`

	userIndex map[int64]int
	destIndex map[string]int
}

// BuildUserItemMatrix constructs the rating matrix from ingested records
// and the aggregated stats (whose order defines the destination columns).
// Multiple bookings by the same user for the same destination average out.
func BuildUserItemMatrix(records []domain.BookingRecord, stats []domain.DestinationStats) *UserItemMatrix {
	popularity := make(map[string]float64, len(stats))
	destinations := make([]string, len(stats))
	for i, s := range stats {
		popularity[s.Destination] = s.PopularityScore
		destinations[i] = s.Destination
	}

	userSet := make(map[int64]struct{})
	for _, rec := range records {
		userSet[rec.UserID] = struct{}{}
	}
	users := make([]int64, 0, len(userSet))
	for id := range userSet {
		users = append(users, id)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	m := &UserItemMatrix{
		Users:        users,
		Destinations: destinations,
		Rows:         make([][]float64, len(users)),
	}
	m.buildIndex()

	sums := make([][]float64, len(users))
	counts := make([][]int, len(users))
	for i := range users {
		sums[i] = make([]float64, len(destinations))
		counts[i] = make([]int, len(destinations))
	}

	for _, rec := range records {
		u := m.userIndex[rec.UserID]
		d, ok := m.destIndex[rec.Destination]
		if !ok {
			continue
		}
		adjusted := adjustedWeightRating*rec.Rating + adjustedWeightPopularity*popularity[rec.Destination]
		sums[u][d] += adjusted
		counts[u][d]++
	}

	for i := range users {
		row := make([]float64, len(destinations))
		for d := range destinations {
			if counts[i][d] > 0 {
				row[d] = sums[i][d] / float64(counts[i][d])
			}
		}
		m.Rows[i] = row
	}
	return m
}

func (m *UserItemMatrix) buildIndex() {
	m.userIndex = make(map[int64]int, len(m.Users))
	for i, id := range m.Users {
		m.userIndex[id] = i
	}
	m.destIndex = make(map[string]int, len(m.Destinations))
	for i, dest := range m.Destinations {
		m.destIndex[dest] = i
	}
}

// HasUser reports whether the user appears in the matrix.
func (m *UserItemMatrix) HasUser(userID int64) bool {
	_, ok := m.userIndex[userID]
	return ok
}

// Row returns the rating row for a user, or nil for unknown users.
func (m *UserItemMatrix) Row(userID int64) []float64 {
	i, ok := m.userIndex[userID]
	if !ok {
		return nil
	}
	return m.Rows[i]
}

// DestinationID returns the column index of a destination code. The index
// space is the destination-ID mapping of the trained model.
func (m *UserItemMatrix) DestinationID(dest string) (int, bool) {
	i, ok := m.destIndex[dest]
	return i, ok
}
