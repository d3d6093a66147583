package model

import "math"

// UserSimilarityMatrix is the pairwise cosine similarity between user rows
// of the rating matrix. Symmetric, diagonal 1. Users share the index order
// of the matrix it was built from.
//
// Building it costs O(U²·D); it runs once per training pass and must never
// sit on a request path.
type UserSimilarityMatrix struct {
	Users []int64     `json:"users"`
	Rows  [][]float64 `json:"rows"`

	userIndex map[int64]int
}

// BuildUserSimilarity computes pairwise cosine similarity over the rows of
// the rating matrix. Cosine is undefined for a zero-norm vector; a user
// with no ratings is defined to have similarity 0 with everyone else.
func BuildUserSimilarity(m *UserItemMatrix) *UserSimilarityMatrix {
	n := len(m.Users)
	norms := make([]float64, n)
	for i, row := range m.Rows {
		sum := 0.0
		for _, v := range row {
			sum += v * v
		}
		norms[i] = math.Sqrt(sum)
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := 0.0
			if norms[i] > 0 && norms[j] > 0 {
				dot := 0.0
				for d, v := range m.Rows[i] {
					dot += v * m.Rows[j][d]
				}
				sim = dot / (norms[i] * norms[j])
			}
			rows[i][j] = sim
			rows[j][i] = sim
		}
	}

	s := &UserSimilarityMatrix{Users: m.Users, Rows: rows}
	s.buildIndex()
	return s
}

func (s *UserSimilarityMatrix) buildIndex() {
	s.userIndex = make(map[int64]int, len(s.Users))
	for i, id := range s.Users {
		s.userIndex[id] = i
	}
}

// Similarity returns the cosine similarity between two users, or 0 if
// either is unknown.
func (s *UserSimilarityMatrix) Similarity(a, b int64) float64 {
	i, ok := s.userIndex[a]
	if !ok {
		return 0
	}
	j, ok := s.userIndex[b]
	if !ok {
		return 0
	}
	return s.Rows[i][j]
}
