package model

import (
	"math"
	"testing"
)

func matrixFromRows(users []int64, dests []string, rows [][]float64) *UserItemMatrix {
	m := &UserItemMatrix{Users: users, Destinations: dests, Rows: rows}
	m.buildIndex()
	return m
}

func TestCosineSimilarityIdenticalRows(t *testing.T) {
	m := matrixFromRows(
		[]int64{1, 2},
		[]string{"KUL", "BKK"},
		[][]float64{{3, 4}, {3, 4}},
	)
	s := BuildUserSimilarity(m)
	if got := s.Similarity(1, 2); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected similarity 1.0, got %f", got)
	}
}

func TestCosineSimilarityOrthogonalRows(t *testing.T) {
	m := matrixFromRows(
		[]int64{1, 2},
		[]string{"KUL", "BKK"},
		[][]float64{{5, 0}, {0, 5}},
	)
	s := BuildUserSimilarity(m)
	if got := s.Similarity(1, 2); got != 0 {
		t.Errorf("expected similarity 0, got %f", got)
	}
}

// Cosine is undefined at zero norm; the model defines it as 0.
func TestCosineSimilarityZeroVector(t *testing.T) {
	m := matrixFromRows(
		[]int64{1, 2},
		[]string{"KUL", "BKK"},
		[][]float64{{0, 0}, {3, 4}},
	)
	s := BuildUserSimilarity(m)
	if got := s.Similarity(1, 2); got != 0 {
		t.Errorf("expected similarity 0 for zero vector, got %f", got)
	}
}

func TestSimilaritySymmetricWithUnitDiagonal(t *testing.T) {
	m := matrixFromRows(
		[]int64{1, 2, 3},
		[]string{"KUL", "BKK", "SYD"},
		[][]float64{{1, 2, 0}, {0, 2, 1}, {4, 0, 4}},
	)
	s := BuildUserSimilarity(m)
	for i := range s.Users {
		if s.Rows[i][i] != 1 {
			t.Errorf("diagonal not 1 at %d: %f", i, s.Rows[i][i])
		}
		for j := range s.Users {
			if s.Rows[i][j] != s.Rows[j][i] {
				t.Errorf("not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestSimilarityUnknownUser(t *testing.T) {
	m := matrixFromRows([]int64{1}, []string{"KUL"}, [][]float64{{1}})
	s := BuildUserSimilarity(m)
	if got := s.Similarity(1, 999); got != 0 {
		t.Errorf("expected 0 for unknown user, got %f", got)
	}
}
