// Package model implements the hybrid destination recommender: popularity
// aggregation, the user-item rating matrix, cosine user similarity, the
// per-strategy scorers, and rank-based blending, all over an immutable
// trained snapshot.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

// snapshotVersion guards the on-disk blob format.
const snapshotVersion = 1

// Snapshot is one fully trained model: the ingested records plus every
// structure derived from them. It is never mutated after Train returns, so
// any number of request handlers may read it without locking. Retraining
// builds a new Snapshot off to the side and publishes it through a Holder.
type Snapshot struct {
	TrainedAt  time.Time
	Records    []domain.BookingRecord
	Stats      []domain.DestinationStats
	Matrix     *UserItemMatrix
	Similarity *UserSimilarityMatrix

	statsIndex map[string]domain.DestinationStats
}

// Train builds a snapshot from ingested records.
func Train(records []domain.BookingRecord) (*Snapshot, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyTrainingSet
	}
	stats := AggregateDestinationStats(records)
	matrix := BuildUserItemMatrix(records, stats)
	s := &Snapshot{
		TrainedAt:  time.Now().UTC(),
		Records:    records,
		Stats:      stats,
		Matrix:     matrix,
		Similarity: BuildUserSimilarity(matrix),
	}
	s.buildIndex()
	return s, nil
}

func (s *Snapshot) buildIndex() {
	s.statsIndex = make(map[string]domain.DestinationStats, len(s.Stats))
	for _, st := range s.Stats {
		s.statsIndex[st.Destination] = st
	}
}

// StatsFor looks up the aggregate stats of a destination.
func (s *Snapshot) StatsFor(dest string) (domain.DestinationStats, bool) {
	st, ok := s.statsIndex[dest]
	return st, ok
}

type snapshotFile struct {
	Version    int                       `json:"version"`
	TrainedAt  time.Time                 `json:"trained_at"`
	Records    []domain.BookingRecord    `json:"records"`
	Stats      []domain.DestinationStats `json:"stats"`
	Matrix     *UserItemMatrix           `json:"matrix"`
	Similarity *UserSimilarityMatrix     `json:"similarity"`
}

// Save serializes the snapshot to a versioned JSON blob. The write goes
// through a temp file and rename so a crash mid-write never leaves a
// truncated blob at the target path.
func (s *Snapshot) Save(path string) error {
	blob, err := json.Marshal(snapshotFile{
		Version:    snapshotVersion,
		TrainedAt:  s.TrainedAt,
		Records:    s.Records,
		Stats:      s.Stats,
		Matrix:     s.Matrix,
		Similarity: s.Similarity,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish snapshot file: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot blob written by Save.
func LoadSnapshot(path string) (*Snapshot, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	var f snapshotFile
	if err := json.Unmarshal(blob, &f); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if f.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", f.Version, snapshotVersion)
	}
	if f.Matrix == nil || f.Similarity == nil || len(f.Records) == 0 {
		return nil, fmt.Errorf("snapshot file %s is incomplete", path)
	}
	s := &Snapshot{
		TrainedAt:  f.TrainedAt,
		Records:    f.Records,
		Stats:      f.Stats,
		Matrix:     f.Matrix,
		Similarity: f.Similarity,
	}
	s.Matrix.buildIndex()
	s.Similarity.buildIndex()
	s.buildIndex()
	return s, nil
}

// Holder publishes trained snapshots to request handlers. A retrain swaps
// the pointer in one atomic store, so readers see either the old snapshot
// or the new one, never a half-built state.
type Holder struct {
	ptr atomic.Pointer[Snapshot]
}

// Publish makes a snapshot the current model.
func (h *Holder) Publish(s *Snapshot) {
	h.ptr.Store(s)
}

// Snapshot returns the current model, or ErrModelNotLoaded before the
// first Publish.
func (h *Holder) Snapshot() (*Snapshot, error) {
	s := h.ptr.Load()
	if s == nil {
		return nil, domain.ErrModelNotLoaded
	}
	return s, nil
}
