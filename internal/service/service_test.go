package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voyagekit/destination-recommender/internal/domain"
	"github.com/voyagekit/destination-recommender/internal/model"
)

func testService(t *testing.T, records []domain.BookingRecord) *Service {
	t.Helper()
	holder := &model.Holder{}
	if records != nil {
		snap, err := model.Train(records)
		if err != nil {
			t.Fatalf("Train failed: %v", err)
		}
		holder.Publish(snap)
	}
	return NewService(nil, nil, holder, "", zerolog.Nop())
}

func testRecords() []domain.BookingRecord {
	return []domain.BookingRecord{
		{UserID: 1, Origin: "SIN", Destination: "KUL", Rating: 5, Season: domain.SeasonSummer, TripPurpose: domain.TripRegularVacation, NumPassengers: 1, LengthOfStay: 7},
		{UserID: 2, Origin: "SIN", Destination: "KUL", Rating: 4, Season: domain.SeasonSummer, TripPurpose: domain.TripRegularVacation, NumPassengers: 2, LengthOfStay: 6},
		{UserID: 2, Origin: "BKK", Destination: "SYD", Rating: 3, Season: domain.SeasonWinter, TripPurpose: domain.TripBusiness, NumPassengers: 1, LengthOfStay: 2},
		{UserID: 3, Origin: "KUL", Destination: "BKK", Rating: 2, Season: domain.SeasonFall, TripPurpose: domain.TripExtendedVacation, NumPassengers: 4, LengthOfStay: 21},
	}
}

func TestRecommendForNewUser(t *testing.T) {
	s := testService(t, testRecords())

	result, err := s.RecommendForNewUser(context.Background(), NewUserRequest{Limit: 5})
	if err != nil {
		t.Fatalf("RecommendForNewUser failed: %v", err)
	}
	if len(result.Recommendations) == 0 {
		t.Fatal("expected non-empty recommendations for a trained model")
	}
	for i := 1; i < len(result.Recommendations); i++ {
		if result.Recommendations[i-1].Score < result.Recommendations[i].Score {
			t.Errorf("results not sorted at %d", i)
		}
	}
}

// An origin with zero matching bookings contributes an empty list; the
// remaining sources still produce a result.
func TestRecommendForNewUserUnmatchedOrigin(t *testing.T) {
	s := testService(t, testRecords())

	result, err := s.RecommendForNewUser(context.Background(), NewUserRequest{
		Origin: "ZRH",
		Season: domain.SeasonSummer,
		Limit:  5,
	})
	if err != nil {
		t.Fatalf("RecommendForNewUser failed: %v", err)
	}
	if len(result.Recommendations) == 0 {
		t.Error("expected fallback to remaining sources, got zero recommendations")
	}
}

func TestRecommendBeforeModelLoaded(t *testing.T) {
	s := testService(t, nil)

	_, err := s.RecommendForNewUser(context.Background(), NewUserRequest{})
	if !errors.Is(err, domain.ErrModelNotLoaded) {
		t.Errorf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestUserContext(t *testing.T) {
	snap, err := model.Train(testRecords())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// User 2 has one Summer and one Winter booking: lexical tie-break
	// picks Summer, as pandas mode() would.
	season, purpose := userContext(snap, 2)
	if season != domain.SeasonSummer {
		t.Errorf("expected Summer, got %s", season)
	}
	if purpose != domain.TripBusiness {
		t.Errorf("expected Business (lexical tie-break), got %s", purpose)
	}

	// Unknown users get the defaults.
	season, purpose = userContext(snap, 999)
	if season != domain.SeasonSummer || purpose != domain.TripRegularVacation {
		t.Errorf("expected defaults, got %s/%s", season, purpose)
	}
}

// A user id that never appears in the matrix gets exactly the popularity
// ranking.
func TestUnknownUserGetsPopularityRanking(t *testing.T) {
	s := testService(t, testRecords())

	snap, err := s.holder.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	got := s.blendForUser(snap, 999, 3)
	want := model.NewRecommenders(snap).PopularityBased(3)
	if len(got) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(got))
	}
	for i, dest := range want {
		if got[i].Destination != dest {
			t.Errorf("position %d: expected %s, got %s", i, dest, got[i].Destination)
		}
	}
}

func TestSafeListRecoversPanics(t *testing.T) {
	s := testService(t, testRecords())

	got := s.safeList("exploding", func() []string {
		panic("scorer blew up")
	})
	if got != nil {
		t.Errorf("expected nil contribution from failed scorer, got %v", got)
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 10},
		{-5, 10},
		{7, 7},
		{50, 50},
		{200, 50},
	}
	for _, tc := range cases {
		if got := clampLimit(tc.in); got != tc.want {
			t.Errorf("clampLimit(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
