package ingest

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

func TestParseRoute(t *testing.T) {
	origin, dest, err := ParseRoute("SINKUL")
	if err != nil {
		t.Fatalf("ParseRoute failed: %v", err)
	}
	if origin != "SIN" || dest != "KUL" {
		t.Errorf("expected SIN/KUL, got %s/%s", origin, dest)
	}
}

func TestParseRouteMalformed(t *testing.T) {
	for _, route := range []string{"", "SIN", "AB"} {
		_, _, err := ParseRoute(route)
		if err == nil {
			t.Errorf("expected error for route %q", route)
			continue
		}
		if !IsMalformedRouteError(err) {
			t.Errorf("expected MalformedRouteError for %q, got %v", route, err)
		}
	}
}

func TestIsMalformedRouteError(t *testing.T) {
	if IsMalformedRouteError(nil) {
		t.Error("nil should not be a MalformedRouteError")
	}
}

func TestSyntheticUserID(t *testing.T) {
	a := SyntheticUserID("Australia", "RoundTrip", "Mon")
	b := SyntheticUserID("Australia", "RoundTrip", "Mon")
	if a != b {
		t.Errorf("user id not deterministic: %d != %d", a, b)
	}
	if a < 0 || a >= 10000 {
		t.Errorf("user id out of range: %d", a)
	}

	c := SyntheticUserID("Malaysia", "RoundTrip", "Mon")
	// Collisions are possible by design, but these two inputs don't collide.
	if a == c {
		t.Errorf("distinct inputs produced the same id: %d", a)
	}
}

func TestImplicitRating(t *testing.T) {
	full := domain.RawBooking{
		NumPassengers:      2,
		WantsExtraBaggage:  true,
		WantsPreferredSeat: true,
		WantsInFlightMeals: true,
		BookingComplete:    true,
	}
	if got := ImplicitRating(full); got != 9.0 {
		t.Errorf("expected rating 9.0, got %f", got)
	}

	bare := domain.RawBooking{NumPassengers: 1}
	if got := ImplicitRating(bare); got != 0.5 {
		t.Errorf("expected rating 0.5, got %f", got)
	}
}

func TestSeasonFromLead(t *testing.T) {
	cases := []struct {
		lead int
		want domain.Season
	}{
		{0, domain.SeasonWinter},
		{90, domain.SeasonWinter},
		{91, domain.SeasonSpring},
		{180, domain.SeasonSpring},
		{181, domain.SeasonSummer},
		{270, domain.SeasonSummer},
		{271, domain.SeasonFall},
		{364, domain.SeasonFall},
		{365, domain.SeasonWinter}, // wraps
		{400, domain.SeasonWinter},
	}
	for _, tc := range cases {
		if got := SeasonFromLead(tc.lead); got != tc.want {
			t.Errorf("lead %d: expected %s, got %s", tc.lead, tc.want, got)
		}
	}
}

func TestTripPurposeFromStay(t *testing.T) {
	cases := []struct {
		days int
		want domain.TripPurpose
	}{
		{1, domain.TripBusiness},
		{3, domain.TripBusiness},
		{4, domain.TripRegularVacation},
		{14, domain.TripRegularVacation},
		{15, domain.TripExtendedVacation},
		{60, domain.TripExtendedVacation},
	}
	for _, tc := range cases {
		if got := TripPurposeFromStay(tc.days); got != tc.want {
			t.Errorf("%d days: expected %s, got %s", tc.days, tc.want, got)
		}
	}
}

func TestIngestSkipsMalformedRoutes(t *testing.T) {
	raws := []domain.RawBooking{
		{Route: "SINKUL", NumPassengers: 1, BookingOrigin: "Singapore", TripType: "RoundTrip", FlightDay: "Mon"},
		{Route: "XX", NumPassengers: 1},
		{Route: "BKKSYD", NumPassengers: 2, BookingOrigin: "Thailand", TripType: "OneWay", FlightDay: "Fri"},
	}

	records := Ingest(raws, zerolog.Nop())
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Destination != "KUL" || records[1].Destination != "SYD" {
		t.Errorf("unexpected destinations: %s, %s", records[0].Destination, records[1].Destination)
	}
}

func TestRecordDerivesAllFeatures(t *testing.T) {
	raw := domain.RawBooking{
		NumPassengers:      2,
		TripType:           "RoundTrip",
		PurchaseLead:       200,
		LengthOfStay:       10,
		FlightDay:          "Sat",
		Route:              "SINMEL",
		BookingOrigin:      "Singapore",
		WantsExtraBaggage:  true,
		BookingComplete:    true,
	}

	rec, err := Record(raw)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if rec.Origin != "SIN" || rec.Destination != "MEL" {
		t.Errorf("unexpected route split: %s -> %s", rec.Origin, rec.Destination)
	}
	if rec.Rating != 7.0 { // 5.0 complete + 1.0 baggage + 2/2
		t.Errorf("expected rating 7.0, got %f", rec.Rating)
	}
	if rec.Season != domain.SeasonSummer {
		t.Errorf("expected Summer, got %s", rec.Season)
	}
	if rec.TripPurpose != domain.TripRegularVacation {
		t.Errorf("expected Regular Vacation, got %s", rec.TripPurpose)
	}
}
