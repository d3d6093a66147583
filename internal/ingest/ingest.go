// Package ingest turns raw booking rows into the immutable training records
// the recommendation model is built from.
package ingest

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

// userIDSpace bounds the synthetic user-ID range. Collisions inside the
// space are accepted: the IDs exist to group bookings that look like the
// same traveler, not to identify anyone.
const userIDSpace = 10000

type MalformedRouteError struct {
	Route string
}

func (e *MalformedRouteError) Error() string {
	return fmt.Sprintf("malformed route code %q: need at least 4 characters", e.Route)
}

func IsMalformedRouteError(err error) bool {
	var target *MalformedRouteError
	return errors.As(err, &target)
}

// ParseRoute splits a route code into its origin (first three characters)
// and destination (the remainder).
func ParseRoute(route string) (origin, destination string, err error) {
	if len(route) < 4 {
		return "", "", &MalformedRouteError{Route: route}
	}
	return route[:3], route[3:], nil
}

// SyntheticUserID derives a stable pseudo-identity from booking attributes.
// FNV-1a keeps the value identical across runs and platforms, unlike a
// seeded runtime hash.
func SyntheticUserID(bookingOrigin, tripType, flightDay string) int64 {
	h := fnv.New64a()
	h.Write([]byte(bookingOrigin))
	h.Write([]byte{'_'})
	h.Write([]byte(tripType))
	h.Write([]byte{'_'})
	h.Write([]byte(flightDay))
	return int64(h.Sum64() % userIDSpace)
}

// ImplicitRating scores a booking from behavior: completion dominates,
// each purchased add-on adds a point, party size nudges the rest.
func ImplicitRating(raw domain.RawBooking) float64 {
	rating := 0.0
	if raw.BookingComplete {
		rating += 5.0
	}
	if raw.WantsExtraBaggage {
		rating += 1.0
	}
	if raw.WantsPreferredSeat {
		rating += 1.0
	}
	if raw.WantsInFlightMeals {
		rating += 1.0
	}
	return rating + float64(raw.NumPassengers)/2.0
}

// SeasonFromLead buckets purchase lead time into four fixed-width quarters.
// This is an approximation of seasonality, not a calendar mapping.
func SeasonFromLead(purchaseLead int) domain.Season {
	day := ((purchaseLead % 365) + 365) % 365
	switch {
	case day <= 90:
		return domain.SeasonWinter
	case day <= 180:
		return domain.SeasonSpring
	case day <= 270:
		return domain.SeasonSummer
	default:
		return domain.SeasonFall
	}
}

// TripPurposeFromStay infers the purpose of a trip from its length:
// up to 3 days reads as business, up to 14 as a regular vacation.
func TripPurposeFromStay(lengthOfStay int) domain.TripPurpose {
	switch {
	case lengthOfStay <= 3:
		return domain.TripBusiness
	case lengthOfStay <= 14:
		return domain.TripRegularVacation
	default:
		return domain.TripExtendedVacation
	}
}

// Record converts a single raw booking into a training record.
func Record(raw domain.RawBooking) (domain.BookingRecord, error) {
	origin, destination, err := ParseRoute(raw.Route)
	if err != nil {
		return domain.BookingRecord{}, err
	}
	return domain.BookingRecord{
		UserID:             SyntheticUserID(raw.BookingOrigin, raw.TripType, raw.FlightDay),
		Origin:             origin,
		Destination:        destination,
		Rating:             ImplicitRating(raw),
		Season:             SeasonFromLead(raw.PurchaseLead),
		TripPurpose:        TripPurposeFromStay(raw.LengthOfStay),
		WantsExtraBaggage:  raw.WantsExtraBaggage,
		WantsPreferredSeat: raw.WantsPreferredSeat,
		WantsInFlightMeals: raw.WantsInFlightMeals,
		NumPassengers:      raw.NumPassengers,
		LengthOfStay:       raw.LengthOfStay,
		BookingComplete:    raw.BookingComplete,
	}, nil
}

// Ingest converts raw bookings into training records. Rows with malformed
// routes are skipped, not fatal: one bad row must never abort a training
// run.
func Ingest(raws []domain.RawBooking, logger zerolog.Logger) []domain.BookingRecord {
	records := make([]domain.BookingRecord, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		rec, err := Record(raw)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		logger.Warn().
			Int("skipped", skipped).
			Int("ingested", len(records)).
			Msg("skipped bookings with malformed routes")
	}
	return records
}
