package repository

import (
	"context"
	"fmt"

	"github.com/voyagekit/destination-recommender/internal/domain"
)

// ListRawBookings loads every booking row for a training run. Ordered by id
// so repeated runs over the same data ingest records in the same order.
func (r *Repository) ListRawBookings(ctx context.Context) ([]domain.RawBooking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT num_passengers, trip_type, purchase_lead, length_of_stay,
		        flight_day, route, booking_origin,
		        wants_extra_baggage, wants_preferred_seat, wants_in_flight_meals,
		        booking_complete
		 FROM bookings
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.RawBooking
	for rows.Next() {
		var b domain.RawBooking
		err := rows.Scan(
			&b.NumPassengers, &b.TripType, &b.PurchaseLead, &b.LengthOfStay,
			&b.FlightDay, &b.Route, &b.BookingOrigin,
			&b.WantsExtraBaggage, &b.WantsPreferredSeat, &b.WantsInFlightMeals,
			&b.BookingComplete,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over bookings: %w", err)
	}
	return bookings, nil
}

// CountBookings returns the total number of booking rows.
func (r *Repository) CountBookings(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return total, nil
}
