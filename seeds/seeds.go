package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Setup fills an empty booking store with synthetic customer bookings.
// The rng is seeded so every fresh environment trains the same model.
func Setup(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	rng := rand.New(rand.NewSource(42))

	logger.Info().Msg("truncating existing data")
	if _, err := pool.Exec(ctx, `TRUNCATE bookings RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	logger.Info().Msg("inserting bookings")
	if err := seedBookings(ctx, pool, rng, 800); err != nil {
		return fmt.Errorf("seed bookings: %w", err)
	}

	logger.Info().Msg("seeding complete")
	return nil
}

func seedBookings(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	airports := []string{"SIN", "KUL", "BKK", "CGK", "SYD", "MEL", "PER", "HKG", "ICN", "NRT", "DEL", "BOM", "PEK", "TPE", "MNL"}
	tripTypes := []string{"RoundTrip", "OneWay", "CircleTrip"}
	tripWeights := []float64{0.8, 0.15, 0.05}
	flightDays := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	bookingOrigins := []string{"Australia", "Malaysia", "Singapore", "Thailand", "Indonesia", "Japan", "South Korea", "India", "China", "Philippines"}

	rows := []string{}
	args := []any{}

	for range n {
		origin := airports[rng.Intn(len(airports))]
		destination := airports[rng.Intn(len(airports))]
		for destination == origin {
			destination = airports[rng.Intn(len(airports))]
		}

		// Small parties dominate; the power curve keeps 1-2 common.
		numPassengers := int(math.Ceil(math.Pow(rng.Float64(), 2.0)*8)) + 1
		numPassengers = min(numPassengers, 9)

		lengthOfStay := int(math.Ceil(math.Pow(rng.Float64(), 1.5) * 45))
		lengthOfStay = max(1, lengthOfStay)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11))
		args = append(args,
			numPassengers,
			weightedChoice(rng, tripTypes, tripWeights),
			rng.Intn(365),
			lengthOfStay,
			flightDays[rng.Intn(len(flightDays))],
			origin+destination,
			bookingOrigins[rng.Intn(len(bookingOrigins))],
			rng.Float64() < 0.35,
			rng.Float64() < 0.30,
			rng.Float64() < 0.40,
			rng.Float64() < 0.15,
		)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO bookings
		(num_passengers, trip_type, purchase_lead, length_of_stay, flight_day,
		 route, booking_origin, wants_extra_baggage, wants_preferred_seat,
		 wants_in_flight_meals, booking_complete) VALUES ` + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
