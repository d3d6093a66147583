package domain

type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

type TripPurpose string

const (
	TripBusiness         TripPurpose = "Business"
	TripRegularVacation  TripPurpose = "Regular Vacation"
	TripExtendedVacation TripPurpose = "Extended Vacation"
)

// RawBooking is one row of the booking store, before feature derivation.
type RawBooking struct {
	NumPassengers      int    `json:"num_passengers"`
	TripType           string `json:"trip_type"`
	PurchaseLead       int    `json:"purchase_lead"`
	LengthOfStay       int    `json:"length_of_stay"`
	FlightDay          string `json:"flight_day"`
	Route              string `json:"route"`
	BookingOrigin      string `json:"booking_origin"`
	WantsExtraBaggage  bool   `json:"wants_extra_baggage"`
	WantsPreferredSeat bool   `json:"wants_preferred_seat"`
	WantsInFlightMeals bool   `json:"wants_in_flight_meals"`
	BookingComplete    bool   `json:"booking_complete"`
}

// BookingRecord is an ingested booking with derived features. Records are
// created once at ingest time and never mutated afterwards.
type BookingRecord struct {
	UserID             int64       `json:"user_id"`
	Origin             string      `json:"origin"`
	Destination        string      `json:"destination"`
	Rating             float64     `json:"rating"`
	Season             Season      `json:"season"`
	TripPurpose        TripPurpose `json:"trip_purpose"`
	WantsExtraBaggage  bool        `json:"wants_extra_baggage"`
	WantsPreferredSeat bool        `json:"wants_preferred_seat"`
	WantsInFlightMeals bool        `json:"wants_in_flight_meals"`
	NumPassengers      int         `json:"num_passengers"`
	LengthOfStay       int         `json:"length_of_stay"`
	BookingComplete    bool        `json:"booking_complete"`
}

// Preferences describes a new user's stated travel preferences.
type Preferences struct {
	WantsExtraBaggage  bool `json:"wants_extra_baggage"`
	WantsPreferredSeat bool `json:"wants_preferred_seat"`
	WantsInFlightMeals bool `json:"wants_in_flight_meals"`
	NumPassengers      int  `json:"num_passengers"`
	LengthOfStay       int  `json:"length_of_stay"`
}

// DefaultPreferences returns the fallback used when a new-user request
// omits preferences entirely: no add-ons, one passenger, a week's stay.
func DefaultPreferences() Preferences {
	return Preferences{
		NumPassengers: 1,
		LengthOfStay:  7,
	}
}
