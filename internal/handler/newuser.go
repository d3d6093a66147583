package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/voyagekit/destination-recommender/internal/domain"
	"github.com/voyagekit/destination-recommender/internal/service"
)

type newUserRequest struct {
	Preferences *preferencesPayload `json:"preferences"`
	Season      string              `json:"season"`
	TripType    string              `json:"trip_type"`
	Origin      string              `json:"origin"`
	Limit       int                 `json:"limit"`
}

// Flags arrive as 0/1 integers; pointers distinguish "omitted" from "off"
// so missing keys fall back to the documented defaults.
type preferencesPayload struct {
	WantsExtraBaggage  *int `json:"wants_extra_baggage"`
	WantsPreferredSeat *int `json:"wants_preferred_seat"`
	WantsInFlightMeals *int `json:"wants_in_flight_meals"`
	NumPassengers      *int `json:"num_passengers"`
	LengthOfStay       *int `json:"length_of_stay"`
}

func (p *preferencesPayload) merge() domain.Preferences {
	prefs := domain.DefaultPreferences()
	if p == nil {
		return prefs
	}
	if p.WantsExtraBaggage != nil {
		prefs.WantsExtraBaggage = *p.WantsExtraBaggage != 0
	}
	if p.WantsPreferredSeat != nil {
		prefs.WantsPreferredSeat = *p.WantsPreferredSeat != 0
	}
	if p.WantsInFlightMeals != nil {
		prefs.WantsInFlightMeals = *p.WantsInFlightMeals != 0
	}
	if p.NumPassengers != nil {
		prefs.NumPassengers = *p.NumPassengers
	}
	if p.LengthOfStay != nil {
		prefs.LengthOfStay = *p.LengthOfStay
	}
	return prefs
}

var validSeasons = map[string]bool{
	string(domain.SeasonWinter): true,
	string(domain.SeasonSpring): true,
	string(domain.SeasonSummer): true,
	string(domain.SeasonFall):   true,
}

var validTripTypes = map[string]bool{
	string(domain.TripBusiness):         true,
	string(domain.TripRegularVacation):  true,
	string(domain.TripExtendedVacation): true,
}

// POST /recommendations/new-user
func (h *Handler) GetNewUserRecommendations(w http.ResponseWriter, r *http.Request) {
	var req newUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return
	}

	if req.Season != "" && !validSeasons[req.Season] {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid season parameter")
		return
	}
	if req.TripType != "" && !validTripTypes[req.TripType] {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid trip_type parameter")
		return
	}
	if req.Limit < 0 || req.Limit > 50 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	prefs := req.Preferences.merge()
	result, err := h.service.RecommendForNewUser(r.Context(), service.NewUserRequest{
		Preferences: &prefs,
		Season:      domain.Season(req.Season),
		TripPurpose: domain.TripPurpose(req.TripType),
		Origin:      req.Origin,
		Limit:       req.Limit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := NewUserRecommendationResponse{
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}
