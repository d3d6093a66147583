package handler

import "github.com/voyagekit/destination-recommender/internal/domain"

type RecommendationResponse struct {
	UserID          int64                      `json:"user_id"`
	Recommendations []domain.ScoredDestination `json:"recommendations"`
	Metadata        domain.RecommendationMeta  `json:"metadata"`
}

type NewUserRecommendationResponse struct {
	Recommendations []domain.ScoredDestination `json:"recommendations"`
	Metadata        domain.RecommendationMeta  `json:"metadata"`
}

type RetrainResponse struct {
	Status       string `json:"status"`
	TrainedAt    string `json:"trained_at"`
	Records      int    `json:"records"`
	Destinations int    `json:"destinations"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
