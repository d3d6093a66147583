package handler

import (
	"net/http"
	"time"
)

// POST /admin/retrain
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Retrain(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RetrainResponse{
		Status:       "ok",
		TrainedAt:    snap.TrainedAt.Format(time.RFC3339),
		Records:      len(snap.Records),
		Destinations: len(snap.Stats),
	})
}
