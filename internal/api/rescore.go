package api

import (
	"encoding/json"
	"log"
	"net/http"
)

type rescoreRequest struct {
	DriverID string `json:"driver_id"` // optional filter
}

type rescoreResponse struct {
	Rescored int `json:"rescored"`
	Errors   int `json:"errors"`
}

// handleRescore re-runs the scoring engine on existing fit rows. Useful
// after a weights change: each row's driver profile and load are reloaded
// and the scoring fields rewritten in place.
func (h *Handler) handleRescore(w http.ResponseWriter, r *http.Request) {
	var req rescoreRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	ctx := r.Context()

	fits, err := h.rosterSvc.ListAllFits(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list fits: "+err.Error())
		return
	}

	resp := rescoreResponse{}
	for _, f := range fits {
		if req.DriverID != "" && f.DriverID != req.DriverID {
			continue
		}

		d, err := h.rosterSvc.GetDriver(ctx, f.DriverID)
		if err != nil {
			log.Printf("rescore %s: load driver: %v", f.ID, err)
			resp.Errors++
			continue
		}
		l, err := h.rosterSvc.GetLoad(ctx, f.LoadID)
		if err != nil {
			log.Printf("rescore %s: load load: %v", f.ID, err)
			resp.Errors++
			continue
		}

		result := h.engine.FitLoadForDriver(d.Profile(), l.Candidate())
		if err := h.rosterSvc.UpdateFitScore(ctx, f.ID, result); err != nil {
			log.Printf("rescore %s: update: %v", f.ID, err)
			resp.Errors++
			continue
		}

		resp.Rescored++
	}

	writeJSON(w, http.StatusOK, resp)
}
