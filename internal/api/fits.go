package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atlascommand/atlasfit/internal/roster"
)

type fitRequest struct {
	DriverID string `json:"driver_id"`
	LoadID   string `json:"load_id"`
}

type fitResponse struct {
	ID         string          `json:"id"`
	DriverID   string          `json:"driver_id"`
	LoadID     string          `json:"load_id"`
	Score      int             `json:"score"`
	Verdict    string          `json:"verdict"`
	Reasons    json.RawMessage `json:"reasons"`
	Breakdown  json.RawMessage `json:"breakdown"`
	Meta       json.RawMessage `json:"meta"`
	StorageRef string          `json:"storage_ref"`
	CreatedAt  string          `json:"created_at"`
}

func fitRowToResponse(f *roster.FitRow) fitResponse {
	return fitResponse{
		ID:         f.ID,
		DriverID:   f.DriverID,
		LoadID:     f.LoadID,
		Score:      f.Score,
		Verdict:    f.Verdict,
		Reasons:    f.Reasons,
		Breakdown:  f.Breakdown,
		Meta:       f.Meta,
		StorageRef: f.StorageRef,
		CreatedAt:  f.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// handleFit scores one driver/load pair, persists the fit, and returns the
// stored row.
func (h *Handler) handleFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.DriverID) == "" || strings.TrimSpace(req.LoadID) == "" {
		writeError(w, http.StatusBadRequest, "driver_id and load_id are required")
		return
	}

	row, err := h.dispatcher.ScorePair(r.Context(), req.DriverID, req.LoadID)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			writeError(w, http.StatusNotFound, "driver or load not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "score pair: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, fitRowToResponse(row))
}

type rankRequest struct {
	DriverID string `json:"driver_id"`
}

// handleRank scores every open load for a driver and returns the archived
// rank sheet.
func (h *Handler) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.DriverID) == "" {
		writeError(w, http.StatusBadRequest, "driver_id is required")
		return
	}

	sheet, err := h.dispatcher.RankLoadsForDriver(r.Context(), req.DriverID)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			writeError(w, http.StatusNotFound, "driver not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "rank loads: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (h *Handler) handleGetFit(w http.ResponseWriter, r *http.Request) {
	fitID := r.PathValue("fitID")

	f, err := h.rosterSvc.GetFit(r.Context(), fitID)
	if err != nil {
		writeError(w, http.StatusNotFound, "fit not found")
		return
	}
	writeJSON(w, http.StatusOK, fitRowToResponse(f))
}

// handleGetFitArchive streams the archived fit blob from storage.
func (h *Handler) handleGetFitArchive(w http.ResponseWriter, r *http.Request) {
	fitID := r.PathValue("fitID")

	f, err := h.rosterSvc.GetFit(r.Context(), fitID)
	if err != nil {
		writeError(w, http.StatusNotFound, "fit not found")
		return
	}

	data, err := h.storage.GetFit(r.Context(), h.orgID, f.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "fit archive not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleListDriverFits(w http.ResponseWriter, r *http.Request) {
	driverID := r.PathValue("driverID")

	fits, err := h.rosterSvc.ListFitsByDriver(r.Context(), driverID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list fits: "+err.Error())
		return
	}

	result := []fitResponse{}
	for i := range fits {
		result = append(result, fitRowToResponse(&fits[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListLoadFits(w http.ResponseWriter, r *http.Request) {
	loadID := r.PathValue("loadID")

	fits, err := h.rosterSvc.ListFitsByLoad(r.Context(), loadID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list fits: "+err.Error())
		return
	}

	result := []fitResponse{}
	for i := range fits {
		result = append(result, fitRowToResponse(&fits[i]))
	}
	writeJSON(w, http.StatusOK, result)
}
