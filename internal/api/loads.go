package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atlascommand/atlasfit/internal/roster"
)

type loadRequest struct {
	LoadID        string   `json:"load_id"`
	OriginState   *string  `json:"origin_state"`
	DestState     *string  `json:"dest_state"`
	OriginCity    *string  `json:"origin_city"`
	DestCity      *string  `json:"dest_city"`
	EquipmentType *string  `json:"equipment_type"`
	Miles         *float64 `json:"miles"`
	Status        string   `json:"status"`
}

type loadResponse struct {
	LoadID        string   `json:"load_id"`
	OriginState   *string  `json:"origin_state,omitempty"`
	DestState     *string  `json:"dest_state,omitempty"`
	OriginCity    *string  `json:"origin_city,omitempty"`
	DestCity      *string  `json:"dest_city,omitempty"`
	EquipmentType *string  `json:"equipment_type,omitempty"`
	Miles         *float64 `json:"miles,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func loadToResponse(l *roster.Load) loadResponse {
	return loadResponse{
		LoadID:        l.LoadID,
		OriginState:   l.OriginState,
		DestState:     l.DestState,
		OriginCity:    l.OriginCity,
		DestCity:      l.DestCity,
		EquipmentType: l.EquipmentType,
		Miles:         l.Miles,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     l.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *Handler) handleUpsertLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.LoadID) == "" {
		writeError(w, http.StatusBadRequest, "load_id is required")
		return
	}
	switch req.Status {
	case "", roster.LoadStatusOpen, roster.LoadStatusCovered, roster.LoadStatusClosed:
	default:
		writeError(w, http.StatusBadRequest, "invalid status: "+req.Status)
		return
	}

	l, err := h.rosterSvc.UpsertLoad(r.Context(), roster.Load{
		LoadID:        req.LoadID,
		OriginState:   req.OriginState,
		DestState:     req.DestState,
		OriginCity:    req.OriginCity,
		DestCity:      req.DestCity,
		EquipmentType: req.EquipmentType,
		Miles:         req.Miles,
		Status:        req.Status,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "upsert load: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loadToResponse(l))
}

func (h *Handler) handleListLoads(w http.ResponseWriter, r *http.Request) {
	var (
		loads []roster.Load
		err   error
	)
	if r.URL.Query().Get("status") == "open" {
		loads, err = h.rosterSvc.ListOpenLoads(r.Context())
	} else {
		loads, err = h.rosterSvc.ListLoads(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list loads: "+err.Error())
		return
	}

	result := []loadResponse{}
	for i := range loads {
		result = append(result, loadToResponse(&loads[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetLoad(w http.ResponseWriter, r *http.Request) {
	loadID := r.PathValue("loadID")

	l, err := h.rosterSvc.GetLoad(r.Context(), loadID)
	if err != nil {
		writeError(w, http.StatusNotFound, "load not found")
		return
	}
	writeJSON(w, http.StatusOK, loadToResponse(l))
}

func (h *Handler) handleDeleteLoad(w http.ResponseWriter, r *http.Request) {
	loadID := r.PathValue("loadID")

	if err := h.rosterSvc.DeleteLoad(r.Context(), loadID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete load: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
