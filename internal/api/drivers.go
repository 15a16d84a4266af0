package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atlascommand/atlasfit/internal/roster"
)

type driverRequest struct {
	DriverID           string   `json:"driver_id"`
	DisplayName        string   `json:"display_name"`
	HomeBase           *string  `json:"home_base"`
	PreferredRegions   []string `json:"preferred_regions"`
	PreferredEquipment []string `json:"preferred_equipment"`
	AvoidStates        []string `json:"avoid_states"`
	MaxDistance        *float64 `json:"max_distance"`
}

type driverResponse struct {
	DriverID           string   `json:"driver_id"`
	DisplayName        string   `json:"display_name"`
	HomeBase           *string  `json:"home_base,omitempty"`
	PreferredRegions   []string `json:"preferred_regions"`
	PreferredEquipment []string `json:"preferred_equipment"`
	AvoidStates        []string `json:"avoid_states"`
	MaxDistance        *float64 `json:"max_distance,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

func driverToResponse(d *roster.Driver) driverResponse {
	resp := driverResponse{
		DriverID:           d.DriverID,
		DisplayName:        d.DisplayName,
		HomeBase:           d.HomeBase,
		PreferredRegions:   d.PreferredRegions,
		PreferredEquipment: d.PreferredEquipment,
		AvoidStates:        d.AvoidStates,
		MaxDistance:        d.MaxDistance,
		CreatedAt:          d.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:          d.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if resp.PreferredRegions == nil {
		resp.PreferredRegions = []string{}
	}
	if resp.PreferredEquipment == nil {
		resp.PreferredEquipment = []string{}
	}
	if resp.AvoidStates == nil {
		resp.AvoidStates = []string{}
	}
	return resp
}

func (h *Handler) handleUpsertDriver(w http.ResponseWriter, r *http.Request) {
	var req driverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.DriverID) == "" {
		writeError(w, http.StatusBadRequest, "driver_id is required")
		return
	}

	d, err := h.rosterSvc.UpsertDriver(r.Context(), roster.Driver{
		DriverID:           req.DriverID,
		DisplayName:        req.DisplayName,
		HomeBase:           req.HomeBase,
		PreferredRegions:   req.PreferredRegions,
		PreferredEquipment: req.PreferredEquipment,
		AvoidStates:        req.AvoidStates,
		MaxDistance:        req.MaxDistance,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "upsert driver: "+err.Error())
		return
	}

	h.cache.Remove(d.DriverID)
	writeJSON(w, http.StatusOK, driverToResponse(d))
}

func (h *Handler) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.rosterSvc.ListDrivers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list drivers: "+err.Error())
		return
	}

	result := []driverResponse{}
	for i := range drivers {
		result = append(result, driverToResponse(&drivers[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetDriver(w http.ResponseWriter, r *http.Request) {
	driverID := r.PathValue("driverID")

	d, err := h.rosterSvc.GetDriver(r.Context(), driverID)
	if err != nil {
		writeError(w, http.StatusNotFound, "driver not found")
		return
	}
	writeJSON(w, http.StatusOK, driverToResponse(d))
}

// handleGetProfile returns the scoring profile derived from a driver row,
// serving from the profile cache when warm.
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	driverID := r.PathValue("driverID")

	if profile := h.cache.Get(driverID); profile != nil {
		writeJSON(w, http.StatusOK, profile)
		return
	}

	d, err := h.rosterSvc.GetDriver(r.Context(), driverID)
	if err != nil {
		writeError(w, http.StatusNotFound, "driver not found")
		return
	}

	profile := d.Profile()
	h.cache.Put(driverID, profile)
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	driverID := r.PathValue("driverID")

	if err := h.rosterSvc.DeleteDriver(r.Context(), driverID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete driver: "+err.Error())
		return
	}

	h.cache.Remove(driverID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
