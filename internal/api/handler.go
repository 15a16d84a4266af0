// Package api implements the hosted Atlas Fit REST API.
// It provides scoring and roster endpoints backed by Postgres and blob storage.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/atlascommand/atlasfit/internal/dispatch"
	"github.com/atlascommand/atlasfit/internal/roster"
	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// Handler is the top-level API handler for the hosted Atlas Fit service.
type Handler struct {
	rosterSvc  *roster.Service
	dispatcher *dispatch.Service
	storage    dispatch.StorageClient
	engine     *fitscore.Engine
	cache      *ProfileCache
	orgID      string
}

// NewHandler creates a new API handler.
func NewHandler(rosterSvc *roster.Service, dispatcher *dispatch.Service, storage dispatch.StorageClient, engine *fitscore.Engine, cache *ProfileCache, orgID string) *Handler {
	if cache == nil {
		cache = NewProfileCacheFromEnv()
	}
	if orgID == "" {
		orgID = "default"
	}
	return &Handler{
		rosterSvc:  rosterSvc,
		dispatcher: dispatcher,
		storage:    storage,
		engine:     engine,
		cache:      cache,
		orgID:      orgID,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Scoring endpoints
	mux.HandleFunc("POST /api/v1/fit", h.handleFit)
	mux.HandleFunc("POST /api/v1/rank", h.handleRank)
	mux.HandleFunc("POST /api/v1/rescore", h.handleRescore)

	// Driver roster
	mux.HandleFunc("POST /api/v1/drivers", h.handleUpsertDriver)
	mux.HandleFunc("GET /api/v1/drivers", h.handleListDrivers)
	mux.HandleFunc("GET /api/v1/drivers/{driverID}", h.handleGetDriver)
	mux.HandleFunc("GET /api/v1/drivers/{driverID}/profile", h.handleGetProfile)
	mux.HandleFunc("GET /api/v1/drivers/{driverID}/fits", h.handleListDriverFits)
	mux.HandleFunc("DELETE /api/v1/drivers/{driverID}", h.handleDeleteDriver)

	// Load board
	mux.HandleFunc("POST /api/v1/loads", h.handleUpsertLoad)
	mux.HandleFunc("GET /api/v1/loads", h.handleListLoads)
	mux.HandleFunc("GET /api/v1/loads/{loadID}", h.handleGetLoad)
	mux.HandleFunc("GET /api/v1/loads/{loadID}/fits", h.handleListLoadFits)
	mux.HandleFunc("DELETE /api/v1/loads/{loadID}", h.handleDeleteLoad)

	// Persisted fits
	mux.HandleFunc("GET /api/v1/fits/{fitID}", h.handleGetFit)
	mux.HandleFunc("GET /api/v1/fits/{fitID}/archive", h.handleGetFitArchive)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
