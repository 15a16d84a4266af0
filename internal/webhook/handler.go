package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/atlascommand/atlasfit/internal/availability"
	"github.com/atlascommand/atlasfit/internal/dispatch"
	"github.com/atlascommand/atlasfit/internal/roster"
)

// Handler processes incoming platform webhook events.
type Handler struct {
	webhookSecret []byte
	roster        *roster.Service
	dispatcher    *dispatch.Service
	availability  *availability.Store
}

// NewHandler creates a new webhook Handler.
func NewHandler(webhookSecret []byte, rs *roster.Service, dispatcher *dispatch.Service, avail *availability.Store) *Handler {
	return &Handler{
		webhookSecret: webhookSecret,
		roster:        rs,
		dispatcher:    dispatcher,
		availability:  avail,
	}
}

// ServeHTTP handles incoming webhook requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20)) // 10 MB limit
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Atlas-Signature-256")
	if err := VerifySignature(body, signature, h.webhookSecret); err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := r.Header.Get("X-Atlas-Event")
	if eventType == "" {
		http.Error(w, "missing X-Atlas-Event header", http.StatusBadRequest)
		return
	}

	event, err := ParseEvent(eventType, body)
	if err != nil {
		log.Printf("webhook parse error for %s: %v", eventType, err)
		http.Error(w, "unsupported event", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	switch e := event.(type) {
	case *LoadPostedEvent:
		if err := h.handleLoadPosted(ctx, e); err != nil {
			log.Printf("handle load.posted event: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

	case *LoadUpdatedEvent:
		if err := h.handleLoadUpdated(ctx, e); err != nil {
			log.Printf("handle load.updated event: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

	case *DriverStatusEvent:
		if err := h.handleDriverStatus(ctx, e); err != nil {
			log.Printf("handle driver.status event: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (h *Handler) handleLoadPosted(ctx context.Context, e *LoadPostedEvent) error {
	l, err := h.roster.UpsertLoad(ctx, loadFromPayload(e.Load))
	if err != nil {
		return fmt.Errorf("upsert load %s: %w", e.Load.LoadID, err)
	}

	if l.Status != roster.LoadStatusOpen {
		return nil
	}
	if _, err := h.dispatcher.ScoreLoadAgainstOnDuty(ctx, l.LoadID); err != nil {
		return fmt.Errorf("score posted load %s: %w", l.LoadID, err)
	}
	log.Printf("load %s posted and scored against on-duty drivers", l.LoadID)
	return nil
}

func (h *Handler) handleLoadUpdated(ctx context.Context, e *LoadUpdatedEvent) error {
	l, err := h.roster.UpsertLoad(ctx, loadFromPayload(e.Load))
	if err != nil {
		return fmt.Errorf("upsert load %s: %w", e.Load.LoadID, err)
	}

	// Covered or closed loads keep their existing fits; only open loads
	// are re-scored.
	if l.Status != roster.LoadStatusOpen {
		log.Printf("load %s updated to status %s, skipping re-score", l.LoadID, l.Status)
		return nil
	}
	if _, err := h.dispatcher.ScoreLoadAgainstOnDuty(ctx, l.LoadID); err != nil {
		return fmt.Errorf("re-score updated load %s: %w", l.LoadID, err)
	}
	log.Printf("load %s updated and re-scored against on-duty drivers", l.LoadID)
	return nil
}

func (h *Handler) handleDriverStatus(ctx context.Context, e *DriverStatusEvent) error {
	switch e.Status {
	case DriverStatusOnDuty:
		if err := h.availability.MarkOnDuty(ctx, e.DriverID); err != nil {
			return fmt.Errorf("mark on duty: %w", err)
		}
		sheet, err := h.dispatcher.RankLoadsForDriver(ctx, e.DriverID)
		if err != nil {
			return fmt.Errorf("rank loads for driver %s: %w", e.DriverID, err)
		}
		log.Printf("driver %s on duty, rank sheet %s generated", e.DriverID, sheet.ID)
	case DriverStatusOffDuty:
		if err := h.availability.MarkOffDuty(ctx, e.DriverID); err != nil {
			return fmt.Errorf("mark off duty: %w", err)
		}
		log.Printf("driver %s off duty", e.DriverID)
	default:
		return fmt.Errorf("unknown driver status %q", e.Status)
	}
	return nil
}

func loadFromPayload(p LoadPayload) roster.Load {
	return roster.Load{
		LoadID:        p.LoadID,
		OriginState:   p.OriginState,
		DestState:     p.DestState,
		OriginCity:    p.OriginCity,
		DestCity:      p.DestCity,
		EquipmentType: p.EquipmentType,
		Miles:         p.Miles,
		Status:        p.Status,
	}
}
