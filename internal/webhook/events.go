// Package webhook handles incoming Atlas Command platform events.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// VerifySignature validates the X-Atlas-Signature-256 header against the payload.
func VerifySignature(payload []byte, signature string, secret []byte) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}
	sig, err := hex.DecodeString(signature[7:])
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := mac.Sum(nil)

	if !hmac.Equal(sig, expected) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// LoadPayload carries the load fields shared by load events. Optional
// fields stay nil when the platform omits them.
type LoadPayload struct {
	LoadID        string   `json:"load_id"`
	OriginState   *string  `json:"origin_state"`
	DestState     *string  `json:"dest_state"`
	OriginCity    *string  `json:"origin_city"`
	DestCity      *string  `json:"dest_city"`
	EquipmentType *string  `json:"equipment_type"`
	Miles         *float64 `json:"miles"`
	Status        string   `json:"status"`
}

// LoadPostedEvent fires when a new load appears on the board.
type LoadPostedEvent struct {
	Load LoadPayload `json:"load"`
}

// LoadUpdatedEvent fires when an existing load's details or status change.
type LoadUpdatedEvent struct {
	Load LoadPayload `json:"load"`
}

// Driver duty statuses carried by driver.status events.
const (
	DriverStatusOnDuty  = "on_duty"
	DriverStatusOffDuty = "off_duty"
)

// DriverStatusEvent fires when a driver checks in or out of a shift.
type DriverStatusEvent struct {
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
}

// ParseEvent parses a webhook payload based on the event type.
func ParseEvent(eventType string, payload []byte) (interface{}, error) {
	switch eventType {
	case "load.posted":
		var e LoadPostedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse load.posted event: %w", err)
		}
		return &e, nil
	case "load.updated":
		var e LoadUpdatedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse load.updated event: %w", err)
		}
		return &e, nil
	case "driver.status":
		var e DriverStatusEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse driver.status event: %w", err)
		}
		return &e, nil
	default:
		return nil, fmt.Errorf("unsupported event type: %s", eventType)
	}
}
