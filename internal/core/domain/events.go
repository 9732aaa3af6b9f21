package domain

import (
	"encoding/json"
	"time"
)

// EventType names a session state change fanned out to viewers.
type EventType string

const (
	EventSessionCreated   EventType = "session.created"
	EventSessionClosed    EventType = "session.closed"
	EventLayoutChanged    EventType = "layout.changed"
	EventSlotAssigned     EventType = "slot.assigned"
	EventSlotCleared      EventType = "slot.cleared"
	EventSlotStateChanged EventType = "slot.state_changed"
	EventAudioModeChanged EventType = "audio.mode_changed"
	EventAudioFocusMoved  EventType = "audio.focus_changed"
)

// Event is one session change record, published in-process and over the bus.
type Event struct {
	Type      EventType       `json:"type"`
	SessionID SessionID       `json:"session_id"`
	SlotIndex int             `json:"slot_index,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
