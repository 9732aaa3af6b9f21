package domain

import (
	"time"
)

// AudioMode controls how the session arbitrates audibility across slots.
type AudioMode string

const (
	// AudioFocusedOnly keeps every slot muted except the focused one.
	AudioFocusedOnly AudioMode = "focused_only"
	// AudioAll unmutes every occupied slot.
	AudioAll AudioMode = "all"
	// AudioManual leaves each slot's mute flag under independent control.
	AudioManual AudioMode = "manual"
)

func (m AudioMode) Valid() bool {
	switch m {
	case AudioFocusedOnly, AudioAll, AudioManual:
		return true
	}
	return false
}

// NoFocusedSlot is the FocusedSlot value while no slot holds audio focus.
const NoFocusedSlot = -1

// AudioState is the session's shared audio arbitration state. FocusedSlot is
// a slot index, or NoFocusedSlot when focus was never set or was cleared.
type AudioState struct {
	Mode        AudioMode `json:"mode"`
	FocusedSlot int       `json:"focused_slot"`
}

// Session is one multi-stream viewing session: an owned, named layout with an
// ordered list of slots and shared audio state.
type Session struct {
	ID        SessionID    `json:"id"`
	Owner     UserID       `json:"owner"`
	Name      string       `json:"name"`
	Layout    LayoutConfig `json:"layout"`
	Slots     []Slot       `json:"slots"`
	Audio     AudioState   `json:"audio"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SlotByIndex returns a pointer to the slot at index, or nil when the index
// is out of range.
func (s *Session) SlotByIndex(index int) *Slot {
	for i := range s.Slots {
		if s.Slots[i].Index == index {
			return &s.Slots[i]
		}
	}
	return nil
}
