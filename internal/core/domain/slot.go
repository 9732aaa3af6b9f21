package domain

// SlotState is the transient load state of a slot.
type SlotState string

const (
	SlotEmpty   SlotState = "empty"
	SlotLoading SlotState = "loading"
	SlotReady   SlotState = "ready"
	SlotError   SlotState = "error"
)

// Slot is one position in a session's active layout. Index is unique within
// the session. Stream is nil while the slot is empty.
type Slot struct {
	Index      int        `json:"index"`
	Stream     *StreamRef `json:"stream,omitempty"`
	State      SlotState  `json:"state"`
	RetryCount int        `json:"retry_count"`
	LastError  string     `json:"last_error,omitempty"`
	Muted      bool       `json:"muted"`
}

// NewSlot returns an empty, muted slot at the given index.
func NewSlot(index int) Slot {
	return Slot{
		Index: index,
		State: SlotEmpty,
		Muted: true,
	}
}

// Occupied reports whether the slot holds a stream reference.
func (s *Slot) Occupied() bool {
	return s.Stream != nil
}
