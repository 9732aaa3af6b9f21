package domain

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotEmpty           = errors.New("slot is empty")
	ErrRetriesExhausted    = errors.New("slot retries exhausted")
	ErrInvalidStreamURL    = errors.New("invalid stream url")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrChannelNotFound     = errors.New("channel not found")
	ErrLayoutCapacity      = errors.New("layout capacity exceeded")
	ErrManualModeRequired  = errors.New("manual audio mode required")
	ErrPreferenceNotFound  = errors.New("preference not found")
)
