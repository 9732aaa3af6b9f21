package services

import (
	"sync"

	"streamgrid/internal/core/domain"
)

// MetricsService keeps in-memory counters for the coordination plane. The
// prometheus collector reads these on scrape.
type MetricsService struct {
	mu sync.RWMutex

	activeSessions  int
	slotsByPlatform map[domain.Platform]int
	layoutChanges   map[domain.LayoutKind]int
	slotErrors      int
	slotRetries     int
	audioFocusMoves int
	resolveHits     int
	resolveMisses   int
	resolveFailures int
}

func NewMetricsService() *MetricsService {
	return &MetricsService{
		slotsByPlatform: make(map[domain.Platform]int),
		layoutChanges:   make(map[domain.LayoutKind]int),
	}
}

func (m *MetricsService) SessionOpened() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeSessions++
}

func (m *MetricsService) SessionClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeSessions > 0 {
		m.activeSessions--
	}
}

func (m *MetricsService) SlotAssigned(platform domain.Platform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slotsByPlatform[platform]++
}

func (m *MetricsService) SlotCleared(platform domain.Platform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slotsByPlatform[platform] > 0 {
		m.slotsByPlatform[platform]--
	}
}

func (m *MetricsService) SlotErrored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slotErrors++
}

func (m *MetricsService) SlotRetried() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slotRetries++
}

func (m *MetricsService) LayoutChanged(kind domain.LayoutKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layoutChanges[kind]++
}

func (m *MetricsService) AudioFocusMoved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audioFocusMoves++
}

func (m *MetricsService) ResolveHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveHits++
}

func (m *MetricsService) ResolveMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveMisses++
}

func (m *MetricsService) ResolveFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveFailures++
}

// Snapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	ActiveSessions  int
	SlotsByPlatform map[domain.Platform]int
	LayoutChanges   map[domain.LayoutKind]int
	SlotErrors      int
	SlotRetries     int
	AudioFocusMoves int
	ResolveHits     int
	ResolveMisses   int
	ResolveFailures int
}

func (m *MetricsService) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		ActiveSessions:  m.activeSessions,
		SlotsByPlatform: make(map[domain.Platform]int, len(m.slotsByPlatform)),
		LayoutChanges:   make(map[domain.LayoutKind]int, len(m.layoutChanges)),
		SlotErrors:      m.slotErrors,
		SlotRetries:     m.slotRetries,
		AudioFocusMoves: m.audioFocusMoves,
		ResolveHits:     m.resolveHits,
		ResolveMisses:   m.resolveMisses,
		ResolveFailures: m.resolveFailures,
	}
	for k, v := range m.slotsByPlatform {
		snap.SlotsByPlatform[k] = v
	}
	for k, v := range m.layoutChanges {
		snap.LayoutChanges[k] = v
	}
	return snap
}
