// Package performance provides performance tracking for Malleable operations.
package performance

import (
	"sync"
	"time"
)

// Marker is the live measurement handle for a single operation. Handler
// goroutines mutate it while the tracker reads it for metrics, so all field
// access goes through the marker's lock; readers take Metric copies.
type Marker struct {
	mu sync.Mutex

	operation string
	clientID  string
	startTime time.Time
	endTime   time.Time
	duration  time.Duration
	success   bool
	err       string
	metadata  map[string]any
	completed bool
}

// Metric is an immutable copy of a marker's state.
type Metric struct {
	Operation string         `json:"operation"` // e.g., "post_snapshot_request"
	ClientID  string         `json:"clientId,omitempty"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Duration  time.Duration  `json:"duration"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Completed bool           `json:"completed"`
}

// Complete marks the operation as finished and calculates final metrics
func (m *Marker) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.completed {
		return // Prevent double completion
	}

	m.endTime = time.Now()
	m.duration = m.endTime.Sub(m.startTime)
	m.completed = true
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err.Error()
	m.success = false
}

// AddMetadata adds key-value metadata to the marker
func (m *Marker) AddMetadata(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.metadata == nil {
		m.metadata = make(map[string]any)
	}
	m.metadata[key] = value
}

// snapshot returns a consistent copy of the marker for metrics readers.
func (m *Marker) snapshot() Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := Metric{
		Operation: m.operation,
		ClientID:  m.clientID,
		StartTime: m.startTime,
		EndTime:   m.endTime,
		Duration:  m.duration,
		Success:   m.success,
		Error:     m.err,
		Completed: m.completed,
	}
	if m.metadata != nil {
		copied.Metadata = make(map[string]any, len(m.metadata))
		for k, v := range m.metadata {
			copied.Metadata[k] = v
		}
	}
	return copied
}
