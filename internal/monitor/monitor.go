package monitor

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/database"
)

// Status is the point-in-time health snapshot served by the health
// endpoint.
type Status struct {
	Database  string    `json:"database"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// Monitor probes the database on a schedule and caches the result, so
// the health endpoint never issues its own query under load.
type Monitor struct {
	db   *database.DB
	cron *cron.Cron

	mu   sync.RWMutex
	last Status
}

// New creates a monitor for db. A nil db is allowed: the monitor then
// reports the database as disconnected, which keeps the health endpoint
// serving while the API runs without a connection.
func New(db *database.DB) *Monitor {
	return &Monitor{
		db:   db,
		cron: cron.New(),
		last: Status{Database: "unknown", CheckedAt: time.Now()},
	}
}

// Start probes once immediately and then every minute.
func (m *Monitor) Start() {
	m.check()
	if m.db == nil {
		return
	}
	if _, err := m.cron.AddFunc("@every 1m", m.check); err != nil {
		log.Printf("health probe schedule failed: %v", err)
		return
	}
	m.cron.Start()
}

// Stop halts the probe schedule.
func (m *Monitor) Stop() {
	m.cron.Stop()
}

// Status returns the most recent probe result.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Healthy reports whether the last probe reached the database.
func (m *Monitor) Healthy() bool {
	return m.Status().Database == "connected"
}

func (m *Monitor) check() {
	status := Status{CheckedAt: time.Now()}
	switch {
	case m.db == nil:
		status.Database = "disconnected"
		status.Error = "no database connection"
	default:
		if err := m.db.Ping(); err != nil {
			status.Database = "down"
			status.Error = err.Error()
			log.Printf("database health probe failed: %v", err)
		} else {
			status.Database = "connected"
		}
	}

	m.mu.Lock()
	m.last = status
	m.mu.Unlock()
}
