package session

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"board-web/internal/metrics"
	"board-web/internal/view"
)

// State is the view state of one visitor
type State struct {
	Sidebar  view.SidebarState `json:"sidebar"`
	PostView *view.PostView    `json:"postView,omitempty"`
}

// NewState returns the state of a visitor seen for the first time
func NewState() *State {
	return &State{}
}

// Store persists visitor view state keyed by visitor id.
// Load returns a fresh state for unknown or expired ids.
type Store interface {
	Load(ctx context.Context, visitorID string) (*State, error)
	Save(ctx context.Context, visitorID string, st *State) error
	Ping(ctx context.Context) error
}

func encode(st *State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode view state: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*State, error) {
	st := NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to decode view state: %w", err)
	}
	return st, nil
}

// Manager wraps a Store so that store failures degrade to a fresh state
type Manager struct {
	store   Store
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewManager(store Store, logger *zap.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// Get loads the visitor state, returning a fresh one if the store fails
func (m *Manager) Get(ctx context.Context, visitorID string) *State {
	st, err := m.store.Load(ctx, visitorID)
	if err != nil {
		m.logger.Warn("Failed to load view state, starting fresh",
			zap.String("visitor_id", visitorID),
			zap.Error(err),
		)
		m.recordError("load")
		return NewState()
	}
	return st
}

// Put saves the visitor state; failures are logged only
func (m *Manager) Put(ctx context.Context, visitorID string, st *State) {
	if err := m.store.Save(ctx, visitorID, st); err != nil {
		m.logger.Warn("Failed to save view state",
			zap.String("visitor_id", visitorID),
			zap.Error(err),
		)
		m.recordError("save")
	}
}

// Ping checks the underlying store
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Manager) recordError(operation string) {
	if m.metrics != nil {
		m.metrics.RecordSessionStoreError(operation)
	}
}
