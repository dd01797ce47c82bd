// Package drafts holds uncommitted working copies of the section forms.
// A draft is opened from the current document, edited in isolation and
// only touches the document on a successful submit. Abandoned drafts
// expire after a TTL and are swept by the cleanup worker.
package drafts

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hero4job/cv-engine/internal/forms"
	"github.com/hero4job/cv-engine/internal/models"
)

// Common errors
var (
	ErrDraftNotFound   = errors.New("draft not found")
	ErrDraftExpired    = errors.New("draft has expired")
	ErrSectionMismatch = errors.New("payload section does not match draft")
)

// Draft is one open working copy of a section form.
type Draft struct {
	ID        string         `json:"id"`
	Section   models.Section `json:"section"`
	Payload   forms.Payload  `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Expired reports whether the draft's TTL has passed.
func (d *Draft) Expired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// copy returns a detached copy whose payload does not alias the live
// draft's rows.
func (d *Draft) copy() *Draft {
	copied := *d
	copied.Payload = d.Payload.Clone()
	return &copied
}

// Manager owns the open drafts and routes edits and submits through the
// section controllers.
type Manager struct {
	mu          sync.RWMutex
	drafts      map[string]*Draft
	controllers *forms.Controllers
	ttl         time.Duration
	logger      *zap.Logger
}

// NewManager creates a draft manager over the given controller set.
func NewManager(controllers *forms.Controllers, ttl time.Duration, logger *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		drafts:      make(map[string]*Draft),
		controllers: controllers,
		ttl:         ttl,
		logger:      logger,
	}
}

// Open creates a draft for a section, initialized from the current
// document through the section's controller.
func (m *Manager) Open(section models.Section) (*Draft, error) {
	payload, err := m.controllers.Load(section)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Draft{
		ID:        uuid.New().String()[:12],
		Section:   section,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.drafts[d.ID] = d
	m.mu.Unlock()

	m.logger.Info("draft opened",
		zap.String("id", d.ID),
		zap.String("section", string(section)),
		zap.Time("expires_at", d.ExpiresAt),
	)

	return d.copy(), nil
}

// Get returns a copy of the draft.
func (m *Manager) Get(id string) (*Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if d.Expired(time.Now()) {
		return nil, ErrDraftExpired
	}

	return d.copy(), nil
}

// Update replaces the draft payload with an edited one. The payload must
// carry the same section the draft was opened for.
func (m *Manager) Update(id string, payload forms.Payload) (*Draft, error) {
	section, err := payload.Section()
	if err != nil {
		return nil, err
	}

	return m.edit(id, func(d *Draft) error {
		if section != d.Section {
			return ErrSectionMismatch
		}
		d.Payload = payload.Clone()
		return nil
	})
}

// Append adds an empty row to a list-section draft.
func (m *Manager) Append(id string) (*Draft, error) {
	return m.edit(id, func(d *Draft) error {
		return d.Payload.Append()
	})
}

// RemoveAt removes the row at index from a list-section draft.
func (m *Manager) RemoveAt(id string, index int) (*Draft, error) {
	return m.edit(id, func(d *Draft) error {
		return d.Payload.RemoveAt(index)
	})
}

// SetStillHere flips the still-here flag on a row. Setting it true clears
// the row's end-date text immediately.
func (m *Manager) SetStillHere(id string, index int, value bool) (*Draft, error) {
	return m.edit(id, func(d *Draft) error {
		return d.Payload.SetStillHere(index, value)
	})
}

// edit applies fn to the live draft under the lock, refreshing the TTL on
// success.
func (m *Manager) edit(id string, fn func(*Draft) error) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	now := time.Now()
	if d.Expired(now) {
		return nil, ErrDraftExpired
	}

	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(m.ttl)

	return d.copy(), nil
}

// Submit routes the draft to its section controller. A clean submit
// commits to the document and deletes the draft; validation failure keeps
// the draft open and returns the field errors.
func (m *Manager) Submit(id string) (forms.Errors, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if d.Expired(time.Now()) {
		return nil, ErrDraftExpired
	}

	errs, err := m.controllers.Submit(d.Payload)
	if err != nil {
		return nil, err
	}
	if errs.OK() || d.Section == models.SectionPersonal {
		// Personal commits best-effort even when invalid, so its draft
		// is spent either way.
		delete(m.drafts, id)
		m.logger.Info("draft submitted",
			zap.String("id", id),
			zap.String("section", string(d.Section)),
			zap.Int("field_errors", len(errs)),
		)
	}
	return errs, nil
}

// Discard deletes a draft without touching the document.
func (m *Manager) Discard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drafts[id]; !ok {
		return ErrDraftNotFound
	}
	delete(m.drafts, id)
	return nil
}

// Expired returns copies of all drafts past their TTL.
func (m *Manager) Expired(now time.Time) []*Draft {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var expired []*Draft
	for _, d := range m.drafts {
		if d.Expired(now) {
			expired = append(expired, d.copy())
		}
	}
	return expired
}

// DeleteExpired removes all drafts past their TTL and reports how many
// were removed.
func (m *Manager) DeleteExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, d := range m.drafts {
		if d.Expired(now) {
			delete(m.drafts, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of open drafts.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.drafts)
}
