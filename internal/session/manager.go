package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/validate"
)

// DefaultConfidenceThreshold is the confidence at or above which extraction
// candidates are accepted without operator review.
const DefaultConfidenceThreshold = 0.85

// DefaultCheckpointInterval is how many recorded answers trigger an
// automatic checkpoint.
const DefaultCheckpointInterval = 5

// CheckpointFunc persists a session checkpoint. It is invoked by the manager
// after every Nth recorded answer, outside the manager's lock. A failure is
// logged and the session continues; checkpointing is best-effort.
type CheckpointFunc func(ctx context.Context, state State) error

// SnapshotSource loads previously exported session state for resumption.
// Implemented by the snapshot file codec and the sqlite store. The found
// return is false when there is no prior session, which is not an error.
type SnapshotSource interface {
	LoadLatest(ctx context.Context) (restored *Restored, found bool, err error)
}

// ErrNoSession is returned by mutating operations before Start or Resume.
var ErrNoSession = errors.New("no active discovery session")

// Config wires a Manager. Catalog is required; everything else has defaults.
type Config struct {
	Catalog             *catalog.Registry
	Rules               *validate.Registry
	Logger              *slog.Logger
	ConfidenceThreshold float64 // 0 means DefaultConfidenceThreshold
	CheckpointInterval  int     // 0 means DefaultCheckpointInterval
	Checkpoint          CheckpointFunc
}

// Manager owns one live session and one pending-review cache at a time and
// serializes every write to them. Read-only projections take the read lock,
// so they can run concurrently with a batch of candidate resolutions.
type Manager struct {
	catalog    *catalog.Registry
	rules      *validate.Registry
	logger     *slog.Logger
	threshold  float64
	interval   int
	checkpoint CheckpointFunc

	mu        sync.RWMutex
	sessionID string
	createdAt time.Time
	answers   map[string]Answer
	pending   map[string]Answer
	documents map[string]struct{}
	recorded  int // answers recorded since Start/Resume, drives checkpoint cadence
}

// NewManager creates a manager in the uninitialized state. Call Start or
// Resume before recording answers.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.Catalog.Len() == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	rules := cfg.Rules
	if rules == nil {
		rules = validate.NewRegistry()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	threshold := cfg.ConfidenceThreshold
	if threshold == 0 {
		threshold = DefaultConfidenceThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("confidence threshold %v out of range [0,1]", threshold)
	}
	interval := cfg.CheckpointInterval
	if interval == 0 {
		interval = DefaultCheckpointInterval
	}

	return &Manager{
		catalog:    cfg.Catalog,
		rules:      rules,
		logger:     logger,
		threshold:  threshold,
		interval:   interval,
		checkpoint: cfg.Checkpoint,
	}, nil
}

// Start begins a fresh session. An empty id gets a generated one.
func (m *Manager) Start(sessionID string) State {
	if sessionID == "" {
		sessionID = "discovery-" + uuid.NewString()[:8]
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = sessionID
	m.createdAt = time.Now()
	m.answers = make(map[string]Answer)
	m.pending = make(map[string]Answer)
	m.documents = make(map[string]struct{})
	m.recorded = 0
	m.logger.Info("started discovery session", "session", sessionID)
	return m.stateLocked()
}

// Resume reconstructs a session from the most recent snapshot in src.
// Any failure to load degrades to starting a fresh session: discovery must
// always be able to begin even when history is unavailable. Answers whose
// question ids are no longer in the catalog are dropped with a warning,
// since catalogs evolve between export and reimport.
func (m *Manager) Resume(ctx context.Context, src SnapshotSource) State {
	if src == nil {
		return m.Start("")
	}

	restored, found, err := src.LoadLatest(ctx)
	if err != nil {
		m.logger.Warn("failed to load previous session, starting fresh", "error", err)
		return m.Start("")
	}
	if !found {
		m.logger.Info("no previous session found")
		return m.Start("")
	}

	m.mu.Lock()
	m.sessionID = restored.SessionID
	if m.sessionID == "" {
		m.sessionID = "resumed-" + uuid.NewString()[:8]
	}
	m.createdAt = restored.CreatedAt
	if m.createdAt.IsZero() {
		m.createdAt = time.Now()
	}
	m.answers = make(map[string]Answer, len(restored.Answers))
	m.pending = make(map[string]Answer)
	m.documents = make(map[string]struct{}, len(restored.DocumentsAnalyzed))
	m.recorded = 0

	dropped := 0
	for _, a := range restored.Answers {
		if !m.catalog.Contains(a.QuestionID) {
			m.logger.Warn("dropping answer for unknown question on resume",
				"question", a.QuestionID, "session", m.sessionID)
			dropped++
			continue
		}
		m.answers[a.QuestionID] = a
	}
	for _, d := range restored.DocumentsAnalyzed {
		m.documents[d] = struct{}{}
	}
	state := m.stateLocked()
	m.mu.Unlock()

	m.logger.Info("resumed discovery session",
		"session", state.SessionID,
		"answers", len(state.Answers),
		"dropped", dropped)
	return state
}

// Active reports whether a session has been started or resumed.
func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.answers != nil
}

// State returns a copy of the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

// Answer returns the current answer for a question, if any.
func (m *Manager) Answer(questionID string) (Answer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.answers[questionID]
	return a, ok
}

// AddDocument records that a document was analyzed for this session.
func (m *Manager) AddDocument(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.documents != nil && name != "" {
		m.documents[name] = struct{}{}
	}
}

// stateLocked builds a State copy. Callers must hold at least the read lock.
func (m *Manager) stateLocked() State {
	answers := make(map[string]Answer, len(m.answers))
	for id, a := range m.answers {
		answers[id] = a
	}
	docs := make([]string, 0, len(m.documents))
	for d := range m.documents {
		docs = append(docs, d)
	}
	sort.Strings(docs)
	return State{
		SessionID:         m.sessionID,
		CreatedAt:         m.createdAt,
		Answers:           answers,
		DocumentsAnalyzed: docs,
		Completion:        m.completionLocked(),
	}
}

// completionLocked computes the completion percentage from the answer count.
// It is recomputed on every read so it can never go stale.
func (m *Manager) completionLocked() float64 {
	return 100 * float64(len(m.answers)) / float64(m.catalog.Len())
}

// maybeCheckpoint fires the checkpoint hook when the cadence is due. Called
// with the state copied out and the lock released, so a slow checkpoint
// never blocks concurrent projections.
func (m *Manager) maybeCheckpoint(ctx context.Context, state State, due bool) {
	if !due || m.checkpoint == nil {
		return
	}
	if err := m.checkpoint(ctx, state); err != nil {
		m.logger.Warn("checkpoint failed, session continues",
			"session", state.SessionID, "error", err)
		return
	}
	m.logger.Info("checkpoint saved",
		"session", state.SessionID, "answers", len(state.Answers))
}
