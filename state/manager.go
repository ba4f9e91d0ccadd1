// Package state persists scrape output and progress on the local
// filesystem. Each scrape run gets its own directory keyed by scrape ID, so
// interrupted batch runs can be resumed without redoing finished seeds.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const progressFile = "progress.json"

// SeedStatus records the outcome of one seed in a batch run.
type SeedStatus struct {
	Seed        string    `json:"seed"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Progress is the resumable state of a batch run. The execution ID is
// regenerated on every process start, so resumed runs remain
// distinguishable in logs and output.
type Progress struct {
	ScrapeID    string                `json:"scrape_id"`
	ExecutionID string                `json:"execution_id"`
	Seeds       []string              `json:"seeds"`
	Outcomes    map[string]SeedStatus `json:"outcomes"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// Manager writes records and progress under root/scrapeID. Safe for
// concurrent use across batch workers.
type Manager struct {
	mu       sync.Mutex
	dir      string
	progress Progress
}

// NewManager creates the run directory and loads any existing progress
// file, so a rerun with the same scrape ID resumes where it stopped.
func NewManager(root, scrapeID string) (*Manager, error) {
	dir := filepath.Join(root, scrapeID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	m := &Manager{
		dir: dir,
		progress: Progress{
			ScrapeID: scrapeID,
			Outcomes: make(map[string]SeedStatus),
		},
	}
	if err := m.loadProgress(); err != nil {
		return nil, err
	}
	m.progress.ExecutionID = uuid.New().String()
	return m, nil
}

// Dir returns the run directory.
func (m *Manager) Dir() string {
	return m.dir
}

// SaveRecords writes a result set as pretty-printed JSON and returns the
// file path. The name should identify seed and record kind, for example
// "somebody_videos".
func (m *Manager) SaveRecords(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s records: %w", name, err)
	}

	path := filepath.Join(m.dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("Saved records")
	return path, nil
}

// SetSeeds records the full seed list for the run.
func (m *Manager) SetSeeds(seeds []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress.Seeds = seeds
	return m.saveProgressLocked()
}

// MarkCompleted marks a seed done and persists progress.
func (m *Manager) MarkCompleted(seed string) error {
	return m.mark(seed, SeedStatus{Seed: seed, Status: "completed", CompletedAt: time.Now()})
}

// MarkFailed marks a seed failed with its error and persists progress.
func (m *Manager) MarkFailed(seed string, cause error) error {
	status := SeedStatus{Seed: seed, Status: "failed", CompletedAt: time.Now()}
	if cause != nil {
		status.Error = cause.Error()
	}
	return m.mark(seed, status)
}

// IsDone reports whether a seed already completed in a previous run.
func (m *Manager) IsDone(seed string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	outcome, ok := m.progress.Outcomes[seed]
	return ok && outcome.Status == "completed"
}

// Pending returns the seeds that still need work, in input order.
func (m *Manager) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []string
	for _, seed := range m.progress.Seeds {
		if outcome, ok := m.progress.Outcomes[seed]; !ok || outcome.Status != "completed" {
			pending = append(pending, seed)
		}
	}
	return pending
}

// Snapshot returns a copy of the current progress.
func (m *Manager) Snapshot() Progress {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := m.progress
	copied.Seeds = append([]string(nil), m.progress.Seeds...)
	copied.Outcomes = make(map[string]SeedStatus, len(m.progress.Outcomes))
	for k, v := range m.progress.Outcomes {
		copied.Outcomes[k] = v
	}
	return copied
}

func (m *Manager) mark(seed string, status SeedStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress.Outcomes[seed] = status
	return m.saveProgressLocked()
}

// saveProgressLocked writes atomically via a rename so a crash mid-write
// never corrupts the progress file.
func (m *Manager) saveProgressLocked() error {
	m.progress.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(m.progress, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	path := filepath.Join(m.dir, progressFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}

func (m *Manager) loadProgress() error {
	data, err := os.ReadFile(filepath.Join(m.dir, progressFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read progress: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse progress: %w", err)
	}
	if p.Outcomes == nil {
		p.Outcomes = make(map[string]SeedStatus)
	}
	p.ScrapeID = m.progress.ScrapeID
	m.progress = p

	log.Info().Int("seeds", len(p.Seeds)).Int("done", len(p.Outcomes)).Msg("Resuming previous progress")
	return nil
}
