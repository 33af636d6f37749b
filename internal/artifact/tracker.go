package artifact

import (
	"log"
	"sync"

	"github.com/spf13/afero"
)

// Tracker records every file a pipeline run creates. Intermediates can be
// removed individually once superseded; after a failure, Sweep deletes
// whatever was registered but not marked final, so aborted runs do not
// leave orphaned files behind.
type Tracker struct {
	fs afero.Fs

	mu      sync.Mutex
	created []string
	finals  map[string]bool
}

// NewTracker creates a tracker over the given filesystem.
func NewTracker(fs afero.Fs) *Tracker {
	return &Tracker{
		fs:     fs,
		finals: make(map[string]bool),
	}
}

// Register records a path created during the run.
func (t *Tracker) Register(path string) {
	if path == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.created {
		if p == path {
			return
		}
	}
	t.created = append(t.created, path)
}

// MarkFinal excludes a path from failure sweeps. Final artifacts survive
// even when a later step fails.
func (t *Tracker) MarkFinal(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finals[path] = true
}

// Remove deletes a superseded intermediate if it still exists.
func (t *Tracker) Remove(path string) error {
	exists, err := afero.Exists(t.fs, path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return t.fs.Remove(path)
}

// Sweep best-effort deletes every registered path not marked final and
// returns the paths actually removed. Errors are logged, never returned:
// sweep runs on a path that already failed.
func (t *Tracker) Sweep() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed []string
	for _, path := range t.created {
		if t.finals[path] {
			continue
		}
		exists, err := afero.Exists(t.fs, path)
		if err != nil || !exists {
			continue
		}
		if err := t.fs.Remove(path); err != nil {
			log.Printf("Failed to sweep intermediate %s: %v", path, err)
			continue
		}
		removed = append(removed, path)
	}
	return removed
}
