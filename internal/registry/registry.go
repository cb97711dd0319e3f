// Package registry provides the durable mapping from a tutor's Telegram
// identity to their configuration. The backing store is a single JSON file
// rewritten whole on every mutation; a mutex serializes all access so
// concurrent callers observe a linearized history.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tutorhub/sheets-bot/internal/models"
)

// NotFoundError reports an operation on an unregistered identity.
type NotFoundError struct {
	TelegramID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tutor with telegram_id %s not found", e.TelegramID)
}

// AlreadyExistsError reports a registration attempt on a taken identity.
type AlreadyExistsError struct {
	TelegramID string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("tutor with telegram_id %s already registered", e.TelegramID)
}

// ConfigurationError reports an unreadable or malformed backing file. It is
// fatal at startup: discarding data silently is never acceptable.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("registry file %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// fileLayout is the on-disk document shape.
type fileLayout struct {
	Tutors []models.TutorConfig `json:"tutors"`
}

// Registry is a concurrency-safe, file-backed tutor store. Construct one
// instance at process start and pass it by reference; there is no ambient
// singleton.
type Registry struct {
	path string

	mu     sync.Mutex
	tutors []models.TutorConfig

	// now is swappable in tests.
	now func() time.Time
}

// New loads the registry from path. A missing or empty file starts an empty
// registry (and creates the file); a present but malformed file fails fast
// with ConfigurationError.
func New(path string) (*Registry, error) {
	r := &Registry{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := r.persist(); err != nil {
			return nil, err
		}
		return r, nil
	case err != nil:
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	if len(data) == 0 {
		if err := r.persist(); err != nil {
			return nil, err
		}
		return r, nil
	}

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	r.tutors = layout.Tutors
	return r, nil
}

// Path returns the backing file path.
func (r *Registry) Path() string {
	return r.path
}

// persist writes the whole collection atomically: serialize to a temp file
// in the same directory, then rename over the target. Callers must hold the
// mutex (or be the constructor, before the registry is shared).
func (r *Registry) persist() error {
	data, err := json.MarshalIndent(fileLayout{Tutors: r.tutors}, "", "  ")
	if err != nil {
		return &ConfigurationError{Path: r.path, Err: err}
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".tutors-*.json")
	if err != nil {
		return &ConfigurationError{Path: r.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &ConfigurationError{Path: r.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &ConfigurationError{Path: r.path, Err: err}
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return &ConfigurationError{Path: r.path, Err: err}
	}
	return nil
}

func (r *Registry) index(telegramID string) int {
	for i := range r.tutors {
		if r.tutors[i].TelegramID == telegramID {
			return i
		}
	}
	return -1
}

// Register creates a new tutor record. Fails with AlreadyExistsError when
// the identity is taken.
func (r *Registry) Register(telegramID, name, sheetsID string) (*models.TutorConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(telegramID) >= 0 {
		return nil, &AlreadyExistsError{TelegramID: telegramID}
	}

	now := r.now().Format(time.RFC3339)
	tutor := models.TutorConfig{
		TelegramID: telegramID,
		Name:       name,
		SheetsID:   sheetsID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.tutors = append(r.tutors, tutor)

	if err := r.persist(); err != nil {
		// Roll the in-memory state back so memory and file stay consistent.
		r.tutors = r.tutors[:len(r.tutors)-1]
		return nil, err
	}
	return &tutor, nil
}

// Get returns a copy of the stored config for telegramID.
func (r *Registry) Get(telegramID string) (*models.TutorConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(telegramID)
	if i < 0 {
		return nil, &NotFoundError{TelegramID: telegramID}
	}
	tutor := r.tutors[i]
	return &tutor, nil
}

// Updates is the set of mutable tutor fields for Update. Nil fields are
// left unchanged.
type Updates struct {
	Name     *string
	SheetsID *string
}

// Update merges the provided fields into the stored record and bumps
// updated_at.
func (r *Registry) Update(telegramID string, updates Updates) (*models.TutorConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(telegramID)
	if i < 0 {
		return nil, &NotFoundError{TelegramID: telegramID}
	}

	previous := r.tutors[i]
	if updates.Name != nil {
		r.tutors[i].Name = *updates.Name
	}
	if updates.SheetsID != nil {
		r.tutors[i].SheetsID = *updates.SheetsID
	}
	r.tutors[i].UpdatedAt = r.now().Format(time.RFC3339)

	if err := r.persist(); err != nil {
		r.tutors[i] = previous
		return nil, err
	}
	tutor := r.tutors[i]
	return &tutor, nil
}

// Delete removes the record for telegramID.
func (r *Registry) Delete(telegramID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(telegramID)
	if i < 0 {
		return &NotFoundError{TelegramID: telegramID}
	}

	previous := r.tutors
	r.tutors = append(append([]models.TutorConfig{}, r.tutors[:i]...), r.tutors[i+1:]...)

	if err := r.persist(); err != nil {
		r.tutors = previous
		return err
	}
	return nil
}

// List returns all registered tutors in file order.
func (r *Registry) List() []models.TutorConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.TutorConfig, len(r.tutors))
	copy(out, r.tutors)
	return out
}

// Exists reports whether telegramID is registered. Never fails.
func (r *Registry) Exists(telegramID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index(telegramID) >= 0
}
