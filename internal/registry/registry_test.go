package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tutors.json")
	r, err := New(path)
	require.NoError(t, err)
	return r, path
}

func TestNewCreatesMissingFile(t *testing.T) {
	r, path := newTestRegistry(t)

	assert.Empty(t, r.List())
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestNewEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutors.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	r, err := New(path)
	require.NoError(t, err)
	assert.Empty(t, r.List())
}

func TestNewMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutors.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path)

	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))
	assert.Equal(t, path, confErr.Path)
}

func TestRegisterAndGet(t *testing.T) {
	r, _ := newTestRegistry(t)

	tutor, err := r.Register("100", "Anna", "sheet-abc")
	require.NoError(t, err)
	assert.Equal(t, "100", tutor.TelegramID)
	assert.Equal(t, "Anna", tutor.Name)
	assert.Equal(t, "sheet-abc", tutor.SheetsID)
	assert.NotEmpty(t, tutor.CreatedAt)
	assert.Equal(t, tutor.CreatedAt, tutor.UpdatedAt)

	got, err := r.Get("100")
	require.NoError(t, err)
	assert.Equal(t, *tutor, *got)
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Register("100", "Anna", "sheet-abc")
	require.NoError(t, err)

	_, err = r.Register("100", "Other", "sheet-xyz")

	var exists *AlreadyExistsError
	assert.True(t, errors.As(err, &exists))
	assert.Equal(t, "100", exists.TelegramID)

	// The original record is untouched.
	got, err := r.Get("100")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
}

func TestGetUnknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Get("999")

	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "999", notFound.TelegramID)
}

func TestGetReturnsCopy(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Register("100", "Anna", "sheet-abc")
	require.NoError(t, err)

	got, err := r.Get("100")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := r.Get("100")
	require.NoError(t, err)
	assert.Equal(t, "Anna", again.Name)
}

func TestUpdateMergesFields(t *testing.T) {
	r, _ := newTestRegistry(t)
	created, err := r.Register("100", "Anna", "sheet-abc")
	require.NoError(t, err)

	newSheet := "sheet-new"
	updated, err := r.Update("100", Updates{SheetsID: &newSheet})
	require.NoError(t, err)

	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "sheet-new", updated.SheetsID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateUnknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	name := "Anna"
	_, err := r.Update("999", Updates{Name: &name})

	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestDelete(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Register("100", "Anna", "sheet-abc")
	require.NoError(t, err)
	_, err = r.Register("200", "Boris", "sheet-def")
	require.NoError(t, err)

	require.NoError(t, r.Delete("100"))

	assert.False(t, r.Exists("100"))
	assert.True(t, r.Exists("200"))

	var notFound *NotFoundError
	assert.True(t, errors.As(r.Delete("100"), &notFound))
}

func TestMutationsSurviveReload(t *testing.T) {
	r, path := newTestRegistry(t)
	_, err := r.Register("100", "Anna", "sheet-abc")
	require.NoError(t, err)
	_, err = r.Register("200", "Boris", "sheet-def")
	require.NoError(t, err)
	require.NoError(t, r.Delete("100"))

	reloaded, err := New(path)
	require.NoError(t, err)

	tutors := reloaded.List()
	require.Len(t, tutors, 1)
	assert.Equal(t, "200", tutors[0].TelegramID)
	assert.Equal(t, "Boris", tutors[0].Name)
}

func TestConcurrentRegisterDistinctIDs(t *testing.T) {
	r, path := newTestRegistry(t)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Register(fmt.Sprintf("%d", i), fmt.Sprintf("Tutor %d", i), fmt.Sprintf("sheet-%d", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, r.List(), workers)

	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Len(t, reloaded.List(), workers)
}

func TestConcurrentRegisterSameID(t *testing.T) {
	r, _ := newTestRegistry(t)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Register("100", "Anna", "sheet-abc")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var exists *AlreadyExistsError
		assert.True(t, errors.As(err, &exists))
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, r.List(), 1)
}
