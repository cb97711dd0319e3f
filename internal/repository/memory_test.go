package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tutorhub/sheets-bot/internal/models"
)

func newTestStore(t *testing.T) *MemoryRowStore {
	t.Helper()
	store := NewMemoryRowStore()
	store.CreateSpreadsheet("sheet-1")
	return store
}

func TestOpenUnknownSpreadsheet(t *testing.T) {
	store := NewMemoryRowStore()

	err := store.Open(context.Background(), "missing")

	var notFound *ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.SheetID)
}

func TestEnsureWorksheetIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.EnsureWorksheet(ctx, "sheet-1", models.StudentsSheet))
	_, err := store.AppendRow(ctx, "sheet-1", models.StudentsSheet, []string{"Ivan Petrov", "Mikhail", "1500"})
	assert.NoError(t, err)

	// A second Ensure must not clear existing data.
	assert.NoError(t, store.EnsureWorksheet(ctx, "sheet-1", models.StudentsSheet))

	rows, err := store.ReadRows(ctx, "sheet-1", models.StudentsSheet)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAppendRowPositions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	assert.NoError(t, store.EnsureWorksheet(ctx, "sheet-1", "ws"))

	p1, err := store.AppendRow(ctx, "sheet-1", "ws", []string{"a"})
	assert.NoError(t, err)
	p2, err := store.AppendRow(ctx, "sheet-1", "ws", []string{"b"})
	assert.NoError(t, err)

	assert.Equal(t, 1, p1)
	assert.Equal(t, 2, p2)

	rows, err := store.ReadRows(ctx, "sheet-1", "ws")
	assert.NoError(t, err)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, []string{"a"}, rows[0].Values)
	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, []string{"b"}, rows[1].Values)
}

func TestDeleteRowShiftsPositions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	assert.NoError(t, store.EnsureWorksheet(ctx, "sheet-1", "ws"))
	for _, v := range []string{"a", "b", "c"} {
		_, err := store.AppendRow(ctx, "sheet-1", "ws", []string{v})
		assert.NoError(t, err)
	}

	assert.NoError(t, store.DeleteRow(ctx, "sheet-1", "ws", 2))

	rows, err := store.ReadRows(ctx, "sheet-1", "ws")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"a"}, rows[0].Values)
	assert.Equal(t, []string{"c"}, rows[1].Values)
	assert.Equal(t, 2, rows[1].Position)
}

func TestUpdateRowInPlace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	assert.NoError(t, store.EnsureWorksheet(ctx, "sheet-1", "ws"))
	_, err := store.AppendRow(ctx, "sheet-1", "ws", []string{"old"})
	assert.NoError(t, err)

	assert.NoError(t, store.UpdateRow(ctx, "sheet-1", "ws", 1, []string{"new"}))

	rows, err := store.ReadRows(ctx, "sheet-1", "ws")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{"new"}, rows[0].Values)
}

func TestWriteOutOfRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	assert.NoError(t, store.EnsureWorksheet(ctx, "sheet-1", "ws"))

	var writeErr *WriteError

	err := store.DeleteRow(ctx, "sheet-1", "ws", 1)
	assert.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "delete", writeErr.Op)

	err = store.UpdateRow(ctx, "sheet-1", "ws", 0, []string{"x"})
	assert.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "update", writeErr.Op)
}

func TestReadRowsReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	assert.NoError(t, store.EnsureWorksheet(ctx, "sheet-1", "ws"))
	_, err := store.AppendRow(ctx, "sheet-1", "ws", []string{"original"})
	assert.NoError(t, err)

	rows, err := store.ReadRows(ctx, "sheet-1", "ws")
	assert.NoError(t, err)
	rows[0].Values[0] = "mutated"

	again, err := store.ReadRows(ctx, "sheet-1", "ws")
	assert.NoError(t, err)
	assert.Equal(t, "original", again[0].Values[0])
}
