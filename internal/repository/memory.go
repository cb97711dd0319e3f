package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRowStore is an in-memory RowStore with the same position semantics
// as the Sheets-backed implementation. It backs the test suite and local
// development without network access.
type MemoryRowStore struct {
	mu           sync.Mutex
	spreadsheets map[string]map[string][][]string // sheetID -> worksheet -> data rows
}

// NewMemoryRowStore creates an empty in-memory store. Spreadsheets must be
// created with CreateSpreadsheet before use; Open on an unknown ID fails
// with ResourceNotFoundError, mirroring the remote behavior.
func NewMemoryRowStore() *MemoryRowStore {
	return &MemoryRowStore{
		spreadsheets: make(map[string]map[string][][]string),
	}
}

// CreateSpreadsheet registers an empty spreadsheet under the given ID.
func (m *MemoryRowStore) CreateSpreadsheet(sheetID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.spreadsheets[sheetID]; !ok {
		m.spreadsheets[sheetID] = make(map[string][][]string)
	}
}

// WorksheetNames returns the names of the worksheets created in a
// spreadsheet.
func (m *MemoryRowStore) WorksheetNames(sheetID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for name := range m.spreadsheets[sheetID] {
		names = append(names, name)
	}
	return names
}

func (m *MemoryRowStore) worksheet(sheetID, worksheet string) ([][]string, error) {
	ss, ok := m.spreadsheets[sheetID]
	if !ok {
		return nil, &ResourceNotFoundError{SheetID: sheetID, Err: fmt.Errorf("unknown spreadsheet")}
	}
	rows, ok := ss[worksheet]
	if !ok {
		return nil, &WriteError{Op: "read", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("worksheet does not exist")}
	}
	return rows, nil
}

// Open implements RowStore.
func (m *MemoryRowStore) Open(ctx context.Context, sheetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.spreadsheets[sheetID]; !ok {
		return &ResourceNotFoundError{SheetID: sheetID, Err: fmt.Errorf("unknown spreadsheet")}
	}
	return nil
}

// EnsureWorksheet implements RowStore. The header row is stored separately
// from data rows, so repeated calls never duplicate it.
func (m *MemoryRowStore) EnsureWorksheet(ctx context.Context, sheetID, worksheet string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ss, ok := m.spreadsheets[sheetID]
	if !ok {
		return &ResourceNotFoundError{SheetID: sheetID, Err: fmt.Errorf("unknown spreadsheet")}
	}
	if _, ok := ss[worksheet]; !ok {
		ss[worksheet] = [][]string{}
	}
	return nil
}

// ReadRows implements RowStore.
func (m *MemoryRowStore) ReadRows(ctx context.Context, sheetID, worksheet string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.worksheet(sheetID, worksheet)
	if err != nil {
		return nil, err
	}
	out := make([]Row, 0, len(rows))
	for i, values := range rows {
		copied := make([]string, len(values))
		copy(copied, values)
		out = append(out, Row{Position: i + 1, Values: copied})
	}
	return out, nil
}

// AppendRow implements RowStore.
func (m *MemoryRowStore) AppendRow(ctx context.Context, sheetID, worksheet string, values []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.worksheet(sheetID, worksheet)
	if err != nil {
		return 0, err
	}
	copied := make([]string, len(values))
	copy(copied, values)
	m.spreadsheets[sheetID][worksheet] = append(rows, copied)
	return len(rows) + 1, nil
}

// UpdateRow implements RowStore.
func (m *MemoryRowStore) UpdateRow(ctx context.Context, sheetID, worksheet string, position int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.worksheet(sheetID, worksheet)
	if err != nil {
		return err
	}
	if position < 1 || position > len(rows) {
		return &WriteError{Op: "update", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("row %d out of range", position)}
	}
	copied := make([]string, len(values))
	copy(copied, values)
	rows[position-1] = copied
	return nil
}

// DeleteRow implements RowStore.
func (m *MemoryRowStore) DeleteRow(ctx context.Context, sheetID, worksheet string, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.worksheet(sheetID, worksheet)
	if err != nil {
		return err
	}
	if position < 1 || position > len(rows) {
		return &WriteError{Op: "delete", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("row %d out of range", position)}
	}
	m.spreadsheets[sheetID][worksheet] = append(rows[:position-1], rows[position:]...)
	return nil
}
