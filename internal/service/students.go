package service

import (
	"context"
	"fmt"

	"github.com/tutorhub/sheets-bot/internal/models"
	"github.com/tutorhub/sheets-bot/internal/utils"
)

// ListStudents returns every student record in insertion order. Rows are
// only appended and removed, never reordered, so store order is insertion
// order. Blank rows (empty parent cell) are skipped.
func (s *DefaultService) ListStudents(ctx context.Context, sheetID string) ([]models.StudentRecord, error) {
	if err := s.store.EnsureWorksheet(ctx, sheetID, models.StudentsSheet); err != nil {
		return nil, err
	}

	rows, err := s.store.ReadRows(ctx, sheetID, models.StudentsSheet)
	if err != nil {
		return nil, err
	}

	records := make([]models.StudentRecord, 0, len(rows))
	for _, row := range rows {
		if len(row.Values) == 0 || row.Values[0] == "" {
			continue
		}
		record, err := models.StudentFromRow(row.Values, row.Position)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// AddStudent validates the candidate, checks the ledger for a normalized-key
// duplicate and appends the record. The whole check-then-act sequence runs
// under the per-spreadsheet lock.
func (s *DefaultService) AddStudent(ctx context.Context, sheetID, parentName, studentName, lessonCost string) (*models.StudentRecord, error) {
	parentName = utils.SanitizeName(parentName)
	studentName = utils.SanitizeName(studentName)
	lessonCost = utils.SanitizeName(lessonCost)

	if parentName == "" {
		return nil, &ValidationError{Field: "parent name"}
	}
	if studentName == "" {
		return nil, &ValidationError{Field: "student name"}
	}
	if lessonCost == "" {
		return nil, &ValidationError{Field: "lesson cost"}
	}

	mu := s.lockSheet(sheetID)
	mu.Lock()
	defer mu.Unlock()

	candidate := models.StudentRecord{
		ParentName:  parentName,
		StudentName: studentName,
		LessonCost:  lessonCost,
	}

	existing, err := s.ListStudents(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	for _, record := range existing {
		if record.Key() == candidate.Key() {
			return nil, &DuplicateRecordError{Existing: record}
		}
	}

	pos, err := s.store.AppendRow(ctx, sheetID, models.StudentsSheet, candidate.ToRow())
	if err != nil {
		return nil, err
	}
	candidate.RowIndex = pos

	s.log.Info("student added: %s / %s (row %d)", parentName, studentName, pos)
	s.logEventQuiet(ctx, sheetID, "Ученик добавлен", fmt.Sprintf("%s / %s", parentName, studentName))

	return &candidate, nil
}

// DeleteStudent removes the first record whose normalized key matches.
// Pre-existing duplicate keys (imported externally) are not repaired: only
// the lowest row position is acted upon.
func (s *DefaultService) DeleteStudent(ctx context.Context, sheetID, parentName, studentName string) (*models.StudentRecord, error) {
	parentName = utils.SanitizeName(parentName)
	studentName = utils.SanitizeName(studentName)

	if parentName == "" {
		return nil, &ValidationError{Field: "parent name"}
	}
	if studentName == "" {
		return nil, &ValidationError{Field: "student name"}
	}

	mu := s.lockSheet(sheetID)
	mu.Lock()
	defer mu.Unlock()

	target := models.StudentRecord{ParentName: parentName, StudentName: studentName}

	existing, err := s.ListStudents(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	for _, record := range existing {
		if record.Key() != target.Key() {
			continue
		}
		if err := s.store.DeleteRow(ctx, sheetID, models.StudentsSheet, record.RowIndex); err != nil {
			return nil, err
		}
		s.log.Info("student deleted: %s / %s (row %d)", record.ParentName, record.StudentName, record.RowIndex)
		s.logEventQuiet(ctx, sheetID, "Ученик удалён", fmt.Sprintf("%s / %s", record.ParentName, record.StudentName))
		deleted := record
		return &deleted, nil
	}

	return nil, &RecordNotFoundError{
		Sheet: models.StudentsSheet,
		Key:   fmt.Sprintf("%s / %s", models.NormalizeKey(parentName), models.NormalizeKey(studentName)),
	}
}
