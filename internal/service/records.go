package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tutorhub/sheets-bot/internal/models"
	"github.com/tutorhub/sheets-bot/internal/utils"
)

// ListLessons returns every lesson in insertion order.
func (s *DefaultService) ListLessons(ctx context.Context, sheetID string) ([]models.Lesson, error) {
	if err := s.store.EnsureWorksheet(ctx, sheetID, models.LessonsSheet); err != nil {
		return nil, err
	}

	rows, err := s.store.ReadRows(ctx, sheetID, models.LessonsSheet)
	if err != nil {
		return nil, err
	}

	lessons := make([]models.Lesson, 0, len(rows))
	for _, row := range rows {
		if len(row.Values) == 0 || row.Values[0] == "" {
			continue
		}
		lesson, err := models.LessonFromRow(row.Values, row.Position)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

// AddLesson appends a lesson row.
func (s *DefaultService) AddLesson(ctx context.Context, sheetID string, lesson models.Lesson) (*models.Lesson, error) {
	lesson.StudentName = utils.SanitizeName(lesson.StudentName)
	if lesson.StudentName == "" {
		return nil, &ValidationError{Field: "student name"}
	}
	if lesson.Date == "" {
		return nil, &ValidationError{Field: "lesson date"}
	}

	if err := s.store.EnsureWorksheet(ctx, sheetID, models.LessonsSheet); err != nil {
		return nil, err
	}
	pos, err := s.store.AppendRow(ctx, sheetID, models.LessonsSheet, lesson.ToRow())
	if err != nil {
		return nil, err
	}
	lesson.RowIndex = pos

	s.logEventQuiet(ctx, sheetID, "Урок добавлен", lesson.StudentName+" "+lesson.Date)
	return &lesson, nil
}

// ListPayments returns every payment in insertion order.
func (s *DefaultService) ListPayments(ctx context.Context, sheetID string) ([]models.Payment, error) {
	if err := s.store.EnsureWorksheet(ctx, sheetID, models.PaymentsSheet); err != nil {
		return nil, err
	}

	rows, err := s.store.ReadRows(ctx, sheetID, models.PaymentsSheet)
	if err != nil {
		return nil, err
	}

	payments := make([]models.Payment, 0, len(rows))
	for _, row := range rows {
		if len(row.Values) == 0 || row.Values[0] == "" {
			continue
		}
		payment, err := models.PaymentFromRow(row.Values, row.Position)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// AddPayment appends a payment row.
func (s *DefaultService) AddPayment(ctx context.Context, sheetID string, payment models.Payment) (*models.Payment, error) {
	payment.StudentName = utils.SanitizeName(payment.StudentName)
	if payment.StudentName == "" {
		return nil, &ValidationError{Field: "student name"}
	}
	if payment.Amount == "" {
		return nil, &ValidationError{Field: "payment amount"}
	}
	if payment.Date == "" {
		return nil, &ValidationError{Field: "payment date"}
	}

	if err := s.store.EnsureWorksheet(ctx, sheetID, models.PaymentsSheet); err != nil {
		return nil, err
	}
	pos, err := s.store.AppendRow(ctx, sheetID, models.PaymentsSheet, payment.ToRow())
	if err != nil {
		return nil, err
	}
	payment.RowIndex = pos

	s.logEventQuiet(ctx, sheetID, "Платёж добавлен", payment.StudentName+" "+payment.Amount)
	return &payment, nil
}

// GetSetting returns the value stored under key in the settings worksheet.
func (s *DefaultService) GetSetting(ctx context.Context, sheetID, key string) (string, error) {
	if key == "" {
		return "", &ValidationError{Field: "setting key"}
	}

	if err := s.store.EnsureWorksheet(ctx, sheetID, models.SettingsSheet); err != nil {
		return "", err
	}

	rows, err := s.store.ReadRows(ctx, sheetID, models.SettingsSheet)
	if err != nil {
		return "", err
	}

	for _, row := range rows {
		setting, err := models.SettingFromRow(row.Values, row.Position)
		if err != nil {
			continue
		}
		if setting.Key == key {
			return setting.Value, nil
		}
	}
	return "", &RecordNotFoundError{Sheet: models.SettingsSheet, Key: key}
}

// SetSetting stores a value under key. An existing key is updated in place
// so the row positions of other settings never shift.
func (s *DefaultService) SetSetting(ctx context.Context, sheetID, key, value string) error {
	if key == "" {
		return &ValidationError{Field: "setting key"}
	}

	mu := s.lockSheet(sheetID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.store.EnsureWorksheet(ctx, sheetID, models.SettingsSheet); err != nil {
		return err
	}

	rows, err := s.store.ReadRows(ctx, sheetID, models.SettingsSheet)
	if err != nil {
		return err
	}

	setting := models.Setting{Key: key, Value: value}
	for _, row := range rows {
		existing, err := models.SettingFromRow(row.Values, row.Position)
		if err != nil {
			continue
		}
		if existing.Key == key {
			return s.store.UpdateRow(ctx, sheetID, models.SettingsSheet, row.Position, setting.ToRow())
		}
	}

	_, err = s.store.AppendRow(ctx, sheetID, models.SettingsSheet, setting.ToRow())
	return err
}

// LogEvent appends an event to the history worksheet.
func (s *DefaultService) LogEvent(ctx context.Context, sheetID, event, detail string) error {
	if event == "" {
		return &ValidationError{Field: "event"}
	}

	if err := s.store.EnsureWorksheet(ctx, sheetID, models.HistorySheet); err != nil {
		return err
	}

	entry := models.HistoryEvent{
		ID:     uuid.New().String(),
		Date:   time.Now().UTC().Format(time.RFC3339),
		Event:  event,
		Detail: detail,
	}
	_, err := s.store.AppendRow(ctx, sheetID, models.HistorySheet, entry.ToRow())
	return err
}

// logEventQuiet records a history event for a completed mutation. History is
// best-effort: a failed append is logged and must not fail the primary
// operation.
func (s *DefaultService) logEventQuiet(ctx context.Context, sheetID, event, detail string) {
	if err := s.LogEvent(ctx, sheetID, event, detail); err != nil {
		s.log.Warn("history append failed for %s: %v", sheetID, err)
	}
}
