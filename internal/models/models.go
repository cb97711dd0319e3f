package models

import (
	"fmt"
	"strings"
)

// Worksheet names inside a tutor's spreadsheet. The user-facing tabs keep
// their Russian titles.
const (
	StudentsSheet = "Ученики"
	LessonsSheet  = "Уроки"
	PaymentsSheet = "Платежи"
	HistorySheet  = "История"
	SettingsSheet = "Настройки"
)

// DecodeError reports a row that cannot be decoded into a record.
type DecodeError struct {
	Sheet string
	Row   int
	Msg   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid data in %s at row %d: %s", e.Sheet, e.Row, e.Msg)
}

// NormalizeKey returns the comparison form of a text field: trimmed,
// internal whitespace collapsed, case-folded. Storage always keeps the
// original value; only equality checks use this form.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// StudentRecord is one row of the students worksheet.
//
// RowIndex is the 1-based position among data rows (the header row is not
// counted). Zero means the record has not been persisted yet.
type StudentRecord struct {
	ParentName  string `json:"parent_name"`
	StudentName string `json:"student_name"`
	LessonCost  string `json:"lesson_cost"`
	RowIndex    int    `json:"row_index,omitempty"`
}

// Key returns the normalized (parent, student) pair used for uniqueness
// checks.
func (s StudentRecord) Key() string {
	return NormalizeKey(s.ParentName) + "\x00" + NormalizeKey(s.StudentName)
}

// ToRow converts the record to its worksheet row form.
func (s StudentRecord) ToRow() []string {
	return []string{s.ParentName, s.StudentName, s.LessonCost}
}

// StudentFromRow decodes a worksheet row into a StudentRecord.
func StudentFromRow(row []string, pos int) (StudentRecord, error) {
	if len(row) < 3 {
		return StudentRecord{}, &DecodeError{Sheet: StudentsSheet, Row: pos, Msg: fmt.Sprintf("expected 3 columns, got %d", len(row))}
	}
	return StudentRecord{
		ParentName:  row[0],
		StudentName: row[1],
		LessonCost:  row[2],
		RowIndex:    pos,
	}, nil
}

// Lesson is one row of the lessons worksheet.
type Lesson struct {
	StudentName string `json:"student_name"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Notes       string `json:"notes,omitempty"`
	RowIndex    int    `json:"row_index,omitempty"`
}

// ToRow converts the lesson to its worksheet row form.
func (l Lesson) ToRow() []string {
	return []string{l.StudentName, l.Date, l.Time, l.Duration, l.Topic, l.Notes}
}

// LessonFromRow decodes a worksheet row into a Lesson. Trailing optional
// cells may be absent.
func LessonFromRow(row []string, pos int) (Lesson, error) {
	if len(row) < 2 {
		return Lesson{}, &DecodeError{Sheet: LessonsSheet, Row: pos, Msg: fmt.Sprintf("expected at least 2 columns, got %d", len(row))}
	}
	return Lesson{
		StudentName: row[0],
		Date:        row[1],
		Time:        cell(row, 2),
		Duration:    cell(row, 3),
		Topic:       cell(row, 4),
		Notes:       cell(row, 5),
		RowIndex:    pos,
	}, nil
}

// Payment is one row of the payments worksheet.
type Payment struct {
	StudentName string `json:"student_name"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Method      string `json:"method,omitempty"`
	Notes       string `json:"notes,omitempty"`
	RowIndex    int    `json:"row_index,omitempty"`
}

// ToRow converts the payment to its worksheet row form.
func (p Payment) ToRow() []string {
	return []string{p.StudentName, p.Amount, p.Date, p.Method, p.Notes}
}

// PaymentFromRow decodes a worksheet row into a Payment.
func PaymentFromRow(row []string, pos int) (Payment, error) {
	if len(row) < 3 {
		return Payment{}, &DecodeError{Sheet: PaymentsSheet, Row: pos, Msg: fmt.Sprintf("expected at least 3 columns, got %d", len(row))}
	}
	return Payment{
		StudentName: row[0],
		Amount:      row[1],
		Date:        row[2],
		Method:      cell(row, 3),
		Notes:       cell(row, 4),
		RowIndex:    pos,
	}, nil
}

// Setting is one key/value row of the settings worksheet.
type Setting struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	RowIndex int    `json:"row_index,omitempty"`
}

// ToRow converts the setting to its worksheet row form.
func (s Setting) ToRow() []string {
	return []string{s.Key, s.Value}
}

// SettingFromRow decodes a worksheet row into a Setting. A missing value
// cell decodes as an empty string.
func SettingFromRow(row []string, pos int) (Setting, error) {
	if len(row) < 1 {
		return Setting{}, &DecodeError{Sheet: SettingsSheet, Row: pos, Msg: "empty row"}
	}
	return Setting{
		Key:      row[0],
		Value:    cell(row, 1),
		RowIndex: pos,
	}, nil
}

// HistoryEvent is one row of the history worksheet.
type HistoryEvent struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Event    string `json:"event"`
	Detail   string `json:"detail,omitempty"`
	RowIndex int    `json:"row_index,omitempty"`
}

// ToRow converts the event to its worksheet row form.
func (h HistoryEvent) ToRow() []string {
	return []string{h.ID, h.Date, h.Event, h.Detail}
}

// HistoryEventFromRow decodes a worksheet row into a HistoryEvent.
func HistoryEventFromRow(row []string, pos int) (HistoryEvent, error) {
	if len(row) < 3 {
		return HistoryEvent{}, &DecodeError{Sheet: HistorySheet, Row: pos, Msg: fmt.Sprintf("expected at least 3 columns, got %d", len(row))}
	}
	return HistoryEvent{
		ID:       row[0],
		Date:     row[1],
		Event:    row[2],
		Detail:   cell(row, 3),
		RowIndex: pos,
	}, nil
}

// TutorConfig binds a Telegram identity to a spreadsheet.
type TutorConfig struct {
	TelegramID string `json:"telegram_id"`
	Name       string `json:"name"`
	SheetsID   string `json:"sheets_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
