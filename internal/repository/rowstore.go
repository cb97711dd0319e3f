package repository

import (
	"context"

	"github.com/tutorhub/sheets-bot/internal/models"
)

// WorksheetHeaders maps each logical worksheet to its ordered header row.
// The catalogue is used both to create missing worksheets and to interpret
// row shape on read; it is configuration, not runtime state.
var WorksheetHeaders = map[string][]string{
	models.StudentsSheet: {"Родитель", "Ученик", "Стоимость занятия"},
	models.LessonsSheet:  {"Студент", "Дата", "Время", "Продолжительность", "Тема", "Заметки"},
	models.PaymentsSheet: {"Студент", "Сумма", "Дата", "Метод оплаты", "Заметки"},
	models.HistorySheet:  {"ID", "Дата", "Событие", "Деталь"},
	models.SettingsSheet: {"Ключ", "Значение"},
}

// Row is one data row of a worksheet together with its position. Position
// is 1-based among data rows; the header row is excluded, so worksheet row
// number = Position + 1.
type Row struct {
	Position int
	Values   []string
}

// RowStore is the row-level contract against a tabular backend. Every
// record type shares this interface; only schemas and codecs differ, so all
// writes are single atomic remote operations.
type RowStore interface {
	// Open verifies that the spreadsheet exists and is reachable with the
	// configured credentials.
	Open(ctx context.Context, sheetID string) error

	// EnsureWorksheet creates the named worksheet with its catalogue header
	// row when it is missing. Idempotent.
	EnsureWorksheet(ctx context.Context, sheetID, worksheet string) error

	// ReadRows returns all data rows in order, each tagged with its
	// position. The slice is empty when only the header exists.
	ReadRows(ctx context.Context, sheetID, worksheet string) ([]Row, error)

	// AppendRow appends one row at the end and returns its position
	// (previous data-row count + 1).
	AppendRow(ctx context.Context, sheetID, worksheet string, values []string) (int, error)

	// UpdateRow overwrites the row at the given position in place.
	UpdateRow(ctx context.Context, sheetID, worksheet string, position int, values []string) error

	// DeleteRow removes exactly one row; rows below shift up by one.
	DeleteRow(ctx context.Context, sheetID, worksheet string, position int) error
}
