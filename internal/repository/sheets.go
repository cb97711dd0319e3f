package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsRowStore implements RowStore against the Google Sheets API using a
// service-account credential. Every call runs under a bounded timeout;
// deadline expiry surfaces as a typed error, never a hang.
type SheetsRowStore struct {
	svc     *sheets.Service
	timeout time.Duration
}

// NewSheetsRowStore authenticates with the service-account key at
// credentialsPath and returns a ready store.
func NewSheetsRowStore(ctx context.Context, credentialsPath string, timeout time.Duration) (*SheetsRowStore, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("read credentials %s: %w", credentialsPath, err)}
	}

	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("parse credentials: %w", err)}
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("create sheets service: %w", err)}
	}

	return &SheetsRowStore{svc: svc, timeout: timeout}, nil
}

func (s *SheetsRowStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Open implements RowStore.
func (s *SheetsRowStore) Open(ctx context.Context, sheetID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.svc.Spreadsheets.Get(sheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return openError(sheetID, err)
	}
	return nil
}

// EnsureWorksheet implements RowStore. A missing worksheet is created with
// the catalogue header row; an existing one is left untouched.
func (s *SheetsRowStore) EnsureWorksheet(ctx context.Context, sheetID, worksheet string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	titles, err := s.worksheetIDs(ctx, sheetID)
	if err != nil {
		return err
	}
	if _, ok := titles[worksheet]; ok {
		return nil
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: worksheet,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 26,
					},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(sheetID, req).Context(ctx).Do(); err != nil {
		return &WriteError{Op: "create", SheetID: sheetID, Worksheet: worksheet, Err: err}
	}

	headers, ok := WorksheetHeaders[worksheet]
	if !ok {
		return nil
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(headers)}}
	_, err = s.svc.Spreadsheets.Values.Append(sheetID, rangeAll(worksheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return &WriteError{Op: "create", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("write header: %w", err)}
	}
	return nil
}

// ReadRows implements RowStore.
func (s *SheetsRowStore) ReadRows(ctx context.Context, sheetID, worksheet string) ([]Row, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.svc.Spreadsheets.Values.Get(sheetID, rangeData(worksheet)).Context(ctx).Do()
	if err != nil {
		return nil, openError(sheetID, err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for i, raw := range resp.Values {
		values := make([]string, len(raw))
		for j, v := range raw {
			values[j] = toString(v)
		}
		rows = append(rows, Row{Position: i + 1, Values: values})
	}
	return rows, nil
}

// AppendRow implements RowStore. The assigned position is taken from the
// range the API reports back for the appended cells.
func (s *SheetsRowStore) AppendRow(ctx context.Context, sheetID, worksheet string, values []string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}
	resp, err := s.svc.Spreadsheets.Values.Append(sheetID, rangeAll(worksheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, &WriteError{Op: "append", SheetID: sheetID, Worksheet: worksheet, Err: err}
	}

	if resp.Updates == nil {
		return 0, &WriteError{Op: "append", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("no update range in response")}
	}
	sheetRow, err := firstRowOfRange(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, &WriteError{Op: "append", SheetID: sheetID, Worksheet: worksheet, Err: err}
	}
	// Worksheet row N is data row N-1 (row 1 is the header).
	return sheetRow - 1, nil
}

// UpdateRow implements RowStore.
func (s *SheetsRowStore) UpdateRow(ctx context.Context, sheetID, worksheet string, position int, values []string) error {
	if position < 1 {
		return &WriteError{Op: "update", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("row %d out of range", position)}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}
	target := fmt.Sprintf("'%s'!A%d", worksheet, position+1)
	_, err := s.svc.Spreadsheets.Values.Update(sheetID, target, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return &WriteError{Op: "update", SheetID: sheetID, Worksheet: worksheet, Err: err}
	}
	return nil
}

// DeleteRow implements RowStore. Deletion is a single DeleteDimension batch
// request; the API shifts the remaining rows up.
func (s *SheetsRowStore) DeleteRow(ctx context.Context, sheetID, worksheet string, position int) error {
	if position < 1 {
		return &WriteError{Op: "delete", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("row %d out of range", position)}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ids, err := s.worksheetIDs(ctx, sheetID)
	if err != nil {
		return err
	}
	gid, ok := ids[worksheet]
	if !ok {
		return &WriteError{Op: "delete", SheetID: sheetID, Worksheet: worksheet, Err: fmt.Errorf("worksheet does not exist")}
	}

	// Data row at position p occupies 0-based grid index p (the header is
	// index 0).
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    gid,
					Dimension:  "ROWS",
					StartIndex: int64(position),
					EndIndex:   int64(position) + 1,
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(sheetID, req).Context(ctx).Do(); err != nil {
		return &WriteError{Op: "delete", SheetID: sheetID, Worksheet: worksheet, Err: err}
	}
	return nil
}

// worksheetIDs returns the numeric grid ID of every worksheet in the
// spreadsheet, keyed by title.
func (s *SheetsRowStore) worksheetIDs(ctx context.Context, sheetID string) (map[string]int64, error) {
	resp, err := s.svc.Spreadsheets.Get(sheetID).Fields("sheets.properties(sheetId,title)").Context(ctx).Do()
	if err != nil {
		return nil, openError(sheetID, err)
	}
	ids := make(map[string]int64, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			ids[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	return ids, nil
}

var firstCellPattern = regexp.MustCompile(`![A-Z]+(\d+)`)

// firstRowOfRange extracts the worksheet row number of the first cell of an
// A1 range like "'Ученики'!A5:C5".
func firstRowOfRange(a1 string) (int, error) {
	m := firstCellPattern.FindStringSubmatch(a1)
	if m == nil {
		return 0, fmt.Errorf("cannot parse range %q", a1)
	}
	return strconv.Atoi(m[1])
}

// openError maps transport failures into the adapter error taxonomy.
func openError(sheetID string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return &AuthenticationError{Err: err}
		case http.StatusForbidden, http.StatusNotFound:
			return &ResourceNotFoundError{SheetID: sheetID, Err: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ResourceNotFoundError{SheetID: sheetID, Err: fmt.Errorf("request timed out: %w", err)}
	}
	return &ResourceNotFoundError{SheetID: sheetID, Err: err}
}

func rangeAll(worksheet string) string {
	return fmt.Sprintf("'%s'!A1", worksheet)
}

func rangeData(worksheet string) string {
	return fmt.Sprintf("'%s'!A2:Z", worksheet)
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
