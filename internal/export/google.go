package export

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

type GoogleConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	// SpreadsheetName is looked up in Drive when SpreadsheetID is empty.
	SpreadsheetName string
}

// GoogleWorkbook is a Workbook backed by the Sheets API.
type GoogleWorkbook struct {
	svc *sheets.Service
	id  string
}

func NewGoogleWorkbook(ctx context.Context, cfg GoogleConfig) (*GoogleWorkbook, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveReadonlyScope),
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	id := cfg.SpreadsheetID
	if id == "" {
		dsvc, err := drive.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create drive service: %w", err)
		}
		if id, err = findSpreadsheet(ctx, dsvc, cfg.SpreadsheetName); err != nil {
			return nil, err
		}
	}
	return &GoogleWorkbook{svc: svc, id: id}, nil
}

func findSpreadsheet(ctx context.Context, d *drive.Service, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)
	res, err := d.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up spreadsheet %q: %w", name, err)
	}
	if len(res.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found or not shared with the service account", name)
	}
	return res.Files[0].Id, nil
}

func (w *GoogleWorkbook) Worksheet(ctx context.Context, name string) (Worksheet, error) {
	ss, err := w.svc.Spreadsheets.Get(w.id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return &googleWorksheet{svc: w.svc, id: w.id, name: name}, nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title:          name,
					GridProperties: &sheets.GridProperties{RowCount: 1000, ColumnCount: 10},
				},
			},
		}},
	}
	if _, err := w.svc.Spreadsheets.BatchUpdate(w.id, req).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}
	return &googleWorksheet{svc: w.svc, id: w.id, name: name}, nil
}

type googleWorksheet struct {
	svc  *sheets.Service
	id   string
	name string
}

// a1 quotes the sheet name for A1 notation.
func (ws *googleWorksheet) a1() string {
	return "'" + strings.ReplaceAll(ws.name, "'", "''") + "'"
}

func (ws *googleWorksheet) Clear(ctx context.Context) error {
	_, err := ws.svc.Spreadsheets.Values.Clear(ws.id, ws.a1(), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (ws *googleWorksheet) AppendRows(ctx context.Context, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, v := range row {
			values[i][j] = v
		}
	}
	_, err := ws.svc.Spreadsheets.Values.Append(ws.id, ws.a1()+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
