package export

import (
	"context"
	"fmt"
)

// Workbook opens a worksheet by name, creating it when missing.
type Workbook interface {
	Worksheet(ctx context.Context, name string) (Worksheet, error)
}

type Worksheet interface {
	Clear(ctx context.Context) error
	AppendRows(ctx context.Context, rows [][]string) error
}

// SheetsSink replaces the contents of a dated worksheet on every run.
type SheetsSink struct {
	wb Workbook
}

func NewSheetsSink(wb Workbook) *SheetsSink {
	return &SheetsSink{wb: wb}
}

func (s *SheetsSink) Name() string { return "Google Sheets" }

func (s *SheetsSink) Save(ctx context.Context, worksheet string, rows [][]string) (string, error) {
	ws, err := s.wb.Worksheet(ctx, worksheet)
	if err != nil {
		return "", fmt.Errorf("failed to open worksheet %q: %w", worksheet, err)
	}
	if err := ws.Clear(ctx); err != nil {
		return "", fmt.Errorf("failed to clear worksheet %q: %w", worksheet, err)
	}
	if err := ws.AppendRows(ctx, rows); err != nil {
		return "", fmt.Errorf("failed to append rows: %w", err)
	}
	return worksheet, nil
}
