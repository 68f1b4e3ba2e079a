package storage

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, headers []string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for col, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "project.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadXLSXProject(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"Period", "Planned Value", "Earned Value"},
		[][]interface{}{
			{1, 10, 8},
			{2, 25, 20},
			{3, 45, 38},
			{4, 70, nil}, // no earned value recorded yet
			{5, 100, nil},
		})

	p, err := NewProjectRepository().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.PlannedValues) != 5 {
		t.Errorf("planned series length = %d, want 5", len(p.PlannedValues))
	}
	if len(p.EarnedValues) != 3 {
		t.Errorf("earned series length = %d, want 3", len(p.EarnedValues))
	}
	if p.ActualTime != 2 {
		t.Errorf("actual time = %d, want 2 (last period with earned data)", p.ActualTime)
	}
	if p.PlannedValues[4] != 100 || p.EarnedValues[2] != 38 {
		t.Errorf("series values misread: pv=%v ev=%v", p.PlannedValues, p.EarnedValues)
	}
}

func TestLoadXLSXShortHeaders(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"PV", "EV"},
		[][]interface{}{
			{10, 8},
			{25, 20},
		})

	p, err := NewProjectRepository().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.PlannedValues) != 2 || len(p.EarnedValues) != 2 {
		t.Errorf("series lengths = %d/%d, want 2/2", len(p.PlannedValues), len(p.EarnedValues))
	}
}

func TestLoadXLSXRejectsUnrecognizedHeaders(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"Month", "Budget"},
		[][]interface{}{{1, 10}})

	if _, err := NewProjectRepository().Load(path); err == nil {
		t.Error("expected header recognition error")
	}
}

func TestLoadXLSXRejectsEarnedValueGap(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"PV", "EV"},
		[][]interface{}{
			{10, 8},
			{25, nil},
			{45, 38}, // earned data resumes after a gap
		})

	if _, err := NewProjectRepository().Load(path); err == nil {
		t.Error("expected gap rejection")
	}
}
