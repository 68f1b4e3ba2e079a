package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/estrack/estrack/pkg/domain/project"
)

// LoadXLSX imports a project from a spreadsheet. The first sheet is scanned
// for a header row containing a planned-value and an earned-value column
// (matched by name); each following row contributes one period. Earned-value
// cells may stop early when recent periods have no data yet; the actual time
// defaults to the last period with an earned value.
func (r *ProjectRepository) LoadXLSX(path string) (*project.Project, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	pvCol, evCol, err := recognizeColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	var pv, ev []float64
	for i, row := range rows[1:] {
		pvCell := cellAt(row, pvCol)
		if pvCell == "" {
			break // end of the planned series
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(pvCell), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad planned value %q", i+2, pvCell)
		}
		pv = append(pv, v)

		evCell := cellAt(row, evCol)
		if evCell == "" {
			continue // earned series may be shorter
		}
		if len(ev) < len(pv)-1 {
			return nil, fmt.Errorf("row %d: earned value after a gap", i+2)
		}
		e, err := strconv.ParseFloat(strings.TrimSpace(evCell), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad earned value %q", i+2, evCell)
		}
		ev = append(ev, e)
	}

	if len(ev) == 0 {
		return nil, fmt.Errorf("sheet %q has no earned values", sheet)
	}

	p := &project.Project{
		Name:          sheet,
		PlannedValues: pv,
		EarnedValues:  ev,
		ActualTime:    len(ev) - 1,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// recognizeColumns finds the planned and earned value columns by header name.
func recognizeColumns(headers []string) (pvCol, evCol int, err error) {
	pvCol, evCol = -1, -1
	for i, h := range headers {
		switch normalizeHeader(h) {
		case "pv", "planned", "plannedvalue":
			pvCol = i
		case "ev", "earned", "earnedvalue":
			evCol = i
		}
	}
	if pvCol < 0 || evCol < 0 {
		return 0, 0, fmt.Errorf("could not locate PV and EV columns in header %v", headers)
	}
	return pvCol, evCol, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
