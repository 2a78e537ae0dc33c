// Package report validates history report ranges and exports reports as
// spreadsheets.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/five82/lotwatch/internal/parking"
)

const dateLayout = "2006-01-02"

// Range is an inclusive date range in YYYY-MM-DD form.
type Range struct {
	From string
	To   string
}

// Today returns the single-day range containing now.
func Today(now time.Time) Range {
	day := now.Format(dateLayout)
	return Range{From: day, To: day}
}

// ParseRange validates operator input. An empty To defaults to From.
func ParseRange(from, to string) (Range, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if to == "" {
		to = from
	}
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return Range{}, parking.Precondition("Fecha inicial no válida (AAAA-MM-DD).")
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return Range{}, parking.Precondition("Fecha final no válida (AAAA-MM-DD).")
	}
	if end.Before(start) {
		return Range{}, parking.Precondition("La fecha final es anterior a la inicial.")
	}
	return Range{From: from, To: to}, nil
}

// TypeLine is the per-vehicle-type summary row.
type TypeLine struct {
	Type   parking.VehicleType
	Count  int
	Amount float64
}

// Summary returns one line per vehicle type in display order, including
// types the backend omitted.
func Summary(rep parking.Report) []TypeLine {
	lines := make([]TypeLine, 0, 2)
	for _, vt := range parking.VehicleTypes() {
		total := rep.ByType[vt]
		lines = append(lines, TypeLine{Type: vt, Count: total.Count, Amount: total.Amount})
	}
	return lines
}

const (
	summarySheet = "Resumen"
	historySheet = "Historial"
)

// XLSX renders the report as a workbook with a summary and a history sheet.
func XLSX(rep parking.Report, r Range) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(historySheet)

	_ = f.SetCellValue(summarySheet, "A1", "Reporte de cobros")
	_ = f.SetCellValue(summarySheet, "A3", "Desde")
	_ = f.SetCellValue(summarySheet, "B3", r.From)
	_ = f.SetCellValue(summarySheet, "A4", "Hasta")
	_ = f.SetCellValue(summarySheet, "B4", r.To)
	_ = f.SetCellValue(summarySheet, "A5", "Total cobrado")
	_ = f.SetCellValue(summarySheet, "B5", rep.Total)

	_ = f.SetCellValue(summarySheet, "A7", "Tipo")
	_ = f.SetCellValue(summarySheet, "B7", "Cantidad")
	_ = f.SetCellValue(summarySheet, "C7", "Total cobrado")
	for i, line := range Summary(rep) {
		row := i + 8
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), string(line.Type))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), line.Count)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), line.Amount)
	}

	headers := []string{"ID", "Cubículo", "Placa", "Tipo", "Ingreso", "Salida", "Minutos", "Monto"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, errors.Wrap(err, "header cell")
		}
		_ = f.SetCellValue(historySheet, cell, h)
	}
	for i, e := range rep.History {
		row := i + 2
		_ = f.SetCellValue(historySheet, fmt.Sprintf("A%d", row), e.ID.String())
		_ = f.SetCellValue(historySheet, fmt.Sprintf("B%d", row), e.Cubicle)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("C%d", row), e.Plate)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("D%d", row), string(e.VehicleType))
		_ = f.SetCellValue(historySheet, fmt.Sprintf("E%d", row), e.EntryTime)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("F%d", row), e.ExitTime)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("G%d", row), e.TotalMinutes)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("H%d", row), e.Amount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

// Save writes the workbook into dir and returns its path.
func Save(dir string, rep parking.Report, r Range) (string, error) {
	data, err := XLSX(rep, r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create export dir")
	}
	path := filepath.Join(dir, fmt.Sprintf("reporte_%s_%s.xlsx", r.From, r.To))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write report")
	}
	return path, nil
}
