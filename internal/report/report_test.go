package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/five82/lotwatch/internal/parking"
)

func sampleReport() parking.Report {
	return parking.Report{
		History: []parking.HistoryEntry{
			{ID: "3", Cubicle: "A1", Plate: "ABC123", EntryTime: "2024-05-01 08:00:00", ExitTime: "2024-05-01 09:30:00", TotalMinutes: 90, Amount: 5000, VehicleType: parking.VehicleCar},
			{ID: "4", Cubicle: "B2", Plate: "MOT12A", EntryTime: "2024-05-01 10:00:00", ExitTime: "2024-05-01 10:20:00", TotalMinutes: 20, Amount: 1500, VehicleType: parking.VehicleMotorcycle},
		},
		Total: 6500,
		ByType: map[parking.VehicleType]parking.TypeTotal{
			parking.VehicleCar: {Amount: 5000, Count: 1},
		},
	}
}

func TestToday(t *testing.T) {
	r := Today(time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, Range{From: "2024-05-01", To: "2024-05-01"}, r)
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange(" 2024-05-01 ", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", r.To)

	_, err = ParseRange("01/05/2024", "")
	assert.Equal(t, parking.KindPrecondition, parking.Classify(err))

	_, err = ParseRange("2024-05-02", "2024-05-01")
	assert.Equal(t, parking.KindPrecondition, parking.Classify(err))
}

func TestSummaryIncludesMissingTypes(t *testing.T) {
	lines := Summary(sampleReport())
	require.Len(t, lines, 2)
	assert.Equal(t, TypeLine{Type: parking.VehicleCar, Count: 1, Amount: 5000}, lines[0])
	assert.Equal(t, TypeLine{Type: parking.VehicleMotorcycle}, lines[1])
}

func TestXLSXContents(t *testing.T) {
	data, err := XLSX(sampleReport(), Range{From: "2024-05-01", To: "2024-05-01"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{summarySheet, historySheet}, f.GetSheetList())

	total, err := f.GetCellValue(summarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "6500", total)

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cubículo", rows[0][1])
	assert.Equal(t, "MOT12A", rows[2][2])
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, sampleReport(), Range{From: "2024-05-01", To: "2024-05-02"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reporte_2024-05-01_2024-05-02.xlsx"), path)
	assert.FileExists(t, path)
}
