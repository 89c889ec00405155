package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/xuri/excelize/v2"
)

func guatemala(t *testing.T) *Formatter {
	t.Helper()
	f, err := NewFormatter("America/Guatemala")
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	return f
}

func TestFormatterTime(t *testing.T) {
	t.Parallel()
	f := guatemala(t)
	tests := []struct {
		in   time.Time
		want string
	}{
		// Guatemala is UTC-6 all year.
		{time.Date(2024, 10, 5, 14, 30, 5, 0, time.UTC), "5/10/2024, 8:30:05 a. m."},
		{time.Date(2024, 10, 5, 18, 0, 0, 0, time.UTC), "5/10/2024, 12:00:00 p. m."},
		{time.Date(2024, 1, 1, 6, 15, 0, 0, time.UTC), "1/1/2024, 12:15:00 a. m."},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), "31/12/2024, 5:59:59 p. m."},
		{time.Time{}, ""},
	}
	for _, tt := range tests {
		if got := f.Time(tt.in); got != tt.want {
			t.Fatalf("Time(%v)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Format{"pdf": FormatPDF, "XLSX": FormatXLSX, "excel": FormatXLSX} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Fatalf("ParseFormat(csv) accepted")
	}
}

func sampleReadings(n int) []models.Reading {
	out := make([]models.Reading, n)
	for i := range out {
		out[i] = models.Reading{
			ID:        models.ID("r" + string(rune('a'+i%26))),
			SensorID:  "7",
			Timestamp: time.Date(2024, 10, 5, 14, i%60, 0, 0, time.UTC),
			PH:        7.2,
			Turbidity: 0.45,
			ORP:       410,
		}
	}
	return out
}

func TestReadingsReportRows(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 10, 6, 0, 0, 0, 0, time.UTC)
	table := ReadingsReport(guatemala(t), now, sampleReadings(2), 20)

	if table.Title != "Reporte de Lecturas" || table.Sheet != "ReporteLecturas" {
		t.Fatalf("table=%+v", table)
	}
	if table.FileName(FormatPDF) != "reporte-lecturas.pdf" {
		t.Fatalf("FileName=%q", table.FileName(FormatPDF))
	}
	want := []string{"21", "5/10/2024, 8:00:00 a. m.", "7", "0.45", "7.2", "410"}
	if strings.Join(table.Rows[0], "|") != strings.Join(want, "|") {
		t.Fatalf("row=%v want %v", table.Rows[0], want)
	}
	if table.GeneratedAt != "5/10/2024, 6:00:00 p. m." {
		t.Fatalf("GeneratedAt=%q", table.GeneratedAt)
	}
}

func TestSensorReportFileName(t *testing.T) {
	t.Parallel()
	table := SensorReport(guatemala(t), time.Now(), models.Sensor{Name: "Lago Atitlán"})
	if table.Title != "Reporte de Sensor: Lago Atitlán" || table.FileName(FormatXLSX) != "reporte-sensor-Lago-Atitlán.xlsx" {
		t.Fatalf("table=%+v", table)
	}
	if len(table.Rows) != 0 || len(table.Headers) != 4 {
		t.Fatalf("headers=%v rows=%v", table.Headers, table.Rows)
	}
}

func TestWritePDFSpansPages(t *testing.T) {
	t.Parallel()
	table := ReadingsReport(guatemala(t), time.Now(), sampleReadings(120), 0)
	var buf bytes.Buffer
	if err := WritePDF(&buf, table); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestWriteExcelLayout(t *testing.T) {
	t.Parallel()
	alerts := []models.Alert{{ID: "1", SensorID: "7", Type: "pH", Level: models.AlertCritical, Description: "pH bajo"}}
	table := AlertsReport(guatemala(t), time.Now(), alerts)

	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, table); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("ReporteAlertas", "A1"); got != "Reporte de Alertas" {
		t.Fatalf("A1=%q", got)
	}
	if got, _ := f.GetCellValue("ReporteAlertas", "A2"); !strings.HasPrefix(got, "Generado el ") {
		t.Fatalf("A2=%q", got)
	}
	if got, _ := f.GetCellValue("ReporteAlertas", "F4"); got != "Descripción" {
		t.Fatalf("F4=%q", got)
	}
	if got, _ := f.GetCellValue("ReporteAlertas", "E5"); got != "Crítico" {
		t.Fatalf("E5=%q", got)
	}
}

func TestSheetName(t *testing.T) {
	t.Parallel()
	if got := sheetName("a/b:c"); got != "abc" {
		t.Fatalf("sheetName=%q", got)
	}
	if got := sheetName(strings.Repeat("x", 40)); len(got) != maxSheetName {
		t.Fatalf("len=%d", len(got))
	}
	if got := sheetName(" "); got != "Reporte" {
		t.Fatalf("sheetName=%q", got)
	}
}
