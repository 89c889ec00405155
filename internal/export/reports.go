package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
)

type numbered[T any] struct {
	n   int
	rec T
}

func number[T any](records []T, offset int) []numbered[T] {
	out := make([]numbered[T], len(records))
	for i, r := range records {
		out[i] = numbered[T]{n: offset + i + 1, rec: r}
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadingsReport builds "Reporte de Lecturas". offset is the index of the
// first record in the full listing so the NO column keeps counting across pages.
func ReadingsReport(f *Formatter, now time.Time, readings []models.Reading, offset int) Table {
	cols := []Column[numbered[models.Reading]]{
		{"NO", func(r numbered[models.Reading]) string { return strconv.Itoa(r.n) }},
		{"Fecha y Hora", func(r numbered[models.Reading]) string { return f.Time(r.rec.Timestamp) }},
		{"Id del Sensor", func(r numbered[models.Reading]) string { return r.rec.SensorID.String() }},
		{"Turbidez (NTU)", func(r numbered[models.Reading]) string { return num(r.rec.Turbidity) }},
		{"pH", func(r numbered[models.Reading]) string { return num(r.rec.PH) }},
		{"ORP (mV)", func(r numbered[models.Reading]) string { return num(r.rec.ORP) }},
	}
	return Build(Table{
		Title:       "Reporte de Lecturas",
		Sheet:       "ReporteLecturas",
		FileBase:    "reporte-lecturas",
		GeneratedAt: f.Time(now),
	}, cols, number(readings, offset))
}

// AlertsReport builds "Reporte de Alertas".
func AlertsReport(f *Formatter, now time.Time, alerts []models.Alert) Table {
	cols := []Column[numbered[models.Alert]]{
		{"NO", func(a numbered[models.Alert]) string { return strconv.Itoa(a.n) }},
		{"Nombre de Alerta", func(a numbered[models.Alert]) string { return a.rec.Type }},
		{"Id del sensor", func(a numbered[models.Alert]) string { return a.rec.SensorID.String() }},
		{"Fecha", func(a numbered[models.Alert]) string { return f.Time(a.rec.Timestamp) }},
		{"Nivel", func(a numbered[models.Alert]) string { return a.rec.Level.Label() }},
		{"Descripción", func(a numbered[models.Alert]) string { return a.rec.Description }},
	}
	return Build(Table{
		Title:       "Reporte de Alertas",
		Sheet:       "ReporteAlertas",
		FileBase:    "reporte-alertas",
		GeneratedAt: f.Time(now),
	}, cols, number(alerts, 0))
}

// SensorReport builds "Reporte de Sensor: <name>" from the sensor's readings.
func SensorReport(f *Formatter, now time.Time, sensor models.Sensor) Table {
	cols := []Column[models.Reading]{
		{"Fecha y Hora", func(r models.Reading) string { return f.Time(r.Timestamp) }},
		{"pH", func(r models.Reading) string { return num(r.PH) }},
		{"Turbidez (NTU)", func(r models.Reading) string { return num(r.Turbidity) }},
		{"ORP (mV)", func(r models.Reading) string { return num(r.ORP) }},
	}
	return Build(Table{
		Title:       "Reporte de Sensor: " + sensor.Name,
		Sheet:       "ReporteSensor",
		FileBase:    "reporte-sensor-" + slug(sensor.Name),
		GeneratedAt: f.Time(now),
	}, cols, sensor.Readings)
}

// slug keeps file names header-safe.
func slug(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "sin-nombre"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '/' || r == '\\' || r < 0x20:
		case r == ' ':
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
