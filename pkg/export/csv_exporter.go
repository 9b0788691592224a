package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders reports as CSV: header fields, a blank line, the table, a blank
// line and the summary fields.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType is the MIME type of rendered output.
func (e *CSVExporter) ContentType() string {
	return "text/csv"
}

// Extension is the file extension of rendered output.
func (e *CSVExporter) Extension() string {
	return "csv"
}

// Render produces CSV encoded bytes for the report.
func (e *CSVExporter) Render(report Report) ([]byte, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	writeFields := func(fields []Field) error {
		for _, field := range fields {
			if err := writer.Write([]string{field.Label, field.Value}); err != nil {
				return fmt.Errorf("write csv field: %w", err)
			}
		}
		return nil
	}

	if err := writeFields(report.Header); err != nil {
		return nil, err
	}
	if len(report.Header) > 0 {
		_ = writer.Write([]string{""})
	}
	if err := writer.Write(report.Columns); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	if len(report.Summary) > 0 {
		_ = writer.Write([]string{""})
	}
	if err := writeFields(report.Summary); err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
