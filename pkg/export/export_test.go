package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	return Report{
		Title:   "Transcript",
		Header:  []Field{{Label: "Student", Value: "Ayesha Khan"}},
		Columns: []string{"Semester", "GPA"},
		Rows:    [][]string{{"1", "3.50"}, {"2", "3.90"}},
		Summary: []Field{{Label: "CGPA", Value: "3.70"}},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "Student,Ayesha Khan\n\nSemester,GPA\n1,3.50\n2,3.90\n\nCGPA,3.70\n", string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	report := sampleReport()
	report.Rows = append(report.Rows, []string{"3"})
	_, err := NewCSVExporter().Render(report)
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestExportersRequireColumns(t *testing.T) {
	_, err := NewPDFExporter().Render(Report{})
	assert.Error(t, err)
	_, err = NewCSVExporter().Render(Report{})
	assert.Error(t, err)
}
