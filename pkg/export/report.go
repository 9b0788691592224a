package export

import "fmt"

// Field is a labelled value printed above or below the table.
type Field struct {
	Label string
	Value string
}

// Report is a titled table framed by header and summary fields.
type Report struct {
	Title   string
	Header  []Field
	Columns []string
	Rows    [][]string
	Summary []Field
}

func (r Report) validate() error {
	if len(r.Columns) == 0 {
		return fmt.Errorf("report requires at least one column")
	}
	for i, row := range r.Rows {
		if len(row) != len(r.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(r.Columns))
		}
	}
	return nil
}
