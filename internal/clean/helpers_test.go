package clean

import "github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"

// makeTable builds a raw table from literal rows. A row shorter than the
// column set leaves its trailing columns absent, mirroring how the loader
// treats short CSV records.
func makeTable(name string, columns []string, rows ...[]string) table.Table {
	t := table.Table{Name: name, Columns: columns}
	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i, cell := range cells {
			if i >= len(columns) {
				break
			}
			row[columns[i]] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
