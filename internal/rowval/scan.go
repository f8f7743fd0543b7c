package rowval

import "database/sql"

// ScanRows drains a result set into normalized rows and closes it. Column
// order is preserved; classification uses each column's DatabaseTypeName when
// the driver reports one.
func ScanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0)
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[i] = Field{Name: col.Name(), Value: FromSQL(col.DatabaseTypeName(), raw[i])}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
