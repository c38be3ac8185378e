package sqlitedb

import (
	"database/sql"
	"fmt"

	"relmap/src/models"

	"go.uber.org/zap"
)

// TableSource is the dataset handle for one sqlite table. It satisfies
// the relation package's TupleSource contract; row order follows the
// table's rowid, so insertion order is preserved for the shipped
// commands.
type TableSource struct {
	db     *sql.DB
	table  string
	logger *zap.SugaredLogger
}

// Name returns the table name.
func (t *TableSource) Name() string {
	return t.table
}

// Columns returns the table's column names via PRAGMA table_info.
func (t *TableSource) Columns() ([]string, error) {
	rows, err := t.db.Query(fmt.Sprintf("PRAGMA table_info(%q)", t.table))
	if err != nil {
		return nil, fmt.Errorf("error querying table info for %s: %w", t.table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &primaryKey); err != nil {
			return nil, fmt.Errorf("error scanning table info for %s: %w", t.table, err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// Tuples returns every row of the table as a tuple sequence, in rowid
// order. Query failures are logged and yield an empty sequence; commands
// needing strict errors issue their own statements.
func (t *TableSource) Tuples() []models.Tuple {
	rows, err := t.db.Query(fmt.Sprintf("SELECT * FROM %q ORDER BY rowid", t.table))
	if err != nil {
		t.logger.Errorf("Error selecting from table '%s': %v", t.table, err)
		return nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		t.logger.Errorf("Error reading columns for table '%s': %v", t.table, err)
		return nil
	}

	var tuples []models.Tuple
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			t.logger.Errorf("Error scanning row from table '%s': %v", t.table, err)
			return nil
		}

		tuple := make(models.Tuple, len(columns))
		for i, column := range columns {
			value := values[i]
			// Text columns come back as byte slices; normalize them.
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			tuple[column] = value
		}
		tuples = append(tuples, tuple)
	}
	if err := rows.Err(); err != nil {
		t.logger.Errorf("Error iterating rows of table '%s': %v", t.table, err)
		return nil
	}
	return tuples
}
