package sqlite

import "database/sql"

// SQL exposes the connection to tests that inspect the schema directly.
func (d *DB) SQL() *sql.DB {
	return d.db
}
