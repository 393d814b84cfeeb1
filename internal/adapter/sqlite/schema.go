package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the weather table. _id is a plain INTEGER PRIMARY KEY so
// rowids restart at 1 after a full delete, which keeps Replace idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS weather (
	_id        INTEGER PRIMARY KEY,
	date       INTEGER NOT NULL UNIQUE,
	weather_id INTEGER NOT NULL,
	min        REAL NOT NULL,
	max        REAL NOT NULL,
	humidity   REAL NOT NULL,
	pressure   REAL NOT NULL,
	wind_speed REAL NOT NULL,
	degrees    REAL NOT NULL
);`

// EnsureSchema creates the weather table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create weather table: %w", err)
	}
	return nil
}
