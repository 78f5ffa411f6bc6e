package pg

import (
	"context"
	_ "embed"
	"fmt"
	"trade_desk/pkg/db"
)

//go:embed sql/schema.sql
var schema string

// Migrate creates the column_prefs table when it is missing.
func Migrate(ctx context.Context, conn db.Transaction) error {
	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("pg.Migrate: %w", err)
	}
	return nil
}
