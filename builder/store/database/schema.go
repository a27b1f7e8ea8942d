package database

import (
	"context"
	"fmt"
)

// Init creates the catalog tables if they do not exist yet. It never drops
// and never alters existing columns, so it is safe to run on every start.
func Init(ctx context.Context, db *DB) error {
	models := []any{
		(*Repository)(nil),
		(*Asset)(nil),
		(*Module)(nil),
		(*ModuleFile)(nil),
	}
	for _, model := range models {
		_, err := db.Core.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}
	return nil
}
