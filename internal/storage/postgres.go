package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	name:      "postgres",
	numbered:  true,
	returning: true,
	schema: `
		CREATE TABLE IF NOT EXISTS scores (
			id BIGSERIAL PRIMARY KEY,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`,
}

// openPostgres connects to the database named by a postgres:// DSN and
// creates the schema.
func openPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open postgres: %w", err)
	}
	return newStore(db, postgresDialect)
}
