package db

import "database/sql"

// Dialect-specific DDL for the questions table. Title uniqueness lives in the
// schema; the constraint is the sole guarantee against duplicate records when
// two seeding runs race on the same title.
const (
	createQuestionsPostgres = `
CREATE TABLE IF NOT EXISTS questions (
    id      BIGSERIAL PRIMARY KEY,
    title   TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL
)`

	createQuestionsSQLite = `
CREATE TABLE IF NOT EXISTS questions (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    title   TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL
)`
)

// MigrateUp creates the schema for the configured driver. Safe to run
// repeatedly.
func MigrateUp(db *sql.DB) error {
	ddl := createQuestionsPostgres
	if Driver() == DriverSQLite {
		ddl = createQuestionsSQLite
	}

	if _, err := db.Exec(ddl); err != nil {
		return err
	}
	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this deletes all stored question records.
func MigrateDown(db *sql.DB) error {
	_, err := db.Exec(`DROP TABLE IF EXISTS questions`)
	return err
}
