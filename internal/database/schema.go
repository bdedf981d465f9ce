package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/fyyur/internal/config"
)

// CreateSchema creates the venues, artists and shows tables for the given
// driver.  Safe to call multiple times - uses IF NOT EXISTS.  Statements run
// one at a time because the MySQL driver rejects multi-statement Exec.
func CreateSchema(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case config.DriverMySQL:
		stmts = mysqlSchema
	case config.DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
    id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    city VARCHAR(120) NOT NULL DEFAULT '',
    state VARCHAR(120) NOT NULL DEFAULT '',
    address VARCHAR(120) NOT NULL DEFAULT '',
    phone VARCHAR(120) NOT NULL DEFAULT '',
    image_link VARCHAR(500) NOT NULL DEFAULT '',
    facebook_link VARCHAR(120) NOT NULL DEFAULT '',
    genres VARCHAR(1000) NOT NULL DEFAULT '',
    website VARCHAR(250) NOT NULL DEFAULT '',
    seeking_talent BOOLEAN NOT NULL DEFAULT FALSE,
    seeking_description VARCHAR(500) NOT NULL DEFAULT '',
    INDEX idx_venues_area (state, city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
    id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    city VARCHAR(120) NOT NULL DEFAULT '',
    state VARCHAR(120) NOT NULL DEFAULT '',
    phone VARCHAR(120) NOT NULL DEFAULT '',
    genres VARCHAR(1000) NOT NULL DEFAULT '',
    image_link VARCHAR(500) NOT NULL DEFAULT '',
    facebook_link VARCHAR(120) NOT NULL DEFAULT ''
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
    id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    venue_id BIGINT UNSIGNED NOT NULL,
    venue_name VARCHAR(255) NOT NULL DEFAULT '',
    venue_image_link VARCHAR(500) NOT NULL DEFAULT '',
    artist_id BIGINT UNSIGNED NOT NULL,
    artist_name VARCHAR(255) NOT NULL DEFAULT '',
    artist_image_link VARCHAR(500) NOT NULL DEFAULT '',
    start_time DATETIME NOT NULL,
    INDEX idx_shows_venue_start (venue_id, start_time),
    INDEX idx_shows_artist_start (artist_id, start_time),
    CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues(id) ON DELETE CASCADE,
    CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    city TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    image_link TEXT NOT NULL DEFAULT '',
    facebook_link TEXT NOT NULL DEFAULT '',
    genres TEXT NOT NULL DEFAULT '',
    website TEXT NOT NULL DEFAULT '',
    seeking_talent BOOLEAN NOT NULL DEFAULT 0,
    seeking_description TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_area ON venues(state, city)`,
	`CREATE TABLE IF NOT EXISTS artists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    city TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    genres TEXT NOT NULL DEFAULT '',
    image_link TEXT NOT NULL DEFAULT '',
    facebook_link TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS shows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    venue_id INTEGER NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
    venue_name TEXT NOT NULL DEFAULT '',
    venue_image_link TEXT NOT NULL DEFAULT '',
    artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
    artist_name TEXT NOT NULL DEFAULT '',
    artist_image_link TEXT NOT NULL DEFAULT '',
    start_time DATETIME NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_venue_start ON shows(venue_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_artist_start ON shows(artist_id, start_time)`,
}
