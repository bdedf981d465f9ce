// Package testutil builds throwaway SQLite databases with the full schema and
// seeds them with the sample venues, artists and shows used across tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// SetupTestDB creates a fresh database file under t.TempDir with the full
// schema.  The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "fyyur_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.CreateSchema(context.Background(), db, config.DriverSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// InsertVenue writes v directly and returns its id.
func InsertVenue(t *testing.T, db *sql.DB, v model.Venue) uint64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, genres, website, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Genres, v.Website, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		t.Fatalf("Failed to insert venue %q: %v", v.Name, err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// InsertArtist writes a directly and returns its id.
func InsertArtist(t *testing.T, db *sql.DB, a model.Artist) uint64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink)
	if err != nil {
		t.Fatalf("Failed to insert artist %q: %v", a.Name, err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// InsertShow writes a show between venueID and artistID, copying their
// current names and images the way the show form does.
func InsertShow(t *testing.T, db *sql.DB, venueID, artistID uint64, start time.Time) uint64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO shows (venue_id, venue_name, venue_image_link, artist_id, artist_name, artist_image_link, start_time)
		SELECT v.id, v.name, v.image_link, a.id, a.name, a.image_link, ?
		FROM venues v, artists a WHERE v.id = ? AND a.id = ?`,
		start.UTC().Truncate(time.Second), venueID, artistID)
	if err != nil {
		t.Fatalf("Failed to insert show: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// CountRows returns the number of rows in table matching an optional where
// clause.
func CountRows(t *testing.T, db *sql.DB, table, where string, args ...any) int {
	t.Helper()
	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := db.QueryRow(q, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// Sample fixtures mirroring the seed data of the directory.
var (
	MusicalHop = model.Venue{
		Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
		Phone: "123-123-1234", Genres: "Jazz,Reggae,Swing,Classical,Folk", Website: "https://www.themusicalhop.com",
		FacebookLink: "https://www.facebook.com/TheMusicalHop", SeekingTalent: true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		ImageLink:          "https://images.example.com/musical-hop.jpg",
	}
	DuelingPianos = model.Venue{
		Name: "The Dueling Pianos Bar", City: "New York", State: "NY", Address: "335 Delancey Street",
		Phone: "914-003-1132", Genres: "Classical,R&B,Hip-Hop", ImageLink: "https://images.example.com/pianos.jpg",
	}
	ParkSquare = model.Venue{
		Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", Address: "34 Whiskey Moore Ave",
		Phone: "415-000-1234", Genres: "Rock n Roll,Jazz,Classical,Folk", ImageLink: "https://images.example.com/park-square.jpg",
	}
	GunsNPetals = model.Artist{
		Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
		Genres: "Rock n Roll", ImageLink: "https://images.example.com/guns-n-petals.jpg",
	}
	MattQuevedo = model.Artist{
		Name: "Matt Quevedo", City: "New York", State: "NY", Phone: "300-400-5000",
		Genres: "Jazz", ImageLink: "https://images.example.com/matt-quevedo.jpg",
	}
)
