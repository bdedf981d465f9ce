package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = "id, name, city, state, phone, genres, image_link, facebook_link"

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(row rowScanner) (*model.Artist, error) {
	var a model.Artist
	err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres, &a.ImageLink, &a.FacebookLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateTx inserts an artist using the caller's transaction and assigns the
// generated ID back to a.
func (r *ArtistRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink)
	if err != nil {
		return fmt.Errorf("insert artist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an artist.  It returns ErrArtistNotFound if no row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return scanArtist(r.db.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
}

func (r *ArtistRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Artist, error) {
	return scanArtist(tx.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
}

func artistSummaries(now time.Time) sq.SelectBuilder {
	return psql.Select("a.id", "a.name", "COUNT(s.id)").
		From("artists a").
		LeftJoin("shows s ON s.artist_id = a.id AND s.start_time >= ?", now.UTC()).
		GroupBy("a.id", "a.name")
}

func (r *ArtistRepo) querySummaries(ctx context.Context, b sq.SelectBuilder) ([]model.ArtistSummary, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build artist summary query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSummaries returns every artist with its upcoming show count, by name.
func (r *ArtistRepo) ListSummaries(ctx context.Context, now time.Time) ([]model.ArtistSummary, error) {
	return r.querySummaries(ctx, artistSummaries(now).OrderBy("a.name", "a.id"))
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error) {
	return r.querySummaries(ctx, artistSummaries(now).Where(nameLike("a.name", term)).OrderBy("a.name", "a.id"))
}

func (r *ArtistRepo) Choices(ctx context.Context) ([]model.Choice, error) {
	return choices(ctx, r.db, "artists")
}

func (r *ArtistRepo) Recent(ctx context.Context, limit uint64) ([]model.Choice, error) {
	return recent(ctx, r.db, "artists", limit)
}

// UpdateTx overwrites every column of a and rewrites the denormalized artist
// name and image on all of its shows, both inside tx.
func (r *ArtistRepo) UpdateTx(ctx context.Context, tx *sql.Tx, a *model.Artist) error {
	ok, err := exists(ctx, tx, "artists", a.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrArtistNotFound
	}
	const q = `UPDATE artists
               SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?, facebook_link = ?
               WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink, a.ID); err != nil {
		return fmt.Errorf("update artist %d: %w", a.ID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE shows SET artist_name = ?, artist_image_link = ? WHERE artist_id = ?`,
		a.Name, a.ImageLink, a.ID); err != nil {
		return fmt.Errorf("sync shows of artist %d: %w", a.ID, err)
	}
	return nil
}

// DeleteTx removes an artist and all of its shows inside tx.
func (r *ArtistRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Artist, error) {
	a, err := r.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete shows of artist %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete artist %d: %w", id, err)
	}
	return a, nil
}

// choices and recent are shared by the venue and artist repositories; table
// is always a package constant, never user input.
func choices(ctx context.Context, db *sql.DB, table string) ([]model.Choice, error) {
	return listChoices(ctx, db, psql.Select("id", "name").From(table).OrderBy("name", "id"))
}

func recent(ctx context.Context, db *sql.DB, table string, limit uint64) ([]model.Choice, error) {
	return listChoices(ctx, db, psql.Select("id", "name").From(table).OrderBy("id DESC").Limit(limit))
}

func listChoices(ctx context.Context, db *sql.DB, b sq.SelectBuilder) ([]model.Choice, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Choice{}
	for rows.Next() {
		var c model.Choice
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
