// Package repository contains data access logic separated from HTTP handlers.
// This file holds the venue queries: CRUD, the upcoming-show aggregates used
// by list and search pages, and the edit path that keeps the denormalized
// venue fields on shows in sync.
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

const venueColumns = "id, name, city, state, address, phone, image_link, facebook_link, genres, website, seeking_talent, seeking_description"

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var v model.Venue
	err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &v.Genres, &v.Website, &v.SeekingTalent, &v.SeekingDescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// CreateTx inserts a venue using the caller's transaction and assigns the
// generated ID back to v.
func (r *VenueRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, genres, website, seeking_talent, seeking_description)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Genres, v.Website, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue.  It returns ErrVenueNotFound if no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	return scanVenue(r.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
}

// GetByIDTx is GetByID inside the caller's transaction.
func (r *VenueRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Venue, error) {
	return scanVenue(tx.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
}

// summaries builds the venue + upcoming-show-count query.  The time filter
// sits in the join condition so venues without upcoming shows still appear
// with a count of zero.
func summaries(now time.Time) sq.SelectBuilder {
	return psql.Select("v.id", "v.name", "v.city", "v.state", "COUNT(s.id)").
		From("venues v").
		LeftJoin("shows s ON s.venue_id = v.id AND s.start_time >= ?", now.UTC()).
		GroupBy("v.id", "v.name", "v.city", "v.state")
}

func (r *VenueRepo) querySummaries(ctx context.Context, b sq.SelectBuilder) ([]model.VenueSummary, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build venue summary query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.VenueSummary{}
	for rows.Next() {
		var s model.VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSummaries returns every venue with its upcoming show count, ordered by
// state, city and name so callers can group them by area in one pass.
func (r *VenueRepo) ListSummaries(ctx context.Context, now time.Time) ([]model.VenueSummary, error) {
	return r.querySummaries(ctx, summaries(now).OrderBy("v.state", "v.city", "v.name", "v.id"))
}

// Search returns venues whose name contains term, ignoring case.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	return r.querySummaries(ctx, summaries(now).Where(nameLike("v.name", term)).OrderBy("v.name", "v.id"))
}

// Choices lists (id, name) pairs for the show form.
func (r *VenueRepo) Choices(ctx context.Context) ([]model.Choice, error) {
	return choices(ctx, r.db, "venues")
}

// Recent returns the most recently listed venues, newest first.
func (r *VenueRepo) Recent(ctx context.Context, limit uint64) ([]model.Choice, error) {
	return recent(ctx, r.db, "venues", limit)
}

// UpdateTx overwrites every column of v and rewrites the denormalized venue
// name and image on all of its shows, both inside tx.  It returns
// ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) UpdateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
	ok, err := exists(ctx, tx, "venues", v.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVenueNotFound
	}
	const q = `UPDATE venues
               SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?,
                   genres = ?, website = ?, seeking_talent = ?, seeking_description = ?
               WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Genres, v.Website, v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
		return fmt.Errorf("update venue %d: %w", v.ID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE shows SET venue_name = ?, venue_image_link = ? WHERE venue_id = ?`,
		v.Name, v.ImageLink, v.ID); err != nil {
		return fmt.Errorf("sync shows of venue %d: %w", v.ID, err)
	}
	return nil
}

// DeleteTx removes a venue and all of its shows inside tx.  The shows are
// deleted explicitly so the cascade holds even where the store does not
// enforce foreign keys.
func (r *VenueRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Venue, error) {
	v, err := r.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete shows of venue %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete venue %d: %w", id, err)
	}
	return v, nil
}
