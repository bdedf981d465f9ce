// Package repository contains data access logic for Show domain operations.
// A Show links an artist to a venue at a start time and carries copies of
// the venue and artist names and images, written at creation time and kept
// current by VenueRepo.UpdateTx and ArtistRepo.UpdateTx.
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

var showColumns = []string{
	"id", "venue_id", "venue_name", "venue_image_link",
	"artist_id", "artist_name", "artist_image_link", "start_time",
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

func scanShow(row rowScanner) (model.Show, error) {
	var s model.Show
	err := row.Scan(&s.ID, &s.VenueID, &s.VenueName, &s.VenueImageLink,
		&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime)
	s.StartTime = s.StartTime.UTC()
	return s, err
}

// CreateTx inserts a show using the provided transaction.  The caller is
// responsible for filling the denormalized venue and artist fields; the
// start time is stored in UTC with second precision.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	s.StartTime = s.StartTime.UTC().Truncate(time.Second)
	query, args, err := psql.Insert("shows").
		Columns("venue_id", "venue_name", "venue_image_link", "artist_id", "artist_name", "artist_image_link", "start_time").
		Values(s.VenueID, s.VenueName, s.VenueImageLink, s.ArtistID, s.ArtistName, s.ArtistImageLink, s.StartTime).
		ToSql()
	if err != nil {
		return fmt.Errorf("build show insert: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// getByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) getByID(ctx context.Context, id uint64) (*model.Show, error) {
	query, args, err := psql.Select(showColumns...).From("shows").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	s, err := scanShow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all shows ordered by start time.
func (r *ShowRepo) List(ctx context.Context) ([]model.Show, error) {
	return r.list(ctx, nil)
}

// ListByVenue returns the shows of one venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Show, error) {
	return r.list(ctx, sq.Eq{"venue_id": venueID})
}

// ListByArtist returns the shows of one artist ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.Show, error) {
	return r.list(ctx, sq.Eq{"artist_id": artistID})
}

func (r *ShowRepo) list(ctx context.Context, where sq.Sqlizer) ([]model.Show, error) {
	b := psql.Select(showColumns...).From("shows").OrderBy("start_time ASC", "id ASC")
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build show list: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Show{}
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
