package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/testutil"
)

func TestShowRepo_CreateAndPartition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()
	venueID := testutil.InsertVenue(t, db, testutil.MusicalHop)
	artistID := testutil.InsertArtist(t, db, testutil.GunsNPetals)

	repo := NewShowRepo(db)
	future := now.Add(72 * time.Hour)
	for _, start := range []time.Time{future, now.Add(-72 * time.Hour)} {
		s := &model.Show{
			VenueID: venueID, VenueName: testutil.MusicalHop.Name, VenueImageLink: testutil.MusicalHop.ImageLink,
			ArtistID: artistID, ArtistName: testutil.GunsNPetals.Name, ArtistImageLink: testutil.GunsNPetals.ImageLink,
			StartTime: start,
		}
		require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error { return repo.CreateTx(ctx, tx, s) }))
		require.NotZero(t, s.ID)
	}

	shows, err := repo.ListByVenue(ctx, venueID)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.True(t, shows[0].StartTime.Before(shows[1].StartTime))

	sched := model.Partition(shows, now)
	assert.Equal(t, 1, sched.PastCount())
	assert.Equal(t, 1, sched.UpcomingCount())
	assert.True(t, sched.Upcoming[0].StartTime.Equal(future.Truncate(time.Second)))

	got, err := repo.getByID(ctx, sched.Upcoming[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Guns N Petals", got.ArtistName)
	assert.Equal(t, time.UTC, got.StartTime.Location())
}

func TestShowRepo_ListAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	venue := testutil.InsertVenue(t, db, testutil.MusicalHop)
	artist := testutil.InsertArtist(t, db, testutil.GunsNPetals)
	late := testutil.InsertShow(t, db, venue, artist, time.Now().Add(5*time.Hour))
	early := testutil.InsertShow(t, db, venue, artist, time.Now().Add(-5*time.Hour))

	shows, err := NewShowRepo(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, early, shows[0].ID)
	assert.Equal(t, late, shows[1].ID)
}

func TestShowRepo_GetMissing(t *testing.T) {
	_, err := NewShowRepo(testutil.SetupTestDB(t)).getByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		v := testutil.MusicalHop
		if err := NewVenueRepo(db).CreateTx(ctx, tx, &v); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, testutil.CountRows(t, db, "venues", ""))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%Hop%", likePattern("  Hop "))
	assert.Equal(t, "%Élysée%", likePattern("Élysée"))
	assert.Equal(t, "%100!%!_!!%", likePattern("100%_!"))
}
