package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/testutil"
)

func TestVenueRepo_CreateThenGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewVenueRepo(db)
	ctx := context.Background()

	v := testutil.MusicalHop
	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error { return repo.CreateTx(ctx, tx, &v) }))
	require.NotZero(t, v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, *got)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"}, got.GenreList())
}

func TestVenueRepo_GetMissing(t *testing.T) {
	repo := NewVenueRepo(testutil.SetupTestDB(t))
	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVenueRepo_ListSummariesCountsOnlyUpcoming(t *testing.T) {
	db := testutil.SetupTestDB(t)
	now := time.Now().UTC()
	hop := testutil.InsertVenue(t, db, testutil.MusicalHop)
	pianos := testutil.InsertVenue(t, db, testutil.DuelingPianos)
	park := testutil.InsertVenue(t, db, testutil.ParkSquare)
	artist := testutil.InsertArtist(t, db, testutil.GunsNPetals)
	testutil.InsertShow(t, db, park, artist, now.Add(48*time.Hour))
	testutil.InsertShow(t, db, park, artist, now.Add(-48*time.Hour))
	testutil.InsertShow(t, db, hop, artist, now.Add(-24*time.Hour))

	got, err := NewVenueRepo(db).ListSummaries(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 3)

	counts := map[uint64]int{}
	for _, s := range got {
		counts[s.ID] = s.NumUpcomingShows
	}
	assert.Equal(t, map[uint64]int{hop: 0, pianos: 0, park: 1}, counts)

	// ordered by state, city, name
	assert.Equal(t, "CA", got[0].State)
	assert.Equal(t, "Park Square Live Music & Coffee", got[0].Name)
	assert.Equal(t, "The Musical Hop", got[1].Name)
	assert.Equal(t, "NY", got[2].State)

	areas := model.GroupByArea(got)
	assert.Len(t, areas, 2)
}

func TestVenueRepo_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.InsertVenue(t, db, testutil.MusicalHop)
	testutil.InsertVenue(t, db, testutil.DuelingPianos)
	testutil.InsertVenue(t, db, testutil.ParkSquare)
	repo := NewVenueRepo(db)
	ctx := context.Background()

	names := func(term string) []string {
		res, err := repo.Search(ctx, term, time.Now())
		require.NoError(t, err)
		out := []string{}
		for _, r := range res {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"The Musical Hop"}, names("Hop"))
	assert.Equal(t, []string{"Park Square Live Music & Coffee", "The Musical Hop"}, names("Music"))
	assert.Equal(t, []string{"Park Square Live Music & Coffee", "The Musical Hop"}, names("mUSIC"))
	assert.Len(t, names(""), 3)
	assert.Empty(t, names("%"))
	assert.Empty(t, names("Hop_"))
}

func TestVenueRepo_SearchNonASCIIName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cafe := testutil.MusicalHop
	cafe.Name = "Café Élysée"
	testutil.InsertVenue(t, db, cafe)
	testutil.InsertVenue(t, db, testutil.DuelingPianos)
	repo := NewVenueRepo(db)
	ctx := context.Background()

	for _, term := range []string{"Élysée", "Café Élysée", "é É", "CAFé"} {
		res, err := repo.Search(ctx, term, time.Now())
		require.NoError(t, err, term)
		require.Len(t, res, 1, term)
		assert.Equal(t, "Café Élysée", res[0].Name, term)
	}
}

func TestVenueRepo_UpdateResyncsShows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	venueID := testutil.InsertVenue(t, db, testutil.MusicalHop)
	otherID := testutil.InsertVenue(t, db, testutil.DuelingPianos)
	artist := testutil.InsertArtist(t, db, testutil.GunsNPetals)
	testutil.InsertShow(t, db, venueID, artist, time.Now().Add(time.Hour))
	testutil.InsertShow(t, db, venueID, artist, time.Now().Add(-time.Hour))
	testutil.InsertShow(t, db, otherID, artist, time.Now().Add(time.Hour))

	repo := NewVenueRepo(db)
	v, err := repo.GetByID(ctx, venueID)
	require.NoError(t, err)
	v.Name = "The Musical Hop's \"New\" Stage"
	v.ImageLink = "https://images.example.com/new.jpg"
	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error { return repo.UpdateTx(ctx, tx, v) }))

	shows, err := NewShowRepo(db).ListByVenue(ctx, venueID)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	for _, s := range shows {
		assert.Equal(t, v.Name, s.VenueName)
		assert.Equal(t, v.ImageLink, s.VenueImageLink)
	}

	others, err := NewShowRepo(db).ListByVenue(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, testutil.DuelingPianos.Name, others[0].VenueName)
}

func TestVenueRepo_UpdateMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewVenueRepo(db)
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		return repo.UpdateTx(ctx, tx, &model.Venue{ID: 7, Name: "Ghost"})
	})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueRepo_DeleteCascadesToShows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	venueID := testutil.InsertVenue(t, db, testutil.MusicalHop)
	keep := testutil.InsertVenue(t, db, testutil.ParkSquare)
	artist := testutil.InsertArtist(t, db, testutil.GunsNPetals)
	testutil.InsertShow(t, db, venueID, artist, time.Now().Add(time.Hour))
	testutil.InsertShow(t, db, venueID, artist, time.Now().Add(-time.Hour))
	testutil.InsertShow(t, db, keep, artist, time.Now().Add(time.Hour))

	repo := NewVenueRepo(db)
	var deleted *model.Venue
	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error {
		var err error
		deleted, err = repo.DeleteTx(ctx, tx, venueID)
		return err
	}))
	assert.Equal(t, "The Musical Hop", deleted.Name)
	assert.Equal(t, 0, testutil.CountRows(t, db, "shows", "venue_id = ?", venueID))
	assert.Equal(t, 1, testutil.CountRows(t, db, "shows", ""))
	_, err := repo.GetByID(ctx, venueID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueRepo_ChoicesAndRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	testutil.InsertVenue(t, db, testutil.MusicalHop)
	testutil.InsertVenue(t, db, testutil.DuelingPianos)
	testutil.InsertVenue(t, db, testutil.ParkSquare)
	repo := NewVenueRepo(db)

	choices, err := repo.Choices(ctx)
	require.NoError(t, err)
	require.Len(t, choices, 3)
	assert.Equal(t, "Park Square Live Music & Coffee", choices[0].Name)

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Park Square Live Music & Coffee", recent[0].Name)
	assert.Equal(t, "The Dueling Pianos Bar", recent[1].Name)
}
