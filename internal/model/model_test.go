package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{}, SplitGenres(""))
	assert.Equal(t, []string{"Jazz"}, SplitGenres("Jazz"))
	assert.Equal(t, []string{"Jazz", "Reggae", "Swing"}, SplitGenres("Jazz, Reggae,,Swing "))
}

func TestJoinGenres(t *testing.T) {
	assert.Equal(t, "", JoinGenres(nil))
	assert.Equal(t, "Jazz,Folk", JoinGenres([]string{" Jazz", "", "Folk"}))
	assert.Equal(t, []string{"Rock n Roll", "R&B"}, SplitGenres(JoinGenres([]string{"Rock n Roll", "R&B"})))
}

func TestPartition(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	past := Show{ID: 1, StartTime: now.Add(-time.Hour)}
	exact := Show{ID: 2, StartTime: now}
	future := Show{ID: 3, StartTime: now.Add(24 * time.Hour)}

	s := Partition([]Show{future, past, exact}, now)
	assert.Equal(t, 1, s.PastCount())
	assert.Equal(t, 2, s.UpcomingCount())
	assert.Equal(t, uint64(1), s.Past[0].ID)
	assert.Equal(t, []uint64{3, 2}, []uint64{s.Upcoming[0].ID, s.Upcoming[1].ID})
}

func TestGroupByArea(t *testing.T) {
	areas := GroupByArea([]VenueSummary{
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA"},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", NumUpcomingShows: 1},
	})
	if assert.Len(t, areas, 2) {
		assert.Equal(t, "San Francisco", areas[0].City)
		assert.Len(t, areas[0].Venues, 2)
		assert.Equal(t, 1, areas[0].Venues[1].NumUpcomingShows)
		assert.Equal(t, "NY", areas[1].State)
	}
}

func TestVenueGenreList(t *testing.T) {
	v := Venue{Genres: "Jazz,Classical"}
	assert.Equal(t, []string{"Jazz", "Classical"}, v.GenreList())
}
