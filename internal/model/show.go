package model

import "time"

// Show links one artist to one venue at a start time.  The venue and artist
// name/image fields are denormalized copies and must be rewritten whenever
// the referenced venue or artist changes.
type Show struct {
	ID              uint64    // shows.id
	VenueID         uint64    // shows.venue_id
	VenueName       string    // shows.venue_name
	VenueImageLink  string    // shows.venue_image_link
	ArtistID        uint64    // shows.artist_id
	ArtistName      string    // shows.artist_name
	ArtistImageLink string    // shows.artist_image_link
	StartTime       time.Time // shows.start_time (UTC)
}

// Schedule is the past/upcoming split of the shows attached to one venue or
// artist.
type Schedule struct {
	Past     []Show
	Upcoming []Show
}

func (s Schedule) PastCount() int     { return len(s.Past) }
func (s Schedule) UpcomingCount() int { return len(s.Upcoming) }

// Partition splits shows around now: a show starting exactly at now counts
// as upcoming.  Input order is preserved within each half.
func Partition(shows []Show, now time.Time) Schedule {
	var s Schedule
	for _, sh := range shows {
		if sh.StartTime.Before(now) {
			s.Past = append(s.Past, sh)
		} else {
			s.Upcoming = append(s.Upcoming, sh)
		}
	}
	return s
}

// Choice is an (id, label) pair for form select inputs.
type Choice struct {
	ID   uint64
	Name string
}
