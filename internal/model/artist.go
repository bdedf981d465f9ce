package model

// Artist is a performer who plays shows.  This struct corresponds to a row
// in the `artists` table.
type Artist struct {
	ID           uint64 // artists.id
	Name         string // artists.name
	City         string // artists.city
	State        string // artists.state
	Phone        string // artists.phone
	Genres       string // artists.genres
	ImageLink    string // artists.image_link
	FacebookLink string // artists.facebook_link
}

func (a Artist) GenreList() []string { return SplitGenres(a.Genres) }

// ArtistSummary is an artist row annotated with its number of upcoming shows.
type ArtistSummary struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}
