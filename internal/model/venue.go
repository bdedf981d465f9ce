package model

// Venue is a location hosting shows.  This struct corresponds to a row in
// the `venues` table; Genres holds the comma-joined column value.
type Venue struct {
	ID                 uint64 // venues.id
	Name               string // venues.name
	City               string // venues.city
	State              string // venues.state
	Address            string // venues.address
	Phone              string // venues.phone
	ImageLink          string // venues.image_link
	FacebookLink       string // venues.facebook_link
	Genres             string // venues.genres
	Website            string // venues.website
	SeekingTalent      bool   // venues.seeking_talent
	SeekingDescription string // venues.seeking_description
}

// GenreList splits the stored genres for display.
func (v Venue) GenreList() []string { return SplitGenres(v.Genres) }

// VenueSummary is a venue row annotated with its number of upcoming shows,
// as used by list and search pages.
type VenueSummary struct {
	ID               uint64
	Name             string
	City             string
	State            string
	NumUpcomingShows int
}

// Area groups the venues located in one city.
type Area struct {
	City   string
	State  string
	Venues []VenueSummary
}

// GroupByArea groups summaries by (city, state), keeping the order in which
// each area first appears.
func GroupByArea(venues []VenueSummary) []Area {
	type key struct{ city, state string }
	idx := make(map[key]int)
	var areas []Area
	for _, v := range venues {
		k := key{v.City, v.State}
		i, ok := idx[k]
		if !ok {
			i = len(areas)
			idx[k] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, v)
	}
	return areas
}
