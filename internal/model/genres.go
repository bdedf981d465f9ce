package model

import "strings"

const genreSep = ","

// SplitGenres turns the stored comma-joined column into a list.  Items are
// trimmed and empty items dropped, so "" yields an empty list.
func SplitGenres(s string) []string {
	out := []string{}
	for _, g := range strings.Split(s, genreSep) {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// JoinGenres is the inverse of SplitGenres.
func JoinGenres(genres []string) string {
	clean := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			clean = append(clean, g)
		}
	}
	return strings.Join(clean, genreSep)
}

// Genres offered by the venue and artist forms.
var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk",
	"Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop",
	"Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Other",
}
