package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// VenueForm is the venue create/edit form as submitted by the browser.
type VenueForm struct {
	Name               string   `form:"name"`
	City               string   `form:"city"`
	State              string   `form:"state"`
	Address            string   `form:"address"`
	Phone              string   `form:"phone"`
	ImageLink          string   `form:"image_link"`
	FacebookLink       string   `form:"facebook_link"`
	Genres             []string `form:"genres"`
	Website            string   `form:"website"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

func (f VenueForm) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", repository.ErrInvalid)
	}
	return nil
}

// Venue converts the form.  Only the value "1" turns seeking_talent on.
func (f VenueForm) Venue() model.Venue {
	return model.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              strings.TrimSpace(f.State),
		Address:            strings.TrimSpace(f.Address),
		Phone:              strings.TrimSpace(f.Phone),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		Genres:             model.JoinGenres(f.Genres),
		Website:            strings.TrimSpace(f.Website),
		SeekingTalent:      f.SeekingTalent == "1",
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
	}
}

func venueForm(v *model.Venue) VenueForm {
	f := VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Genres:             v.GenreList(),
		Website:            v.Website,
		SeekingDescription: v.SeekingDescription,
	}
	if v.SeekingTalent {
		f.SeekingTalent = "1"
	}
	return f
}

// ArtistForm is the artist create/edit form.
type ArtistForm struct {
	Name         string   `form:"name"`
	City         string   `form:"city"`
	State        string   `form:"state"`
	Phone        string   `form:"phone"`
	ImageLink    string   `form:"image_link"`
	FacebookLink string   `form:"facebook_link"`
	Genres       []string `form:"genres"`
}

func (f ArtistForm) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", repository.ErrInvalid)
	}
	return nil
}

func (f ArtistForm) Artist() model.Artist {
	return model.Artist{
		Name:         strings.TrimSpace(f.Name),
		City:         strings.TrimSpace(f.City),
		State:        strings.TrimSpace(f.State),
		Phone:        strings.TrimSpace(f.Phone),
		ImageLink:    strings.TrimSpace(f.ImageLink),
		FacebookLink: strings.TrimSpace(f.FacebookLink),
		Genres:       model.JoinGenres(f.Genres),
	}
}

func artistForm(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name:         a.Name,
		City:         a.City,
		State:        a.State,
		Phone:        a.Phone,
		ImageLink:    a.ImageLink,
		FacebookLink: a.FacebookLink,
		Genres:       a.GenreList(),
	}
}

// ShowForm is the show creation form.  Ids arrive as strings so a bad value
// is reported through the flash instead of a bind error.
type ShowForm struct {
	ArtistID  string `form:"artist_id"`
	VenueID   string `form:"venue_id"`
	StartTime string `form:"start_time"`
}

// startTimeLayouts are tried in order: the stored text form, the HTML
// datetime-local input, then RFC 3339.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseStartTime reads s in loc and returns it in UTC.
func parseStartTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: start_time is required", repository.ErrInvalid)
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: start_time %q is not a date and time", repository.ErrInvalid, s)
}

func parseFormID(field, s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s is required", repository.ErrInvalid, field)
	}
	return id, nil
}

// parse validates the form and returns the ids and UTC start time.
func (f ShowForm) parse(loc *time.Location) (artistID, venueID uint64, start time.Time, err error) {
	if artistID, err = parseFormID("artist_id", f.ArtistID); err != nil {
		return
	}
	if venueID, err = parseFormID("venue_id", f.VenueID); err != nil {
		return
	}
	start, err = parseStartTime(f.StartTime, loc)
	return
}
