package forms

import (
	"net/url"
	"strconv"
	"time"

	"fyyur/internal/models"
)

// ShowLayouts are the accepted start_time formats: the text input default
// and the datetime-local input.
var ShowLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02T15:04:05"}

// ShowForm keeps the raw submitted values for re-rendering.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required"`
	VenueID   string `form:"venue_id" validate:"required"`
	StartTime string `form:"start_time" validate:"required"`

	show models.Show
}

// NewShowForm returns an empty form whose start time defaults to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.UTC().Format(ShowLayouts[0])}
}

// ParseShow reads a submitted show form. IDs must be positive integers and the
// start time must match one of ShowLayouts; times are taken as UTC.
func ParseShow(values url.Values) (ShowForm, Errors) {
	f := ShowForm{
		ArtistID:  text(values, "artist_id"),
		VenueID:   text(values, "venue_id"),
		StartTime: text(values, "start_time"),
	}
	errs := validate(f)

	if !errs.Has("artist_id") {
		id, err := parseID(f.ArtistID)
		if err != nil {
			errs.Add("artist_id", "artist_id must be a positive number")
		}
		f.show.ArtistID = id
	}
	if !errs.Has("venue_id") {
		id, err := parseID(f.VenueID)
		if err != nil {
			errs.Add("venue_id", "venue_id must be a positive number")
		}
		f.show.VenueID = id
	}
	if !errs.Has("start_time") {
		start, ok := parseTime(f.StartTime)
		if !ok {
			errs.Add("start_time", "start_time must look like 2006-01-02 15:04:05")
		}
		f.show.StartTime = start
	}
	return f, errs.orNil()
}

// Show returns the parsed record. It is only meaningful after ParseShow
// reported no errors.
func (f ShowForm) Show() models.Show {
	return f.show
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

func parseTime(raw string) (time.Time, bool) {
	for _, layout := range ShowLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
