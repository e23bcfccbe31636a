package forms

import (
	"net/url"
	"slices"

	"fyyur/internal/models"
)

// VenueForm is the venue create and edit form.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ParseVenue reads a submitted venue form. The form is returned even when it
// is invalid so it can be rendered again with the errors.
func ParseVenue(values url.Values) (VenueForm, Errors) {
	f := VenueForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Address:            text(values, "address"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		Genres:             multi(values, "genres"),
		FacebookLink:       text(values, "facebook_link"),
		WebsiteLink:        text(values, "website_link"),
		SeekingTalent:      checked(values, "seeking_talent"),
		SeekingDescription: text(values, "seeking_description"),
	}
	return f, validate(f).orNil()
}

// FromVenue prefills the edit form.
func FromVenue(v models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             slices.Clone(v.Genres),
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// Venue builds the record the form describes.
func (f VenueForm) Venue() models.Venue {
	return models.Venue{
		Name:               f.Name,
		Address:            f.Address,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		ImageLink:          f.ImageLink,
		Genres:             slices.Clone(f.Genres),
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// HasGenre is used by templates to mark selected options.
func (f VenueForm) HasGenre(genre string) bool {
	return slices.Contains(f.Genres, genre)
}
