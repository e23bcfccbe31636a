package forms

import (
	"net/url"
	"slices"

	"fyyur/internal/models"
)

// ArtistForm is the artist create and edit form.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ParseArtist reads a submitted artist form.
func ParseArtist(values url.Values) (ArtistForm, Errors) {
	f := ArtistForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		Genres:             multi(values, "genres"),
		FacebookLink:       text(values, "facebook_link"),
		WebsiteLink:        text(values, "website_link"),
		SeekingVenue:       checked(values, "seeking_venue"),
		SeekingDescription: text(values, "seeking_description"),
	}
	return f, validate(f).orNil()
}

// FromArtist prefills the edit form.
func FromArtist(a models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             slices.Clone(a.Genres),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

// Artist builds the record the form describes.
func (f ArtistForm) Artist() models.Artist {
	return models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		ImageLink:          f.ImageLink,
		Genres:             slices.Clone(f.Genres),
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

func (f ArtistForm) HasGenre(genre string) bool {
	return slices.Contains(f.Genres, genre)
}
