package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"fyyur/internal/forms"
	"fyyur/internal/store"
)

func (s *Server) listVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := s.deps.Venues.Areas(r.Context())
	if err != nil {
		s.fail(w, r, err, "An error occurred. Venues could not be loaded.")
		return
	}
	s.render(w, r, http.StatusOK, "pages/venues", view{Data: areas})
}

func (s *Server) searchVenues(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	term := strings.TrimSpace(r.PostForm.Get("search_term"))

	result, err := s.deps.Venues.Search(r.Context(), term)
	if err != nil {
		s.fail(w, r, err, "An error occurred. Search could not be completed.")
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.render(w, r, http.StatusOK, "pages/search", view{
		Data:       result,
		SearchTerm: term,
		Action:     "/venues",
	})
}

func (s *Server) showVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	detail, err := s.deps.Venues.Detail(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "An error occurred. Venue could not be loaded.")
		return
	}
	s.render(w, r, http.StatusOK, "pages/show_venue", view{Data: detail, ID: id})
}

func (s *Server) newVenue(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forms/venue", view{
		Form:    forms.VenueForm{},
		Action:  "/venues/create",
		Heading: "List a new venue",
	})
}

func (s *Server) createVenue(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	form, errs := forms.ParseVenue(r.PostForm)
	if errs != nil {
		s.render(w, r, http.StatusBadRequest, "forms/venue", view{
			Form:    form,
			Errors:  errs,
			Action:  "/venues/create",
			Heading: "List a new venue",
		})
		return
	}

	venue := form.Venue()
	if _, err := s.deps.Venues.Create(r.Context(), &venue); err != nil {
		s.fail(w, r, err, fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name))
		return
	}

	s.render(w, r, http.StatusOK, "pages/home", view{
		Flashes: []string{fmt.Sprintf("Venue %s was successfully listed!", form.Name)},
	})
}

func (s *Server) editVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	venue, err := s.deps.Venues.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "An error occurred. Venue could not be loaded.")
		return
	}

	s.render(w, r, http.StatusOK, "forms/venue", view{
		Form:    forms.FromVenue(*venue),
		Action:  fmt.Sprintf("/venues/%d/edit", id),
		Heading: "Edit venue " + venue.Name,
		ID:      id,
	})
}

func (s *Server) updateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	if !s.parseForm(w, r) {
		return
	}

	form, errs := forms.ParseVenue(r.PostForm)
	if errs != nil {
		s.render(w, r, http.StatusBadRequest, "forms/venue", view{
			Form:    form,
			Errors:  errs,
			Action:  fmt.Sprintf("/venues/%d/edit", id),
			Heading: "Edit venue",
			ID:      id,
		})
		return
	}

	venue := form.Venue()
	if _, err := s.deps.Venues.Update(r.Context(), id, &venue); err != nil {
		s.fail(w, r, err, fmt.Sprintf("An error occurred. Venue %s could not be updated.", form.Name))
		return
	}

	s.redirect(w, r, fmt.Sprintf("/venues/%d", id), fmt.Sprintf("Venue %s was successfully updated!", form.Name))
}

// deleteVenue handles the delete button on the venue page.
func (s *Server) deleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	venue, err := s.deps.Venues.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "An error occurred. Venue could not be deleted.")
		return
	}

	removed, err := s.deps.Venues.Delete(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, fmt.Sprintf("An error occurred. Venue %s could not be deleted.", venue.Name))
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("venue_id", id).Int64("shows_removed", removed).Msg("venue deleted")
	s.redirect(w, r, "/", fmt.Sprintf("Venue %s was successfully deleted.", venue.Name))
}

type deleteResult struct {
	Success      bool   `json:"success"`
	ShowsRemoved int64  `json:"shows_removed,omitempty"`
	Error        string `json:"error,omitempty"`
}

// deleteVenueJSON serves script clients issuing DELETE /venues/{id}.
func (s *Server) deleteVenueJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, deleteResult{Error: "venue not found"})
		return
	}

	removed, err := s.deps.Venues.Delete(r.Context(), id)
	if err != nil {
		if store.KindOf(err) == store.KindNotFound {
			writeJSON(w, http.StatusNotFound, deleteResult{Error: "venue not found"})
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("delete venue")
		writeJSON(w, http.StatusInternalServerError, deleteResult{Error: "venue could not be deleted"})
		return
	}

	writeJSON(w, http.StatusOK, deleteResult{Success: true, ShowsRemoved: removed})
}
