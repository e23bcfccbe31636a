package web

import (
	"fmt"
	"net/http"
	"strings"

	"fyyur/internal/forms"
)

func (s *Server) listArtists(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Artists.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "An error occurred. Artists could not be loaded.")
		return
	}
	s.render(w, r, http.StatusOK, "pages/artists", view{Data: list})
}

func (s *Server) searchArtists(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	term := strings.TrimSpace(r.PostForm.Get("search_term"))

	result, err := s.deps.Artists.Search(r.Context(), term)
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
		Action:     "/artists",
	})
}

func (s *Server) showArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	detail, err := s.deps.Artists.Detail(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "An error occurred. Artist could not be loaded.")
		return
	}
	s.render(w, r, http.StatusOK, "pages/show_artist", view{Data: detail, ID: id})
}

func (s *Server) newArtist(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forms/artist", view{
		Form:    forms.ArtistForm{},
		Action:  "/artists/create",
		Heading: "List a new artist",
	})
}

func (s *Server) createArtist(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	form, errs := forms.ParseArtist(r.PostForm)
	if errs != nil {
		s.render(w, r, http.StatusBadRequest, "forms/artist", view{
			Form:    form,
			Errors:  errs,
			Action:  "/artists/create",
			Heading: "List a new artist",
		})
		return
	}

	artist := form.Artist()
	if _, err := s.deps.Artists.Create(r.Context(), &artist); err != nil {
		s.fail(w, r, err, fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
		return
	}

	s.render(w, r, http.StatusOK, "pages/home", view{
		Flashes: []string{fmt.Sprintf("Artist %s was successfully listed!", form.Name)},
	})
}

func (s *Server) editArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	artist, err := s.deps.Artists.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "An error occurred. Artist could not be loaded.")
		return
	}

	s.render(w, r, http.StatusOK, "forms/artist", view{
		Form:    forms.FromArtist(*artist),
		Action:  fmt.Sprintf("/artists/%d/edit", id),
		Heading: "Edit artist " + artist.Name,
		ID:      id,
	})
}

func (s *Server) updateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	if !s.parseForm(w, r) {
		return
	}

	form, errs := forms.ParseArtist(r.PostForm)
	if errs != nil {
		s.render(w, r, http.StatusBadRequest, "forms/artist", view{
			Form:    form,
			Errors:  errs,
			Action:  fmt.Sprintf("/artists/%d/edit", id),
			Heading: "Edit artist",
			ID:      id,
		})
		return
	}

	artist := form.Artist()
	if _, err := s.deps.Artists.Update(r.Context(), id, &artist); err != nil {
		s.fail(w, r, err, fmt.Sprintf("An error occurred. Artist %s could not be updated.", form.Name))
		return
	}

	s.redirect(w, r, fmt.Sprintf("/artists/%d", id), fmt.Sprintf("Artist %s was successfully updated!", form.Name))
}
