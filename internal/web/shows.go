package web

import (
	"net/http"

	"fyyur/internal/forms"
)

func (s *Server) listShows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.deps.Shows.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "An error occurred. Shows could not be loaded.")
		return
	}
	s.render(w, r, http.StatusOK, "pages/shows", view{Data: rows})
}

func (s *Server) newShow(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forms/show", view{Form: forms.NewShowForm(s.now())})
}

func (s *Server) createShow(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	form, errs := forms.ParseShow(r.PostForm)
	if errs != nil {
		s.render(w, r, http.StatusBadRequest, "forms/show", view{Form: form, Errors: errs})
		return
	}

	show := form.Show()
	if _, err := s.deps.Shows.Create(r.Context(), &show); err != nil {
		s.fail(w, r, err, "An error occurred. Show could not be listed.")
		return
	}

	s.render(w, r, http.StatusOK, "pages/home", view{Flashes: []string{"Show was successfully listed!"}})
}
