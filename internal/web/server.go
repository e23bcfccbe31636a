// Package web serves the listing pages: it parses requests, calls the
// services and renders html/template pages, with JSON for search requests
// that ask for it.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/forms"
	"fyyur/internal/http/middleware"
	"fyyur/internal/metrics"
	"fyyur/internal/store"
	"fyyur/internal/validation"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the handlers need. Venues, Artists, Shows and
// SessionSecret are required.
type Deps struct {
	Venues  venues.Service
	Artists artists.Service
	Shows   shows.Service
	Health  Pinger

	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	// Limiter throttles submissions when set.
	Limiter           middleware.Limiter
	RateLimitCapacity int

	SessionSecret string
	Now           func() time.Time
}

// Server holds the handlers and their dependencies.
type Server struct {
	deps     Deps
	renderer *Renderer
	flash    *Flasher
	now      func() time.Time
}

func New(deps Deps) (*Server, error) {
	if deps.Venues == nil || deps.Artists == nil || deps.Shows == nil {
		return nil, fmt.Errorf("web: venue, artist and show services are required")
	}
	if deps.SessionSecret == "" {
		return nil, fmt.Errorf("web: session secret is required")
	}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Server{
		deps:     deps,
		renderer: renderer,
		flash:    NewFlasher(deps.SessionSecret),
		now:      now,
	}, nil
}

// Routes returns the routed handler wrapped in the middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.home)

	mux.HandleFunc("GET /venues", s.listVenues)
	mux.HandleFunc("POST /venues/search", s.searchVenues)
	mux.HandleFunc("GET /venues/create", s.newVenue)
	mux.HandleFunc("POST /venues/create", s.createVenue)
	mux.HandleFunc("GET /venues/{id}", s.showVenue)
	mux.HandleFunc("POST /venues/{id}", s.deleteVenue)
	mux.HandleFunc("POST /venues/{id}/delete", s.deleteVenue)
	mux.HandleFunc("DELETE /venues/{id}", s.deleteVenueJSON)
	mux.HandleFunc("GET /venues/{id}/edit", s.editVenue)
	mux.HandleFunc("POST /venues/{id}/edit", s.updateVenue)

	mux.HandleFunc("GET /artists", s.listArtists)
	mux.HandleFunc("POST /artists/search", s.searchArtists)
	mux.HandleFunc("GET /artists/create", s.newArtist)
	mux.HandleFunc("POST /artists/create", s.createArtist)
	mux.HandleFunc("GET /artists/{id}", s.showArtist)
	mux.HandleFunc("GET /artists/{id}/edit", s.editArtist)
	mux.HandleFunc("POST /artists/{id}/edit", s.updateArtist)

	mux.HandleFunc("GET /shows", s.listShows)
	mux.HandleFunc("GET /shows/create", s.newShow)
	mux.HandleFunc("POST /shows/create", s.createShow)

	mux.Handle("GET /static/", staticHandler())
	mux.HandleFunc("GET /healthz", s.healthz)
	if s.deps.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("/", s.notFound)

	var h http.Handler = mux
	h = middleware.RateLimit(s.deps.Limiter, s.deps.RateLimitCapacity, s.deps.Metrics)(h)
	h = middleware.Metrics(s.deps.Metrics)(h)
	h = middleware.Recovery(http.HandlerFunc(s.internalError))(h)
	h = middleware.RequestLogging(s.deps.Logger)(h)
	return h
}

// view is the payload every template receives.
type view struct {
	Flashes    []string
	Data       any
	SearchTerm string

	Form    any
	Errors  forms.Errors
	Action  string
	Heading string
	ID      int64
	States  []string
	Genres  []string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	v.Flashes = append(s.flash.Pop(w, r), v.Flashes...)
	v.States = validation.States
	v.Genres = validation.Genres

	if err := s.renderer.Render(w, status, name, v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "pages/home", view{})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "errors/404", view{})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusInternalServerError, "errors/500", view{})
}

// fail answers a service error: not-found ids get the 404 page, everything
// else is logged and answered with the 500 page carrying msg.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	kind := store.KindOf(err)
	if kind == store.KindNotFound {
		s.notFound(w, r)
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Str("kind", kind.String()).Msg("request failed")
	s.render(w, r, http.StatusInternalServerError, "errors/500", view{Flashes: []string{msg}})
}

// redirect stores msg for the next page and sends the browser to location.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, location, msg string) {
	if err := s.flash.Set(w, msg); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("set flash")
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.deps.Health.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// pathID reads the {id} wildcard. Anything but a positive integer is reported
// as not found.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseForm reads the submitted body. A malformed body is a client error.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return false
	}
	return true
}
