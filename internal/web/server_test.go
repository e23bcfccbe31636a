package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/listing"
	"fyyur/internal/metrics"
	"fyyur/internal/models"
	"fyyur/internal/store/memory"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	mem     *memory.Store
	handler http.Handler
	reg     *prometheus.Registry
}

func newTestEnv(t *testing.T, override func(*Deps)) *testEnv {
	t.Helper()

	mem := memory.New()
	engine := listing.New(func() time.Time { return testNow })
	reg := prometheus.NewRegistry()

	deps := Deps{
		Venues:        venues.New(mem, engine, nil),
		Artists:       artists.New(mem, engine, nil),
		Shows:         shows.New(mem, nil),
		Health:        mem,
		Logger:        zerolog.Nop(),
		Metrics:       metrics.New(reg),
		Gatherer:      reg,
		SessionSecret: "test-secret-0123456789",
		Now:           func() time.Time { return testNow },
	}
	if override != nil {
		override(&deps)
	}

	server, err := New(deps)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &testEnv{mem: mem, handler: server.Routes(), reg: reg}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) post(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func venueForm() url.Values {
	return url.Values{
		"name":                {"The Musical Hop"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae"},
		"facebook_link":       {"https://www.facebook.com/TheMusicalHop"},
		"website_link":        {"https://www.themusicalhop.com"},
		"seeking_talent":      {"y"},
		"seeking_description": {"We are on the lookout for a local artist."},
	}
}

func mustContain(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	if !strings.Contains(rr.Body.String(), want) {
		t.Fatalf("expected body to contain %q, got:\n%s", want, rr.Body.String())
	}
}

func TestHomePage(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.get("/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	mustContain(t, rr, "Post a venue")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestVenuesPageEmpty(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.get("/venues")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	mustContain(t, rr, "No venues have been listed yet.")
}

func TestCreateVenueThenDetail(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.post("/venues/create", venueForm())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	mustContain(t, rr, "Venue The Musical Hop was successfully listed!")

	detail := env.get("/venues/1")
	if detail.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", detail.Code)
	}
	for _, want := range []string{"The Musical Hop", "1015 Folsom Street", "123-123-1234", "Reggae", "Currently seeking talent", "0 Upcoming Shows"} {
		mustContain(t, detail, want)
	}

	page := env.get("/venues")
	mustContain(t, page, "San Francisco, CA")
	mustContain(t, page, `href="/venues/1"`)
}

func TestCreateVenueValidationError(t *testing.T) {
	env := newTestEnv(t, nil)

	form := venueForm()
	form.Set("state", "ZZ")
	form.Del("name")

	rr := env.post("/venues/create", form)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	mustContain(t, rr, "name is required")
	mustContain(t, rr, "state must be a US state code")
	mustContain(t, rr, "1015 Folsom Street")

	stored, _ := env.mem.ListVenues(context.Background())
	if len(stored) != 0 {
		t.Fatalf("expected no venue written, got %d", len(stored))
	}
}

type failingVenues struct {
	venues.Service
	err error
}

func (f failingVenues) Create(context.Context, *models.Venue) (*models.Venue, error) {
	return nil, f.err
}

func TestCreateVenuePersistenceFailure(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.Venues = failingVenues{err: errors.New("connection refused")}
	})

	rr := env.post("/venues/create", venueForm())
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	mustContain(t, rr, "An error occurred. Venue The Musical Hop could not be listed.")
	if strings.Contains(rr.Body.String(), "successfully") {
		t.Fatal("failure page must not claim success")
	}
}

func TestVenueNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{"/venues/99", "/venues/abc", "/venues/99/edit", "/artists/7"} {
		rr := env.get(path)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", path, rr.Code)
		}
		mustContain(t, rr, "Not Found")
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.get("/nowhere")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestSearchVenuesJSON(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	hop, _ := env.mem.CreateVenue(ctx, &models.Venue{Name: "The Musical Hop"})
	_, _ = env.mem.CreateVenue(ctx, &models.Venue{Name: "Park Square Live Music & Coffee"})
	_, _ = env.mem.CreateVenue(ctx, &models.Venue{Name: "The Dueling Pianos Bar"})
	artist, _ := env.mem.CreateArtist(ctx, &models.Artist{Name: "Guns N Petals"})
	_, _ = env.mem.CreateShow(ctx, &models.Show{VenueID: hop.ID, ArtistID: artist.ID, StartTime: testNow.Add(time.Hour)})

	req := httptest.NewRequest(http.MethodPost, "/venues/search", strings.NewReader("search_term=MUSIC"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rr := env.do(req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var payload listing.SearchResult
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 2 || len(payload.Data) != 2 {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	if payload.Data[1].Name != "The Musical Hop" || payload.Data[1].NumUpcomingShows != 1 {
		t.Fatalf("unexpected match: %#v", payload.Data[1])
	}
}

func TestSearchArtistsPage(t *testing.T) {
	env := newTestEnv(t, nil)
	_, _ = env.mem.CreateArtist(context.Background(), &models.Artist{Name: "The Wild Sax Band"})

	rr := env.post("/artists/search", url.Values{"search_term": {"band"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	mustContain(t, rr, `Number of search results for "band": 1`)
	mustContain(t, rr, `href="/artists/1"`)
}

func TestEditVenueRedirectsWithFlash(t *testing.T) {
	env := newTestEnv(t, nil)
	_, _ = env.mem.CreateVenue(context.Background(), &models.Venue{Name: "Old Name", City: "Austin", State: "TX"})

	edit := env.get("/venues/1/edit")
	if edit.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", edit.Code)
	}
	mustContain(t, edit, `value="Old Name"`)

	rr := env.post("/venues/1/edit", venueForm())
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/venues/1" {
		t.Fatalf("expected redirect to /venues/1, got %q", loc)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashCookie {
		t.Fatalf("expected flash cookie, got %#v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/venues/1", nil)
	req.AddCookie(cookies[0])
	next := env.do(req)
	mustContain(t, next, "Venue The Musical Hop was successfully updated!")

	got, _ := env.mem.GetVenue(context.Background(), 1)
	if got.Name != "The Musical Hop" || got.City != "San Francisco" {
		t.Fatalf("venue not overwritten: %#v", got)
	}
}

func TestDeleteVenueFormCascades(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	venue, _ := env.mem.CreateVenue(ctx, &models.Venue{Name: "The Musical Hop"})
	artist, _ := env.mem.CreateArtist(ctx, &models.Artist{Name: "Guns N Petals"})
	_, _ = env.mem.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: testNow})

	rr := env.post("/venues/1/delete", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}

	remaining, _ := env.mem.ListShows(ctx)
	if len(remaining) != 0 {
		t.Fatalf("expected shows removed with venue, got %d", len(remaining))
	}
	if rr := env.get("/venues/1"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected deleted venue to 404, got %d", rr.Code)
	}
}

func TestDeleteVenueJSON(t *testing.T) {
	env := newTestEnv(t, nil)
	_, _ = env.mem.CreateVenue(context.Background(), &models.Venue{Name: "The Musical Hop"})

	rr := env.do(httptest.NewRequest(http.MethodDelete, "/venues/1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["success"] != true {
		t.Fatalf("unexpected payload: %#v", payload)
	}

	again := env.do(httptest.NewRequest(http.MethodDelete, "/venues/1", nil))
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", again.Code)
	}
}

func TestArtistPages(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.post("/artists/create", url.Values{
		"name":   {"Guns N Petals"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Rock n Roll"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	mustContain(t, rr, "Artist Guns N Petals was successfully listed!")

	list := env.get("/artists")
	mustContain(t, list, "Guns N Petals")

	detail := env.get("/artists/1")
	if detail.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", detail.Code)
	}
	mustContain(t, detail, "Not currently seeking performance venues")

	bad := env.post("/artists/1/edit", url.Values{"name": {"x"}})
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", bad.Code)
	}
}

func TestCreateShow(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	_, _ = env.mem.CreateVenue(ctx, &models.Venue{Name: "The Musical Hop"})
	_, _ = env.mem.CreateArtist(ctx, &models.Artist{Name: "Guns N Petals"})

	form := env.get("/shows/create")
	mustContain(t, form, `value="2026-10-18 12:00:00"`)

	rr := env.post("/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"1"},
		"start_time": {"2019-05-21 21:30:00"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	mustContain(t, rr, "Show was successfully listed!")

	list := env.get("/shows")
	mustContain(t, list, "Tuesday May, 21, 2019 at 9:30PM")
	mustContain(t, list, "Guns N Petals")
}

func TestCreateShowUnknownVenue(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.post("/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"1"},
		"start_time": {"2019-05-21 21:30:00"},
	})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	mustContain(t, rr, "An error occurred. Show could not be listed.")
}

func TestCreateShowMalformed(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.post("/shows/create", url.Values{"artist_id": {"one"}, "venue_id": {"1"}, "start_time": {"soon"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	mustContain(t, rr, "artist_id must be a positive number")
}

type panickingArtists struct {
	artists.Service
}

func (panickingArtists) List(context.Context) ([]models.Artist, error) {
	panic("boom")
}

func TestPanicRendersErrorPage(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) { d.Artists = panickingArtists{} })

	rr := env.get("/artists")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	mustContain(t, rr, "Something went wrong")
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("down") }

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil)
	if rr := env.get("/healthz"); rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	down := newTestEnv(t, func(d *Deps) { d.Health = downPinger{} })
	if rr := down.get("/healthz"); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	env.get("/venues")

	rr := env.get("/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	mustContain(t, rr, `fyyur_http_requests_total{method="GET",route="GET /venues",status="200"} 1`)
}

func TestStaticStylesheet(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.get("/static/css/main.css")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	mustContain(t, rr, ".topnav")
}

func TestNewRequiresServices(t *testing.T) {
	if _, err := New(Deps{SessionSecret: "x"}); err == nil {
		t.Fatal("expected error without services")
	}
}
