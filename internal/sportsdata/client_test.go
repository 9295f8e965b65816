package sportsdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProviderServer serves canned eventsday.php responses keyed by league
// and records every request it receives.
type fakeProviderServer struct {
	s *httptest.Server

	mu        sync.Mutex
	requests  []string
	responses map[string]string
	statuses  map[string]int
}

func newFakeProviderServer() *fakeProviderServer {
	f := &fakeProviderServer{
		responses: make(map[string]string),
		statuses:  make(map[string]int),
	}

	r := chi.NewRouter()
	r.Get("/1/eventsday.php", f.eventsDayHandler)
	f.s = httptest.NewServer(r)

	return f
}

func (f *fakeProviderServer) Close() {
	f.s.Close()
}

func (f *fakeProviderServer) URL() string {
	return f.s.URL
}

func (f *fakeProviderServer) setResponse(league, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[league] = body
}

func (f *fakeProviderServer) setStatus(league string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[league] = status
}

func (f *fakeProviderServer) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeProviderServer) eventsDayHandler(w http.ResponseWriter, r *http.Request) {
	league := r.URL.Query().Get("l")

	f.mu.Lock()
	f.requests = append(f.requests, league+":"+r.URL.Query().Get("d"))
	status, hasStatus := f.statuses[league]
	body, hasBody := f.responses[league]
	f.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}
	if !hasBody {
		body = `{"events": null}`
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func TestClient_FetchLeagueSchedule(t *testing.T) {
	f := newFakeProviderServer()
	defer f.Close()

	f.setResponse(domain.LeagueNHL, `{"events": [
		{
			"idEvent": "1032856",
			"strHomeTeam": "Boston Bruins",
			"strAwayTeam": "Toronto Maple Leafs",
			"strTimestamp": "2026-03-01T00:00:00",
			"dateEvent": "2026-02-28",
			"strTime": "19:00:00",
			"strTVStation": "ESPN"
		},
		{
			"idEvent": "1032857",
			"strHomeTeam": "Montreal Canadiens",
			"strAwayTeam": "Ottawa Senators",
			"dateEvent": "2026-02-28",
			"strTime": "19:30:00",
			"strChannel": "TSN"
		},
		{
			"idEvent": "",
			"strHomeTeam": "Ghost Team",
			"strAwayTeam": "No Identity"
		},
		{
			"idEvent": "1032858",
			"strHomeTeam": "Detroit Red Wings",
			"strAwayTeam": "Chicago Blackhawks",
			"dateEvent": "2026-02-28"
		}
	]}`)

	c := New(f.URL(), "")
	games, err := c.FetchLeagueSchedule(context.Background(), domain.LeagueNHL, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, games, 3, "Expected the record without an event id to be dropped")

	// strTimestamp wins over dateEvent+strTime
	assert.Equal(t, "1032856", games[0].ID)
	assert.Equal(t, domain.LeagueNHL, games[0].League)
	assert.Equal(t, "Boston Bruins", games[0].HomeTeam)
	assert.Equal(t, "Toronto Maple Leafs", games[0].AwayTeam)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), games[0].StartTime)
	assert.Equal(t, "ESPN", games[0].Broadcast)

	// No timestamp: composed from dateEvent + strTime, assumed UTC.
	// Broadcast falls back to strChannel.
	assert.Equal(t, time.Date(2026, 2, 28, 19, 30, 0, 0, time.UTC), games[1].StartTime)
	assert.Equal(t, "TSN", games[1].Broadcast)

	// No time at all: midnight UTC, no broadcast
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), games[2].StartTime)
	assert.Empty(t, games[2].Broadcast)
}

func TestClient_FetchLeagueSchedule_UnsupportedLeague(t *testing.T) {
	f := newFakeProviderServer()
	defer f.Close()

	c := New(f.URL(), "")
	_, err := c.FetchLeagueSchedule(context.Background(), "XFL", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported league")
	assert.Zero(t, f.requestCount(), "Unsupported league must be rejected before any request")
}

func TestClient_FetchLeagueSchedule_BadStatus(t *testing.T) {
	f := newFakeProviderServer()
	defer f.Close()

	f.setStatus(domain.LeagueNBA, http.StatusInternalServerError)

	c := New(f.URL(), "")
	_, err := c.FetchLeagueSchedule(context.Background(), domain.LeagueNBA, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}

func TestClient_FetchSchedules_FailureIsolation(t *testing.T) {
	f := newFakeProviderServer()
	defer f.Close()

	// NBA fetches blow up, NHL fetches succeed
	f.setStatus(domain.LeagueNBA, http.StatusServiceUnavailable)
	f.setResponse(domain.LeagueNHL, `{"events": [
		{
			"idEvent": "2001",
			"strHomeTeam": "Boston Bruins",
			"strAwayTeam": "Toronto Maple Leafs",
			"dateEvent": "2026-02-28",
			"strTime": "19:00:00"
		}
	]}`)

	c := New(f.URL(), "")
	games := c.FetchSchedules(context.Background(), []string{domain.LeagueNBA, domain.LeagueNHL}, 1)

	// NHL returns the same game for today and tomorrow; both windows are kept
	require.Len(t, games, 2, "NBA failures must not drop NHL games")
	for _, game := range games {
		assert.Equal(t, domain.LeagueNHL, game.League)
	}
}

func TestClient_FetchSchedules_DaysAhead(t *testing.T) {
	f := newFakeProviderServer()
	defer f.Close()

	c := New(f.URL(), "")

	c.FetchSchedules(context.Background(), []string{domain.LeagueNHL}, 0)
	assert.Equal(t, 1, f.requestCount(), "daysAhead=0 should only fetch today")

	c.FetchSchedules(context.Background(), []string{domain.LeagueNHL}, 1)
	assert.Equal(t, 3, f.requestCount(), "daysAhead=1 should fetch today and tomorrow")
}

func TestClient_FetchSchedules_MalformedBody(t *testing.T) {
	f := newFakeProviderServer()
	defer f.Close()

	f.setResponse(domain.LeagueMLB, `{"events": [ not json`)

	c := New(f.URL(), "")
	games := c.FetchSchedules(context.Background(), []string{domain.LeagueMLB}, 0)
	assert.Empty(t, games, "Malformed payload is treated as zero games")
}
