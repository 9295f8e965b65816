// Package sportsdata fetches game schedules from a TheSportsDB-compatible
// events API and normalizes them into entity.Game values.
package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json"

	eventsDayPath = "/1/eventsday.php"
	dateLayout    = "2006-01-02"

	// The free tier of the API throttles aggressively, so requests are
	// paced client-side.
	requestsPerSecond = 2
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// event mirrors the provider's JSON event record. Only the fields we
// normalize are declared.
type event struct {
	IDEvent      string `json:"idEvent"`
	StrHomeTeam  string `json:"strHomeTeam"`
	StrAwayTeam  string `json:"strAwayTeam"`
	StrTimestamp string `json:"strTimestamp"`
	DateEvent    string `json:"dateEvent"`
	StrTime      string `json:"strTime"`
	StrTVStation string `json:"strTVStation"`
	StrChannel   string `json:"strChannel"`
}

type eventsResponse struct {
	Events []event `json:"events"`
}

// FetchLeagueSchedule fetches the games for one league on one date. The
// league code must be one of the supported set; anything else is a
// configuration error.
func (c *Client) FetchLeagueSchedule(ctx context.Context, league string, date time.Time) ([]entity.Game, error) {
	if !domain.IsSupportedLeague(league) {
		return nil, fmt.Errorf("unsupported league: %s", league)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	params := url.Values{}
	params.Set("l", league)
	params.Set("d", date.Format(dateLayout))
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	requestURL := c.baseURL + eventsDayPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing events response: %w", err)
	}

	games := make([]entity.Game, 0, len(parsed.Events))
	for _, ev := range parsed.Events {
		game, ok := normalizeEvent(league, ev)
		if !ok {
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

// FetchSchedules fetches today's games for every requested league, plus
// tomorrow's when daysAhead >= 1. A failed fetch for one league/day is
// logged and contributes zero games, so one bad provider response never
// aborts a sweep.
func (c *Client) FetchSchedules(ctx context.Context, leagues []string, daysAhead int) []entity.Game {
	today := time.Now().UTC()
	dates := []time.Time{today}
	if daysAhead >= 1 {
		dates = append(dates, today.AddDate(0, 0, 1))
	}

	var games []entity.Game
	for _, league := range leagues {
		for _, date := range dates {
			dayGames, err := c.FetchLeagueSchedule(ctx, league, date)
			if err != nil {
				log.Printf("Failed to fetch %s schedule for %s: %v", league, date.Format(dateLayout), err)
				continue
			}
			games = append(games, dayGames...)
		}
	}

	return games
}

// normalizeEvent converts a raw provider record into a Game. Records
// without an event identity or team names are dropped.
func normalizeEvent(league string, ev event) (entity.Game, bool) {
	if ev.IDEvent == "" || ev.StrHomeTeam == "" || ev.StrAwayTeam == "" {
		return entity.Game{}, false
	}

	broadcast := ev.StrTVStation
	if broadcast == "" {
		broadcast = ev.StrChannel
	}

	return entity.Game{
		ID:        ev.IDEvent,
		League:    league,
		HomeTeam:  ev.StrHomeTeam,
		AwayTeam:  ev.StrAwayTeam,
		StartTime: parseStartTime(ev),
		Broadcast: broadcast,
	}, true
}

// parseStartTime prefers the provider's absolute timestamp and falls back
// to composing the date and time fields, assumed UTC. Returns the zero
// time when neither is usable.
func parseStartTime(ev event) time.Time {
	if ev.StrTimestamp != "" {
		if ts, err := time.Parse(time.RFC3339, ev.StrTimestamp); err == nil {
			return ts
		}
		if ts, err := time.Parse("2006-01-02T15:04:05", ev.StrTimestamp); err == nil {
			return ts.UTC()
		}
	}

	if ev.DateEvent == "" {
		return time.Time{}
	}

	eventTime := ev.StrTime
	if eventTime == "" {
		eventTime = "00:00:00"
	}

	ts, err := time.Parse("2006-01-02 15:04:05", ev.DateEvent+" "+eventTime)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

var _ contract.ScheduleProvider = (*Client)(nil)
