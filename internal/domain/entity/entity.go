package entity

import "time"

// Channel holds the per-Slack-channel bot configuration. A channel is the
// isolation boundary for followers, settings and alerts.
type Channel struct {
	ID               int64
	SlackChannelID   string
	SlackChannelName string
	SlackTeamID      string
	// AlertChannelID is the Slack channel alerts are posted to. Empty means
	// alerting has not been configured and the sweeper skips this channel.
	AlertChannelID string
	// AlertTime is the daily alert time in "HH:MM" 24-hour form, interpreted
	// in the scheduler's local clock.
	AlertTime string
	// ActiveLeagues is the set of league codes to fetch schedules for.
	// Empty means all supported leagues.
	ActiveLeagues []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AlertsConfigured reports whether the channel has an alert destination set.
func (c *Channel) AlertsConfigured() bool {
	return c.AlertChannelID != ""
}

// TeamPreference is one user's favorite team for one league within one
// channel. A user has at most one team per league per channel; setting a new
// one overwrites the old.
type TeamPreference struct {
	ID          int64
	ChannelID   int64
	SlackUserID string
	League      string
	TeamKey     string
	CreatedAt   time.Time
}

// Game is one scheduled contest as returned by the schedule provider.
// Games are fetched fresh on every sweep and never persisted.
type Game struct {
	ID        string
	League    string
	HomeTeam  string
	AwayTeam  string
	StartTime time.Time
	// Broadcast is optional display text; empty when the provider has no
	// listing.
	Broadcast string
}

// Matchup is a game where both teams are followed by at least one user in
// the same channel. Follower slices are sorted and never empty.
type Matchup struct {
	Game          Game
	HomeFollowers []string
	AwayFollowers []string
}
