package contract

import (
	"context"

	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
)

// PreferenceService manages channel setup, team preferences and alert
// configuration. Everything here is called from the slash-command layer.
type PreferenceService interface {
	SetupChannel(slackChannelID, channelName, teamID string) (*entity.Channel, error)
	SetTeam(channelID int64, slackUserID, league, teamKey string) error
	ListTeams(channelID int64, slackUserID string) ([]*entity.TeamPreference, error)
	ClearTeams(channelID int64, slackUserID, league string) error
	ConfigureAlerts(channelID int64, alertChannelID, alertTime string) error
	SetActiveLeagues(channelID int64, leagues []string) error
	GetChannelConfig(slackChannelID string) (*entity.Channel, error)
}

// AlertService runs the matchup detection pipeline for one channel and posts
// the resulting alerts.
type AlertService interface {
	// RunChannelAlerts returns how many alerts were posted. An individual
	// failed post is logged and skipped, not returned as an error.
	RunChannelAlerts(ctx context.Context, channel *entity.Channel) (int, error)
}
