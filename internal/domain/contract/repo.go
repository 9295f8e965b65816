package contract

import (
	"context"

	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Channel() ChannelRepo
	Preference() PreferenceRepo
}

// ChannelRepo defines the contract for the channel settings repository
type ChannelRepo interface {
	Create(channel *entity.Channel) error
	GetBySlackID(slackChannelID string) (*entity.Channel, error)
	GetByID(id int64) (*entity.Channel, error)
	Update(channel *entity.Channel) error
	// GetAlertConfigured returns every channel with an alert destination set.
	GetAlertConfigured() ([]*entity.Channel, error)
}

// PreferenceRepo defines the contract for the team preference repository
type PreferenceRepo interface {
	// Upsert inserts the preference or replaces the team for an existing
	// (channel, user, league) row.
	Upsert(pref *entity.TeamPreference) error
	ListByUser(channelID int64, slackUserID string) ([]*entity.TeamPreference, error)
	ListByChannel(channelID int64) ([]*entity.TeamPreference, error)
	// DeleteByUser removes the user's preference for one league, or all of
	// the user's preferences in the channel when league is empty.
	DeleteByUser(channelID int64, slackUserID, league string) error
}
