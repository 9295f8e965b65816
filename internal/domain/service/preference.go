package service

import (
	"fmt"
	"strings"

	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
)

type preferenceService struct {
	dm contract.DataManager
}

func newPreference(dm contract.DataManager) *preferenceService {
	return &preferenceService{dm: dm}
}

// SetupChannel returns the channel's config, creating it with defaults the
// first time the bot is used in a channel.
func (s *preferenceService) SetupChannel(slackChannelID, channelName, teamID string) (*entity.Channel, error) {
	channel, err := s.dm.Channel().GetBySlackID(slackChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to check channel: %w", err)
	}

	if channel != nil {
		return channel, nil
	}

	channel = &entity.Channel{
		SlackChannelID:   slackChannelID,
		SlackChannelName: channelName,
		SlackTeamID:      teamID,
		AlertTime:        domain.DefaultAlertTime,
	}

	if err := s.dm.Channel().Create(channel); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	return channel, nil
}

func (s *preferenceService) SetTeam(channelID int64, slackUserID, league, teamKey string) error {
	league = domain.NormalizeLeague(league)
	if !domain.IsSupportedLeague(league) {
		return fmt.Errorf("unsupported league %q, supported leagues: %s",
			league, strings.Join(domain.SupportedLeagues, ", "))
	}

	teamKey = strings.TrimSpace(teamKey)
	if teamKey == "" {
		return fmt.Errorf("team name cannot be empty")
	}

	pref := &entity.TeamPreference{
		ChannelID:   channelID,
		SlackUserID: slackUserID,
		League:      league,
		TeamKey:     teamKey,
	}

	if err := s.dm.Preference().Upsert(pref); err != nil {
		return fmt.Errorf("failed to save team preference: %w", err)
	}

	return nil
}

func (s *preferenceService) ListTeams(channelID int64, slackUserID string) ([]*entity.TeamPreference, error) {
	prefs, err := s.dm.Preference().ListByUser(channelID, slackUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return prefs, nil
}

// ClearTeams removes the user's preference for one league, or all of their
// preferences in the channel when league is empty.
func (s *preferenceService) ClearTeams(channelID int64, slackUserID, league string) error {
	if league != "" {
		league = domain.NormalizeLeague(league)
		if !domain.IsSupportedLeague(league) {
			return fmt.Errorf("unsupported league %q, supported leagues: %s",
				league, strings.Join(domain.SupportedLeagues, ", "))
		}
	}

	if err := s.dm.Preference().DeleteByUser(channelID, slackUserID, league); err != nil {
		return fmt.Errorf("failed to clear teams: %w", err)
	}

	return nil
}

// ConfigureAlerts sets the alert destination and daily alert time for a
// channel. The time format is validated here so the sweep loop never sees a
// malformed value.
func (s *preferenceService) ConfigureAlerts(channelID int64, alertChannelID, alertTime string) error {
	if alertChannelID == "" {
		return fmt.Errorf("alert channel is required")
	}
	if err := domain.ValidateAlertTime(alertTime); err != nil {
		return err
	}

	channel, err := s.dm.Channel().GetByID(channelID)
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}
	if channel == nil {
		return fmt.Errorf("channel not found")
	}

	channel.AlertChannelID = alertChannelID
	channel.AlertTime = alertTime

	if err := s.dm.Channel().Update(channel); err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}

	return nil
}

// SetActiveLeagues restricts which leagues are swept for a channel. An
// empty list means all supported leagues.
func (s *preferenceService) SetActiveLeagues(channelID int64, leagues []string) error {
	normalized := make([]string, 0, len(leagues))
	for _, league := range leagues {
		league = domain.NormalizeLeague(league)
		if league == "" {
			continue
		}
		if !domain.IsSupportedLeague(league) {
			return fmt.Errorf("unsupported league %q, supported leagues: %s",
				league, strings.Join(domain.SupportedLeagues, ", "))
		}
		normalized = append(normalized, league)
	}

	channel, err := s.dm.Channel().GetByID(channelID)
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}
	if channel == nil {
		return fmt.Errorf("channel not found")
	}

	channel.ActiveLeagues = normalized

	if err := s.dm.Channel().Update(channel); err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}

	return nil
}

func (s *preferenceService) GetChannelConfig(slackChannelID string) (*entity.Channel, error) {
	channel, err := s.dm.Channel().GetBySlackID(slackChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return channel, nil
}
