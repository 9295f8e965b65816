package service

import (
	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
)

type Services struct {
	Preference contract.PreferenceService
	Alert      contract.AlertService
	Sweeper    *sweeper
}

func New(dm contract.DataManager, slackClient contract.SlackClient, provider contract.ScheduleProvider) *Services {
	alerts := newAlert(dm, slackClient, provider)

	return &Services{
		Preference: newPreference(dm),
		Alert:      alerts,
		Sweeper:    newSweeper(dm, alerts),
	}
}
