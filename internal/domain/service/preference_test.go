package service

import (
	"errors"
	"testing"

	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_preferenceService_SetupChannel(t *testing.T) {
	t.Run("Should create a channel with defaults when missing", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockChannelRepo.EXPECT().
			GetBySlackID("C123456789").
			Return(nil, nil).Times(1)

		m.mockChannelRepo.EXPECT().
			Create(&entity.Channel{
				SlackChannelID:   "C123456789",
				SlackChannelName: "sports",
				SlackTeamID:      "T123456789",
				AlertTime:        domain.DefaultAlertTime,
			}).Return(nil).Times(1)

		svc := newPreference(m.mockDataManager)
		channel, err := svc.SetupChannel("C123456789", "sports", "T123456789")
		require.NoError(t, err)
		require.NotNil(t, channel)
		assert.Equal(t, domain.DefaultAlertTime, channel.AlertTime)
		assert.False(t, channel.AlertsConfigured())
	})

	t.Run("Should return the existing channel untouched", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		existing := &entity.Channel{ID: 7, SlackChannelID: "C123456789", AlertTime: "18:30"}

		m.mockChannelRepo.EXPECT().
			GetBySlackID("C123456789").
			Return(existing, nil).Times(1)

		svc := newPreference(m.mockDataManager)
		channel, err := svc.SetupChannel("C123456789", "sports", "T123456789")
		require.NoError(t, err)
		assert.Equal(t, existing, channel)
	})
}

func Test_preferenceService_SetTeam(t *testing.T) {
	t.Run("Should normalize the league code and save", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockPreferenceRepo.EXPECT().
			Upsert(&entity.TeamPreference{
				ChannelID:   1,
				SlackUserID: "U123456789",
				League:      domain.LeagueNHL,
				TeamKey:     "BOS",
			}).Return(nil).Times(1)

		svc := newPreference(m.mockDataManager)
		err := svc.SetTeam(1, "U123456789", "nhl", " BOS ")
		require.NoError(t, err)
	})

	t.Run("Should reject an unsupported league before touching the store", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		svc := newPreference(m.mockDataManager)
		err := svc.SetTeam(1, "U123456789", "XFL", "BOS")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported league")
	})

	t.Run("Should reject an empty team", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		svc := newPreference(m.mockDataManager)
		err := svc.SetTeam(1, "U123456789", "NHL", "   ")
		require.Error(t, err)
	})
}

func Test_preferenceService_ClearTeams(t *testing.T) {
	t.Run("Should clear one league", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockPreferenceRepo.EXPECT().
			DeleteByUser(int64(1), "U123456789", domain.LeagueNHL).
			Return(nil).Times(1)

		svc := newPreference(m.mockDataManager)
		err := svc.ClearTeams(1, "U123456789", "nhl")
		require.NoError(t, err)
	})

	t.Run("Should clear all leagues when none given", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockPreferenceRepo.EXPECT().
			DeleteByUser(int64(1), "U123456789", "").
			Return(nil).Times(1)

		svc := newPreference(m.mockDataManager)
		err := svc.ClearTeams(1, "U123456789", "")
		require.NoError(t, err)
	})
}

func Test_preferenceService_ConfigureAlerts(t *testing.T) {
	t.Run("Should set destination and time", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		channel := &entity.Channel{ID: 1, SlackChannelID: "C123456789", AlertTime: domain.DefaultAlertTime}

		m.mockChannelRepo.EXPECT().GetByID(int64(1)).Return(channel, nil).Times(1)
		m.mockChannelRepo.EXPECT().
			Update(channel).
			DoAndReturn(func(ch *entity.Channel) error {
				assert.Equal(t, "C999999999", ch.AlertChannelID)
				assert.Equal(t, "18:30", ch.AlertTime)
				return nil
			}).Times(1)

		svc := newPreference(m.mockDataManager)
		err := svc.ConfigureAlerts(1, "C999999999", "18:30")
		require.NoError(t, err)
	})

	t.Run("Should reject malformed alert times at configuration time", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		svc := newPreference(m.mockDataManager)

		for _, value := range []string{"9:00", "24:00", "12:60", "12:00:00", "noon", ""} {
			err := svc.ConfigureAlerts(1, "C999999999", value)
			require.Error(t, err, "expected %q to be rejected", value)
		}
	})

	t.Run("Should fail when the channel does not exist", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockChannelRepo.EXPECT().GetByID(int64(42)).Return(nil, nil).Times(1)

		svc := newPreference(m.mockDataManager)
		err := svc.ConfigureAlerts(42, "C999999999", "18:30")
		require.Error(t, err)
	})
}

func Test_preferenceService_SetActiveLeagues(t *testing.T) {
	t.Run("Should normalize and save the league list", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		channel := &entity.Channel{ID: 1, SlackChannelID: "C123456789"}

		m.mockChannelRepo.EXPECT().GetByID(int64(1)).Return(channel, nil).Times(1)
		m.mockChannelRepo.EXPECT().
			Update(channel).
			DoAndReturn(func(ch *entity.Channel) error {
				assert.Equal(t, []string{domain.LeagueNHL, domain.LeagueNBA}, ch.ActiveLeagues)
				return nil
			}).Times(1)

		svc := newPreference(m.mockDataManager)
		err := svc.SetActiveLeagues(1, []string{"nhl", " nba "})
		require.NoError(t, err)
	})

	t.Run("Should reject unknown league codes", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		svc := newPreference(m.mockDataManager)
		err := svc.SetActiveLeagues(1, []string{"NHL", "CURLING"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported league")
	})
}

func Test_preferenceService_ListTeams(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	want := []*entity.TeamPreference{
		{ChannelID: 1, SlackUserID: "U123456789", League: domain.LeagueNHL, TeamKey: "BOS"},
	}

	m.mockPreferenceRepo.EXPECT().
		ListByUser(int64(1), "U123456789").
		Return(want, nil).Times(1)

	svc := newPreference(m.mockDataManager)
	got, err := svc.ListTeams(1, "U123456789")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	m.mockPreferenceRepo.EXPECT().
		ListByUser(int64(1), "U123456789").
		Return(nil, errors.New("db closed")).Times(1)

	_, err = svc.ListTeams(1, "U123456789")
	require.Error(t, err)
}
