package database

import (
	"testing"

	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRepo_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newChannelRepo(db.conn)

	channel := &entity.Channel{
		SlackChannelID:   "C123456789",
		SlackChannelName: "test-channel",
		SlackTeamID:      "T123456789",
		AlertTime:        domain.DefaultAlertTime,
	}

	err := repo.Create(channel)
	require.NoError(t, err, "Failed to create channel")

	assert.NotZero(t, channel.ID, "Expected channel ID to be set after creation")
}

func TestChannelRepo_GetBySlackID(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newChannelRepo(db.conn)

	original := &entity.Channel{
		SlackChannelID:   "C123456789",
		SlackChannelName: "test-channel",
		SlackTeamID:      "T123456789",
		AlertChannelID:   "C987654321",
		AlertTime:        "18:30",
		ActiveLeagues:    []string{domain.LeagueNHL, domain.LeagueNBA},
	}

	err := repo.Create(original)
	require.NoError(t, err, "Failed to create test channel")

	// Test successful retrieval
	found, err := repo.GetBySlackID("C123456789")
	require.NoError(t, err, "Failed to get channel by slack ID")
	require.NotNil(t, found, "Expected to find channel")

	assert.Equal(t, original.SlackChannelID, found.SlackChannelID)
	assert.Equal(t, original.SlackChannelName, found.SlackChannelName)
	assert.Equal(t, original.SlackTeamID, found.SlackTeamID)
	assert.Equal(t, original.AlertChannelID, found.AlertChannelID)
	assert.Equal(t, original.AlertTime, found.AlertTime)
	assert.Equal(t, original.ActiveLeagues, found.ActiveLeagues)

	// Test not found
	notFound, err := repo.GetBySlackID("C000000000")
	require.NoError(t, err, "Unexpected error when channel not found")
	assert.Nil(t, notFound, "Expected nil when channel not found")
}

func TestChannelRepo_GetByID(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newChannelRepo(db.conn)

	channel := &entity.Channel{
		SlackChannelID:   "C123456789",
		SlackChannelName: "test-channel",
		SlackTeamID:      "T123456789",
		AlertTime:        domain.DefaultAlertTime,
	}

	err := repo.Create(channel)
	require.NoError(t, err, "Failed to create test channel")

	found, err := repo.GetByID(channel.ID)
	require.NoError(t, err, "Failed to get channel by ID")
	require.NotNil(t, found, "Expected to find channel")
	assert.Equal(t, channel.SlackChannelID, found.SlackChannelID)

	notFound, err := repo.GetByID(99999)
	require.NoError(t, err, "Unexpected error when channel not found")
	assert.Nil(t, notFound, "Expected nil when channel not found")
}

func TestChannelRepo_Update(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newChannelRepo(db.conn)

	channel := &entity.Channel{
		SlackChannelID:   "C123456789",
		SlackChannelName: "test-channel",
		SlackTeamID:      "T123456789",
		AlertTime:        domain.DefaultAlertTime,
	}

	err := repo.Create(channel)
	require.NoError(t, err, "Failed to create test channel")

	// Configure alerts and restrict leagues
	channel.AlertChannelID = "C555555555"
	channel.AlertTime = "15:45"
	channel.ActiveLeagues = []string{domain.LeagueNFL}

	err = repo.Update(channel)
	require.NoError(t, err, "Failed to update channel")

	updated, err := repo.GetByID(channel.ID)
	require.NoError(t, err, "Failed to retrieve updated channel")
	require.NotNil(t, updated, "Expected to find updated channel")

	assert.Equal(t, "C555555555", updated.AlertChannelID)
	assert.Equal(t, "15:45", updated.AlertTime)
	assert.Equal(t, []string{domain.LeagueNFL}, updated.ActiveLeagues)
	assert.True(t, updated.AlertsConfigured())
}

func TestChannelRepo_GetAlertConfigured(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newChannelRepo(db.conn)

	channels := []*entity.Channel{
		{
			SlackChannelID:   "C111111111",
			SlackChannelName: "channel-1",
			SlackTeamID:      "T123456789",
			AlertChannelID:   "C111111111",
			AlertTime:        "09:00",
		},
		{
			SlackChannelID:   "C222222222",
			SlackChannelName: "channel-2",
			SlackTeamID:      "T123456789",
			AlertTime:        "09:00",
			// No alert channel configured
		},
		{
			SlackChannelID:   "C333333333",
			SlackChannelName: "channel-3",
			SlackTeamID:      "T123456789",
			AlertChannelID:   "C999999999",
			AlertTime:        "18:30",
		},
	}

	for _, ch := range channels {
		err := repo.Create(ch)
		require.NoError(t, err, "Failed to create test channel")
	}

	configured, err := repo.GetAlertConfigured()
	require.NoError(t, err, "Failed to get alert configured channels")
	require.Len(t, configured, 2, "Expected only channels with an alert destination")

	ids := []string{configured[0].SlackChannelID, configured[1].SlackChannelID}
	assert.Contains(t, ids, "C111111111")
	assert.Contains(t, ids, "C333333333")
	assert.NotContains(t, ids, "C222222222")
}
