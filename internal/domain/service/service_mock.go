package service

import (
	"testing"

	"github.com/lucasrm/slack-gameday-bot/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager    *mocks.MockDataManager
	mockChannelRepo    *mocks.MockChannelRepo
	mockPreferenceRepo *mocks.MockPreferenceRepo
	mockSlackClient    *mocks.MockSlackClient
	mockProvider       *mocks.MockScheduleProvider
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	channelRepo := mocks.NewMockChannelRepo(ctrl)
	dm.EXPECT().Channel().Return(channelRepo).AnyTimes()

	preferenceRepo := mocks.NewMockPreferenceRepo(ctrl)
	dm.EXPECT().Preference().Return(preferenceRepo).AnyTimes()

	slackClient := mocks.NewMockSlackClient(ctrl)
	provider := mocks.NewMockScheduleProvider(ctrl)

	m = allMocks{
		mockDataManager:    dm,
		mockChannelRepo:    channelRepo,
		mockPreferenceRepo: preferenceRepo,
		mockSlackClient:    slackClient,
		mockProvider:       provider,
	}

	// validate service creation
	services := New(dm, slackClient, provider)
	require.NotNil(t, services)

	return
}
