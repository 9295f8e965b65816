package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
	"github.com/slack-go/slack"
)

type alertService struct {
	dm          contract.DataManager
	slackClient contract.SlackClient
	provider    contract.ScheduleProvider
}

func newAlert(dm contract.DataManager, slackClient contract.SlackClient, provider contract.ScheduleProvider) *alertService {
	return &alertService{
		dm:          dm,
		slackClient: slackClient,
		provider:    provider,
	}
}

// teamIndex maps (league, lowercased team key) to the set of followers of
// that team within one channel.
type teamIndex map[teamKey]map[string]struct{}

type teamKey struct {
	league string
	team   string
}

func newTeamKey(league, team string) teamKey {
	return teamKey{league: league, team: strings.ToLower(team)}
}

// buildTeamIndex groups one channel's preferences by (league, team key).
// Team keys are matched case-insensitively.
func buildTeamIndex(prefs []*entity.TeamPreference) teamIndex {
	index := make(teamIndex, len(prefs))
	for _, pref := range prefs {
		key := newTeamKey(pref.League, pref.TeamKey)
		followers := index[key]
		if followers == nil {
			followers = make(map[string]struct{})
			index[key] = followers
		}
		followers[pref.SlackUserID] = struct{}{}
	}
	return index
}

// followers returns the sorted follower IDs for a team, or nil when nobody
// follows it.
func (idx teamIndex) followers(league, team string) []string {
	set := idx[newTeamKey(league, team)]
	if len(set) == 0 {
		return nil
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// findMatchups walks the game list once and emits a matchup for every game
// where both teams have followers. A user following both sides shows up on
// both sides. At most one matchup is emitted per game ID.
func findMatchups(games []entity.Game, index teamIndex) []entity.Matchup {
	var matchups []entity.Matchup
	seen := make(map[string]struct{}, len(games))

	for _, game := range games {
		if _, ok := seen[game.ID]; ok {
			continue
		}

		homeFollowers := index.followers(game.League, game.HomeTeam)
		awayFollowers := index.followers(game.League, game.AwayTeam)
		if len(homeFollowers) == 0 || len(awayFollowers) == 0 {
			continue
		}

		seen[game.ID] = struct{}{}
		matchups = append(matchups, entity.Matchup{
			Game:          game,
			HomeFollowers: homeFollowers,
			AwayFollowers: awayFollowers,
		})
	}

	return matchups
}

const startTimeLayout = "Mon, Jan 2 at 3:04 PM MST"

// renderMatchup builds the Slack message for one matchup.
func renderMatchup(m entity.Matchup) string {
	header := domain.LeagueDisplayName(m.Game.League)

	startTime := "Time TBD"
	if !m.Game.StartTime.IsZero() {
		startTime = m.Game.StartTime.Local().Format(startTimeLayout)
	}

	mentions := mentionList(m.HomeFollowers) + " vs " + mentionList(m.AwayFollowers)

	broadcast := domain.BroadcastFallback
	if m.Game.Broadcast != "" {
		broadcast = "Watch on " + m.Game.Broadcast
	}

	return fmt.Sprintf("%s *Matchup Alert!*\n%s vs %s — %s\n%s\n%s",
		header, m.Game.HomeTeam, m.Game.AwayTeam, startTime, mentions, broadcast)
}

func mentionList(userIDs []string) string {
	mentions := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		mentions = append(mentions, "<@"+id+">")
	}
	return strings.Join(mentions, ", ")
}

// RunChannelAlerts runs the full detection pipeline for one channel:
// build the team index, fetch schedules, match, render and post. Returns the
// number of alerts posted. Individual post failures are logged and skipped
// so one bad delivery never blocks the rest.
func (s *alertService) RunChannelAlerts(ctx context.Context, channel *entity.Channel) (int, error) {
	prefs, err := s.dm.Preference().ListByChannel(channel.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list channel preferences: %w", err)
	}
	if len(prefs) == 0 {
		log.Printf("No team preferences configured for channel %s", channel.SlackChannelID)
		return 0, nil
	}

	index := buildTeamIndex(prefs)

	leagues := channel.ActiveLeagues
	if len(leagues) == 0 {
		leagues = domain.SupportedLeagues
	}

	games := s.provider.FetchSchedules(ctx, leagues, 1)
	if len(games) == 0 {
		log.Printf("No games found for leagues %v", leagues)
		return 0, nil
	}

	matchups := findMatchups(games, index)
	if len(matchups) == 0 {
		log.Printf("No matchups for channel %s", channel.SlackChannelID)
		return 0, nil
	}

	sent := 0
	for _, matchup := range matchups {
		message := renderMatchup(matchup)

		_, _, err := s.slackClient.PostMessage(
			channel.AlertChannelID,
			slack.MsgOptionText(message, false),
			slack.MsgOptionAsUser(false),
		)
		if err != nil {
			log.Printf("Failed to post matchup alert for game %s to channel %s: %v",
				matchup.Game.ID, channel.AlertChannelID, err)
			continue
		}
		sent++
	}

	return sent, nil
}
