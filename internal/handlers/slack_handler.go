package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
	slackcmd "github.com/lucasrm/slack-gameday-bot/internal/slack"
	"github.com/slack-go/slack"
)

type SlackHandler struct {
	preferenceService contract.PreferenceService
	alertService      contract.AlertService
	signingSecret     string
}

func New(preferenceService contract.PreferenceService, alertService contract.AlertService, signingSecret string) *SlackHandler {
	return &SlackHandler{
		preferenceService: preferenceService,
		alertService:      alertService,
		signingSecret:     signingSecret,
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	// Verify request from Slack
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	// Verify Slack signature
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// Parse command
	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Parse our command
	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respondWith(w, h.createErrorResponse(err.Error()))
		return
	}

	response := h.handleCommand(r.Context(), cmd, &s)
	h.respondWith(w, response)
}

func (h *SlackHandler) respondWith(w http.ResponseWriter, response *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *SlackHandler) handleCommand(ctx context.Context, cmd *slackcmd.Command, slashCmd *slack.SlashCommand) *slack.Msg {
	channel, err := h.preferenceService.SetupChannel(slashCmd.ChannelID, slashCmd.ChannelName, slashCmd.TeamID)
	if err != nil {
		return h.createErrorResponse("Failed to load channel configuration")
	}

	switch cmd.Type {
	case slackcmd.CmdTeamSet:
		return h.handleTeamSet(channel, cmd, slashCmd)
	case slackcmd.CmdTeamList:
		return h.handleTeamList(channel, slashCmd)
	case slackcmd.CmdTeamClear:
		return h.handleTeamClear(channel, cmd, slashCmd)
	case slackcmd.CmdAlertsSetup:
		return h.handleAlertsSetup(channel, cmd, slashCmd)
	case slackcmd.CmdAlertsLeagues:
		return h.handleAlertsLeagues(channel, cmd)
	case slackcmd.CmdAlertsTest:
		return h.handleAlertsTest(ctx, channel)
	case slackcmd.CmdStatus:
		return h.handleStatus(channel)
	case slackcmd.CmdHelp:
		return h.handleHelp()
	default:
		return h.createErrorResponse("Unknown command")
	}
}

func (h *SlackHandler) handleTeamSet(channel *entity.Channel, cmd *slackcmd.Command, slashCmd *slack.SlashCommand) *slack.Msg {
	if len(cmd.Args) < 2 {
		return h.createErrorResponse("Usage: `/gameday team set <league> <team>` (e.g. `NHL BOS`)")
	}

	league := cmd.Args[0]
	team := strings.Join(cmd.Args[1:], " ")

	if err := h.preferenceService.SetTeam(channel.ID, slashCmd.UserID, league, team); err != nil {
		return h.createErrorResponse(err.Error())
	}

	return &slack.Msg{
		Text: fmt.Sprintf("✅ Saved! You now follow *%s* in %s.",
			team, domain.LeagueDisplayName(domain.NormalizeLeague(league))),
	}
}

func (h *SlackHandler) handleTeamList(channel *entity.Channel, slashCmd *slack.SlashCommand) *slack.Msg {
	prefs, err := h.preferenceService.ListTeams(channel.ID, slashCmd.UserID)
	if err != nil {
		return h.createErrorResponse("Failed to list your teams")
	}

	if len(prefs) == 0 {
		return &slack.Msg{
			Text: "You are not following any teams here yet. Use `/gameday team set <league> <team>`.",
		}
	}

	var sb strings.Builder
	sb.WriteString("*Your teams:*\n")
	for _, pref := range prefs {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", domain.LeagueDisplayName(pref.League), pref.TeamKey))
	}

	return &slack.Msg{Text: sb.String()}
}

func (h *SlackHandler) handleTeamClear(channel *entity.Channel, cmd *slackcmd.Command, slashCmd *slack.SlashCommand) *slack.Msg {
	league := ""
	if len(cmd.Args) > 0 {
		league = cmd.Args[0]
	}

	if err := h.preferenceService.ClearTeams(channel.ID, slashCmd.UserID, league); err != nil {
		return h.createErrorResponse(err.Error())
	}

	if league != "" {
		return &slack.Msg{Text: fmt.Sprintf("Cleared your %s team.", domain.NormalizeLeague(league))}
	}
	return &slack.Msg{Text: "Cleared all of your teams in this channel."}
}

func (h *SlackHandler) handleAlertsSetup(channel *entity.Channel, cmd *slackcmd.Command, slashCmd *slack.SlashCommand) *slack.Msg {
	if len(cmd.Args) < 2 {
		return h.createErrorResponse("Usage: `/gameday alerts setup <#channel|here> <HH:MM>`")
	}

	alertChannelID := parseChannelRef(cmd.Args[0], slashCmd.ChannelID)
	if alertChannelID == "" {
		return h.createErrorResponse("Could not understand the channel. Use `here` or a #channel mention.")
	}

	alertTime := cmd.Args[1]

	if err := h.preferenceService.ConfigureAlerts(channel.ID, alertChannelID, alertTime); err != nil {
		return h.createErrorResponse(err.Error())
	}

	return &slack.Msg{
		Text: fmt.Sprintf("🔔 Matchup alerts will be posted to <#%s> every day at %s.", alertChannelID, alertTime),
	}
}

func (h *SlackHandler) handleAlertsLeagues(channel *entity.Channel, cmd *slackcmd.Command) *slack.Msg {
	if len(cmd.Args) == 0 {
		return h.createErrorResponse("Usage: `/gameday alerts leagues NHL,NBA,...`")
	}

	leagues := strings.Split(strings.Join(cmd.Args, ","), ",")

	if err := h.preferenceService.SetActiveLeagues(channel.ID, leagues); err != nil {
		return h.createErrorResponse(err.Error())
	}

	return &slack.Msg{Text: "Active leagues updated."}
}

func (h *SlackHandler) handleAlertsTest(ctx context.Context, channel *entity.Channel) *slack.Msg {
	if !channel.AlertsConfigured() {
		return h.createErrorResponse("Alerts are not configured yet. Run `/gameday alerts setup` first.")
	}

	sent, err := h.alertService.RunChannelAlerts(ctx, channel)
	if err != nil {
		return h.createErrorResponse("Failed to run the matchup check")
	}

	if sent == 0 {
		return &slack.Msg{Text: "No matchups between followed teams in the next two days."}
	}
	return &slack.Msg{Text: fmt.Sprintf("Posted %d matchup alert(s) to <#%s>.", sent, channel.AlertChannelID)}
}

func (h *SlackHandler) handleStatus(channel *entity.Channel) *slack.Msg {
	var sb strings.Builder
	sb.WriteString("*GameDay status:*\n")

	if channel.AlertsConfigured() {
		sb.WriteString(fmt.Sprintf("• Alerts: <#%s> daily at %s\n", channel.AlertChannelID, channel.AlertTime))
	} else {
		sb.WriteString("• Alerts: not configured\n")
	}

	leagues := channel.ActiveLeagues
	if len(leagues) == 0 {
		leagues = domain.SupportedLeagues
	}
	sb.WriteString("• Leagues: " + strings.Join(leagues, ", "))

	return &slack.Msg{Text: sb.String()}
}

func (h *SlackHandler) handleHelp() *slack.Msg {
	return &slack.Msg{Text: slackcmd.GetHelpText()}
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return &slack.Msg{Text: "❌ " + message}
}

// parseChannelRef resolves an alert destination argument: "here", a Slack
// channel mention like <#C123ABC|name>, or a bare channel ID.
func parseChannelRef(arg, currentChannelID string) string {
	if arg == "here" {
		return currentChannelID
	}

	if strings.HasPrefix(arg, "<#") {
		ref := strings.TrimPrefix(arg, "<#")
		ref = strings.TrimSuffix(ref, ">")
		if name := strings.Index(ref, "|"); name >= 0 {
			ref = ref[:name]
		}
		return ref
	}

	if strings.HasPrefix(arg, "C") {
		return arg
	}

	return ""
}
