package slack

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdTeamSet       CommandType = "team-set"
	CmdTeamList      CommandType = "team-list"
	CmdTeamClear     CommandType = "team-clear"
	CmdAlertsSetup   CommandType = "alerts-setup"
	CmdAlertsLeagues CommandType = "alerts-leagues"
	CmdAlertsTest    CommandType = "alerts-test"
	CmdStatus        CommandType = "status"
	CmdHelp          CommandType = "help"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdHelp}, nil
	}

	cmd := &Command{
		Raw: text,
	}

	switch parts[0] {
	case "team":
		if len(parts) < 2 {
			return nil, fmt.Errorf("usage: `/gameday team set|list|clear`")
		}
		switch parts[1] {
		case "set":
			cmd.Type = CmdTeamSet
			cmd.Args = parts[2:]
		case "list", "ls":
			cmd.Type = CmdTeamList
		case "clear":
			cmd.Type = CmdTeamClear
			cmd.Args = parts[2:]
		default:
			return nil, fmt.Errorf("unknown team subcommand: %s", parts[1])
		}
	case "alerts":
		if len(parts) < 2 {
			return nil, fmt.Errorf("usage: `/gameday alerts setup|leagues|test`")
		}
		switch parts[1] {
		case "setup":
			cmd.Type = CmdAlertsSetup
			cmd.Args = parts[2:]
		case "leagues":
			cmd.Type = CmdAlertsLeagues
			cmd.Args = parts[2:]
		case "test":
			cmd.Type = CmdAlertsTest
		default:
			return nil, fmt.Errorf("unknown alerts subcommand: %s", parts[1])
		}
	case "status":
		cmd.Type = CmdStatus
	case "help", "":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}

	return cmd, nil
}

func GetHelpText() string {
	return `*Available commands:*

*Your teams:*
• ` + "`/gameday team set <league> <team>`" + ` - Set your favorite team for a league (e.g. NHL BOS)
• ` + "`/gameday team list`" + ` - List your saved teams
• ` + "`/gameday team clear [league]`" + ` - Clear one league, or all when omitted

*Alerts:*
• ` + "`/gameday alerts setup <#channel|here> <HH:MM>`" + ` - Set the alert channel and daily time
• ` + "`/gameday alerts leagues NHL,NBA,...`" + ` - Restrict which leagues are checked
• ` + "`/gameday alerts test`" + ` - Run a matchup check right now

*Info:*
• ` + "`/gameday status`" + ` - Show the bot configuration for this channel`
}
