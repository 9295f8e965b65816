package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// League codes supported by the schedule provider. This is a closed set:
// any other code is a configuration error, not a silent no-op.
const (
	LeagueNHL = "NHL"
	LeagueMLB = "MLB"
	LeagueNBA = "NBA"
	LeagueNFL = "NFL"
)

// SupportedLeagues lists every league the bot can track.
var SupportedLeagues = []string{LeagueNHL, LeagueMLB, LeagueNBA, LeagueNFL}

// LeagueDisplayNames maps league codes to the emoji-tagged form used in
// alert messages.
var LeagueDisplayNames = map[string]string{
	LeagueNHL: "🏒 NHL",
	LeagueMLB: "⚾ MLB",
	LeagueNBA: "🏀 NBA",
	LeagueNFL: "🏈 NFL",
}

// DefaultAlertTime is the daily alert time assigned to newly set up channels.
const DefaultAlertTime = "09:00"

// BroadcastFallback is the broadcast line used when the provider has no TV
// listing for a game.
const BroadcastFallback = "Check official listings for broadcast info"

func IsSupportedLeague(code string) bool {
	for _, league := range SupportedLeagues {
		if league == code {
			return true
		}
	}
	return false
}

// NormalizeLeague uppercases and trims a user-supplied league code.
func NormalizeLeague(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func LeagueDisplayName(code string) string {
	if name, ok := LeagueDisplayNames[code]; ok {
		return name
	}
	return code
}

// ParseAlertTime parses a daily alert time in strict "HH:MM" 24-hour form.
// Single-digit hours ("9:00") and trailing seconds are rejected.
func ParseAlertTime(value string) (hour, minute int, err error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, 0, fmt.Errorf("invalid alert time %q: expected HH:MM", value)
	}

	hour, err = strconv.Atoi(value[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in alert time %q", value)
	}

	minute, err = strconv.Atoi(value[3:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in alert time %q", value)
	}

	return hour, minute, nil
}

// ValidateAlertTime reports whether value is a well-formed "HH:MM" time.
// Alert times are validated here, at configuration time, so the sweep loop
// never has to deal with malformed values.
func ValidateAlertTime(value string) error {
	_, _, err := ParseAlertTime(value)
	return err
}
