package contract

import (
	"context"
	"time"

	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
)

// ScheduleProvider fetches upcoming games from an external sports data API.
type ScheduleProvider interface {
	// FetchSchedules returns the games scheduled for today and, when
	// daysAhead >= 1, tomorrow, for every requested league. A failed fetch
	// for one league/day is logged and contributes zero games; it never
	// fails the whole call.
	FetchSchedules(ctx context.Context, leagues []string, daysAhead int) []entity.Game

	// FetchLeagueSchedule returns the games for a single league on a single
	// date. Unlike FetchSchedules, errors are returned to the caller.
	FetchLeagueSchedule(ctx context.Context, league string, date time.Time) ([]entity.Game, error)
}
