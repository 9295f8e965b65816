package service

import (
	"context"
	"log"
	"time"

	"github.com/lucasrm/slack-gameday-bot/internal/domain"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
)

// sweeper wakes up once a minute and runs the alert pipeline for every
// channel whose daily alert time matches the current minute.
//
// Sweeps run one at a time in the sweeper goroutine. If a sweep ever
// overruns the tick interval, time.Ticker drops the missed tick instead of
// running sweeps concurrently.
type sweeper struct {
	dm           contract.DataManager
	alerts       contract.AlertService
	tickInterval time.Duration
	stopChan     chan struct{}
	running      bool
}

func newSweeper(dm contract.DataManager, alerts contract.AlertService) *sweeper {
	return &sweeper{
		dm:           dm,
		alerts:       alerts,
		tickInterval: time.Minute,
		stopChan:     make(chan struct{}),
	}
}

func (s *sweeper) Start() {
	if s.running {
		return
	}
	s.running = true
	log.Println("Sweeper starting...")
	go s.loop()
}

func (s *sweeper) Stop() {
	if !s.running {
		return
	}
	log.Println("Sweeper stopping...")
	close(s.stopChan)
	s.running = false
}

func (s *sweeper) loop() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.runSweep(context.Background(), now)
		case <-s.stopChan:
			return
		}
	}
}

// runSweep evaluates every alert-configured channel against one shared
// time snapshot. A failure in one channel is logged and never aborts the
// remaining channels.
func (s *sweeper) runSweep(ctx context.Context, now time.Time) {
	channels, err := s.dm.Channel().GetAlertConfigured()
	if err != nil {
		log.Printf("Sweep: failed to load channels: %v", err)
		return
	}

	for _, channel := range channels {
		if !alertDue(channel, now) {
			continue
		}

		sent, err := s.alerts.RunChannelAlerts(ctx, channel)
		if err != nil {
			log.Printf("Failed to process matchups for channel %s: %v", channel.SlackChannelID, err)
			continue
		}

		if sent > 0 {
			log.Printf("Posted %d matchup alert(s) for channel %s", sent, channel.SlackChannelID)
		}
	}
}

// alertDue reports whether the channel's alert time matches now, to the
// minute. Alert times are validated at configuration time; a malformed
// value that slipped into the store is logged and skipped.
func alertDue(channel *entity.Channel, now time.Time) bool {
	hour, minute, err := domain.ParseAlertTime(channel.AlertTime)
	if err != nil {
		log.Printf("Invalid alert time for channel %s: %v", channel.SlackChannelID, err)
		return false
	}

	return now.Hour() == hour && now.Minute() == minute
}
