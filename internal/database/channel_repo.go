package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
)

type channelRepo struct {
	db dbConn
}

func newChannelRepo(db dbConn) contract.ChannelRepo {
	return &channelRepo{db: db}
}

func (r *channelRepo) Create(channel *entity.Channel) error {
	query := `
		INSERT INTO channels (slack_channel_id, slack_channel_name, slack_team_id,
			alert_channel_id, alert_time, active_leagues)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	activeLeaguesJSON, err := marshalLeagues(channel.ActiveLeagues)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(query,
		channel.SlackChannelID,
		channel.SlackChannelName,
		channel.SlackTeamID,
		channel.AlertChannelID,
		channel.AlertTime,
		activeLeaguesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	channel.ID = id
	return nil
}

const channelColumns = `id, slack_channel_id, slack_channel_name, slack_team_id,
			alert_channel_id, alert_time, active_leagues, created_at, updated_at`

func (r *channelRepo) GetBySlackID(slackChannelID string) (*entity.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		WHERE slack_channel_id = ?
	`

	channel, err := scanChannel(r.db.QueryRow(query, slackChannelID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return channel, nil
}

func (r *channelRepo) GetByID(id int64) (*entity.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		WHERE id = ?
	`

	channel, err := scanChannel(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return channel, nil
}

func (r *channelRepo) Update(channel *entity.Channel) error {
	query := `
		UPDATE channels SET
			slack_channel_name = ?,
			alert_channel_id = ?,
			alert_time = ?,
			active_leagues = ?,
			updated_at = ?
		WHERE id = ?
	`

	activeLeaguesJSON, err := marshalLeagues(channel.ActiveLeagues)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(query,
		channel.SlackChannelName,
		channel.AlertChannelID,
		channel.AlertTime,
		activeLeaguesJSON,
		time.Now(),
		channel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}

	return nil
}

func (r *channelRepo) GetAlertConfigured() ([]*entity.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		WHERE alert_channel_id != ''
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get alert configured channels: %w", err)
	}
	defer rows.Close()

	var channels []*entity.Channel
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	return channels, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChannel(row rowScanner) (*entity.Channel, error) {
	channel := &entity.Channel{}
	var activeLeaguesJSON string

	err := row.Scan(
		&channel.ID,
		&channel.SlackChannelID,
		&channel.SlackChannelName,
		&channel.SlackTeamID,
		&channel.AlertChannelID,
		&channel.AlertTime,
		&activeLeaguesJSON,
		&channel.CreatedAt,
		&channel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if activeLeaguesJSON != "" {
		if err := json.Unmarshal([]byte(activeLeaguesJSON), &channel.ActiveLeagues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal active leagues: %w", err)
		}
	}

	return channel, nil
}

func marshalLeagues(leagues []string) (string, error) {
	if leagues == nil {
		leagues = []string{}
	}
	b, err := json.Marshal(leagues)
	if err != nil {
		return "", fmt.Errorf("failed to marshal active leagues: %w", err)
	}
	return string(b), nil
}
