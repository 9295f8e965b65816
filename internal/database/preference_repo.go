package database

import (
	"database/sql"
	"fmt"

	"github.com/lucasrm/slack-gameday-bot/internal/domain/contract"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/entity"
)

type preferenceRepo struct {
	db dbConn
}

func newPreferenceRepo(db dbConn) contract.PreferenceRepo {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Upsert(pref *entity.TeamPreference) error {
	query := `
		INSERT INTO team_preferences (channel_id, slack_user_id, league, team_key)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(channel_id, slack_user_id, league)
		DO UPDATE SET team_key = excluded.team_key
	`

	result, err := r.db.Exec(query,
		pref.ChannelID,
		pref.SlackUserID,
		pref.League,
		pref.TeamKey,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team preference: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	pref.ID = id
	return nil
}

func (r *preferenceRepo) ListByUser(channelID int64, slackUserID string) ([]*entity.TeamPreference, error) {
	query := `
		SELECT id, channel_id, slack_user_id, league, team_key, created_at
		FROM team_preferences
		WHERE channel_id = ? AND slack_user_id = ?
		ORDER BY league
	`

	rows, err := r.db.Query(query, channelID, slackUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team preferences: %w", err)
	}
	defer rows.Close()

	return scanPreferences(rows)
}

func (r *preferenceRepo) ListByChannel(channelID int64) ([]*entity.TeamPreference, error) {
	query := `
		SELECT id, channel_id, slack_user_id, league, team_key, created_at
		FROM team_preferences
		WHERE channel_id = ?
	`

	rows, err := r.db.Query(query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel preferences: %w", err)
	}
	defer rows.Close()

	return scanPreferences(rows)
}

func (r *preferenceRepo) DeleteByUser(channelID int64, slackUserID, league string) error {
	if league != "" {
		query := `
			DELETE FROM team_preferences
			WHERE channel_id = ? AND slack_user_id = ? AND league = ?
		`
		if _, err := r.db.Exec(query, channelID, slackUserID, league); err != nil {
			return fmt.Errorf("failed to delete team preference: %w", err)
		}
		return nil
	}

	query := `
		DELETE FROM team_preferences
		WHERE channel_id = ? AND slack_user_id = ?
	`
	if _, err := r.db.Exec(query, channelID, slackUserID); err != nil {
		return fmt.Errorf("failed to delete team preferences: %w", err)
	}
	return nil
}

func scanPreferences(rows *sql.Rows) ([]*entity.TeamPreference, error) {
	var prefs []*entity.TeamPreference
	for rows.Next() {
		pref := &entity.TeamPreference{}
		err := rows.Scan(
			&pref.ID,
			&pref.ChannelID,
			&pref.SlackUserID,
			&pref.League,
			&pref.TeamKey,
			&pref.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team preference: %w", err)
		}
		prefs = append(prefs, pref)
	}

	return prefs, rows.Err()
}
