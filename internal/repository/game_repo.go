package repository

import (
	"fmt"
	"strings"
	"time"

	"focustrainer/internal/database"
	"focustrainer/internal/models"
)

// GameRepository handles database operations for game records and their
// daily aggregations
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// CreateGame inserts one completed play session for a user
func (r *GameRepository) CreateGame(userID int64, level, correctHits, incorrectHits, missedHits, timePlayed int) (*models.Game, error) {
	query := `
		INSERT INTO games (user_id, level, correct_hits, incorrect_hits, missed_hits, time_played)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, level, correctHits, incorrectHits, missedHits, timePlayed)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return r.GetGameByID(id)
}

// GetGameByID retrieves a single game record
func (r *GameRepository) GetGameByID(id int64) (*models.Game, error) {
	query := `
		SELECT id, user_id, level, correct_hits, incorrect_hits, missed_hits, time_played, created_at
		FROM games
		WHERE id = ?
	`
	game := &models.Game{}
	err := r.db.QueryRow(query, id).Scan(
		&game.ID,
		&game.UserID,
		&game.Level,
		&game.CorrectHits,
		&game.IncorrectHits,
		&game.MissedHits,
		&game.TimePlayed,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// DailyStats aggregates one user's games by calendar date: games played,
// mean level and hit counts, summed time played. Ordered by date ascending.
// Accuracy is not computed here; the service attaches it.
func (r *GameRepository) DailyStats(userID int64) ([]models.DailyStats, error) {
	day := r.db.DateExpr("created_at")
	query := fmt.Sprintf(`
		SELECT COUNT(level), AVG(level), AVG(correct_hits), AVG(incorrect_hits),
		       AVG(missed_hits), COALESCE(SUM(time_played), 0), %s
		FROM games
		WHERE user_id = ?
		GROUP BY %s
		ORDER BY %s ASC
	`, day, day, day)

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var days []models.DailyStats
	for rows.Next() {
		var d models.DailyStats
		err := rows.Scan(
			&d.GamesPlayed,
			&d.Level,
			&d.CorrectHits,
			&d.IncorrectHits,
			&d.MissedHits,
			&d.TimePlayed,
			&d.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// DailyStatsByUser aggregates many users' games in ONE batched query, grouped
// by (calendar date, user), ordered by date ascending. Callers partition the
// combined rows back per user; keeping this a single round-trip instead of a
// per-user query loop is deliberate.
func (r *GameRepository) DailyStatsByUser(userIDs []int64) ([]models.DailyStats, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(userIDs)), ", ")
	day := r.db.DateExpr("created_at")
	query := fmt.Sprintf(`
		SELECT user_id, COUNT(level), AVG(level), AVG(correct_hits), AVG(incorrect_hits),
		       AVG(missed_hits), COALESCE(SUM(time_played), 0), %s
		FROM games
		WHERE user_id IN (%s)
		GROUP BY %s, user_id
		ORDER BY %s ASC
	`, day, placeholders, day, day)

	args := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats by user: %w", err)
	}
	defer rows.Close()

	var days []models.DailyStats
	for rows.Next() {
		var d models.DailyStats
		err := rows.Scan(
			&d.UserID,
			&d.GamesPlayed,
			&d.Level,
			&d.CorrectHits,
			&d.IncorrectHits,
			&d.MissedHits,
			&d.TimePlayed,
			&d.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GamesBetween retrieves one user's raw game records whose creation timestamp
// falls within [start, end], both bounds inclusive, newest first.
func (r *GameRepository) GamesBetween(userID int64, start, end time.Time) ([]models.Game, error) {
	query := `
		SELECT id, user_id, level, correct_hits, incorrect_hits, missed_hits, time_played, created_at
		FROM games
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.ID,
			&game.UserID,
			&game.Level,
			&game.CorrectHits,
			&game.IncorrectHits,
			&game.MissedHits,
			&game.TimePlayed,
			&game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
