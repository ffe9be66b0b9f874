package service

import (
	"errors"
	"fmt"
	"time"

	"focustrainer/internal/models"
	"focustrainer/internal/stats"
)

// ErrNotAuthorized is returned when no acting user could be resolved or the
// acting user lacks the required role
var ErrNotAuthorized = errors.New("not authorized")

// GameStore is the storage interface the stats service reads games through.
// *repository.GameRepository satisfies it.
type GameStore interface {
	CreateGame(userID int64, level, correctHits, incorrectHits, missedHits, timePlayed int) (*models.Game, error)
	DailyStats(userID int64) ([]models.DailyStats, error)
	DailyStatsByUser(userIDs []int64) ([]models.DailyStats, error)
	GamesBetween(userID int64, start, end time.Time) ([]models.Game, error)
}

// StatsService shapes game records into the day-bucketed statistics consumed
// by the dashboard charts
type StatsService struct {
	games GameStore
}

// NewStatsService creates a new stats service
func NewStatsService(games GameStore) *StatsService {
	return &StatsService{games: games}
}

// UserDailyStats returns one aggregate per calendar date on which the acting
// user has at least one game, ascending by date, with accuracy attached.
// A user with no games gets an empty slice, not an error.
func (s *StatsService) UserDailyStats(actor *models.User) ([]models.DailyStats, error) {
	if actor == nil {
		return nil, ErrNotAuthorized
	}

	days, err := s.games.DailyStats(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}

	for i := range days {
		days[i].Accuracy = stats.Accuracy(days[i].CorrectHits, days[i].IncorrectHits, days[i].MissedHits)
	}

	if days == nil {
		days = []models.DailyStats{}
	}
	return days, nil
}

// ChildrenDailyStats returns each child's daily aggregates, one slice per
// input child in input order. All children are covered by a single batched
// query; the combined rows are then partitioned back per child with a stable
// filter, so within each child the query's date-ascending order is preserved.
// Children with no games map to an empty slice, not an omitted entry.
func (s *StatsService) ChildrenDailyStats(children []models.User) ([][]models.DailyStats, error) {
	if len(children) == 0 {
		return [][]models.DailyStats{}, nil
	}

	ids := make([]int64, len(children))
	for i, child := range children {
		ids[i] = child.ID
	}

	combined, err := s.games.DailyStatsByUser(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load children daily stats: %w", err)
	}

	for i := range combined {
		combined[i].Accuracy = stats.Accuracy(combined[i].CorrectHits, combined[i].IncorrectHits, combined[i].MissedHits)
	}

	perChild := make([][]models.DailyStats, len(children))
	for i, child := range children {
		days := []models.DailyStats{}
		for _, d := range combined {
			if d.UserID == child.ID {
				days = append(days, d)
			}
		}
		perChild[i] = days
	}

	return perChild, nil
}

// GamesBetween returns the acting user's raw game records created within
// [start, end], both bounds inclusive, most recent first.
func (s *StatsService) GamesBetween(actor *models.User, start, end time.Time) ([]models.Game, error) {
	if actor == nil {
		return nil, ErrNotAuthorized
	}

	games, err := s.games.GamesBetween(actor.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	if games == nil {
		games = []models.Game{}
	}
	return games, nil
}

// RecordGame persists one completed play session for the acting user
func (s *StatsService) RecordGame(actor *models.User, level, correctHits, incorrectHits, missedHits, timePlayed int) (*models.Game, error) {
	if actor == nil {
		return nil, ErrNotAuthorized
	}
	if level < 0 || correctHits < 0 || incorrectHits < 0 || missedHits < 0 || timePlayed < 0 {
		return nil, errors.New("game metrics must be non-negative")
	}

	game, err := s.games.CreateGame(actor.ID, level, correctHits, incorrectHits, missedHits, timePlayed)
	if err != nil {
		return nil, fmt.Errorf("failed to record game: %w", err)
	}
	return game, nil
}
