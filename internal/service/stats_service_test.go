package service

import (
	"errors"
	"testing"
	"time"

	"focustrainer/internal/models"
)

// stubGameStore is an in-memory GameStore recording how it was called
type stubGameStore struct {
	daily        map[int64][]models.DailyStats
	combined     []models.DailyStats
	games        []models.Game
	err          error
	batchedCalls [][]int64
}

func (s *stubGameStore) CreateGame(userID int64, level, correctHits, incorrectHits, missedHits, timePlayed int) (*models.Game, error) {
	if s.err != nil {
		return nil, s.err
	}
	game := models.Game{
		ID:            int64(len(s.games) + 1),
		UserID:        userID,
		Level:         level,
		CorrectHits:   correctHits,
		IncorrectHits: incorrectHits,
		MissedHits:    missedHits,
		TimePlayed:    timePlayed,
		CreatedAt:     time.Now(),
	}
	s.games = append(s.games, game)
	return &game, nil
}

func (s *stubGameStore) DailyStats(userID int64) ([]models.DailyStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.daily[userID], nil
}

func (s *stubGameStore) DailyStatsByUser(userIDs []int64) ([]models.DailyStats, error) {
	s.batchedCalls = append(s.batchedCalls, userIDs)
	if s.err != nil {
		return nil, s.err
	}
	return s.combined, nil
}

func (s *stubGameStore) GamesBetween(userID int64, start, end time.Time) ([]models.Game, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.games, nil
}

func TestUserDailyStatsRequiresActor(t *testing.T) {
	svc := NewStatsService(&stubGameStore{})

	_, err := svc.UserDailyStats(nil)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("UserDailyStats(nil) error = %v, want ErrNotAuthorized", err)
	}
}

func TestUserDailyStatsEmpty(t *testing.T) {
	svc := NewStatsService(&stubGameStore{daily: map[int64][]models.DailyStats{}})

	days, err := svc.UserDailyStats(&models.User{ID: 7, Role: models.RoleChild})
	if err != nil {
		t.Fatalf("UserDailyStats() error = %v", err)
	}
	if days == nil {
		t.Fatal("UserDailyStats() returned nil, want empty slice")
	}
	if len(days) != 0 {
		t.Errorf("UserDailyStats() returned %d days, want 0", len(days))
	}
}

func TestUserDailyStatsAttachesAccuracy(t *testing.T) {
	store := &stubGameStore{
		daily: map[int64][]models.DailyStats{
			7: {
				{GamesPlayed: 2, CorrectHits: 6, IncorrectHits: 2, MissedHits: 2, Date: "2024-01-01"},
				{GamesPlayed: 1, Date: "2024-01-02"}, // no hits at all
			},
		},
	}
	svc := NewStatsService(store)

	days, err := svc.UserDailyStats(&models.User{ID: 7, Role: models.RoleChild})
	if err != nil {
		t.Fatalf("UserDailyStats() error = %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].Accuracy != 0.6 {
		t.Errorf("day 1 accuracy = %v, want 0.6", days[0].Accuracy)
	}
	if days[1].Accuracy != 0 {
		t.Errorf("zero-attempt day accuracy = %v, want 0", days[1].Accuracy)
	}
}

func TestChildrenDailyStatsPartitions(t *testing.T) {
	// Combined result interleaves users by ascending date, as the grouped
	// query returns it
	store := &stubGameStore{
		combined: []models.DailyStats{
			{UserID: 1, GamesPlayed: 1, CorrectHits: 4, Date: "2024-01-01"},
			{UserID: 2, GamesPlayed: 2, CorrectHits: 2, IncorrectHits: 2, Date: "2024-01-01"},
			{UserID: 1, GamesPlayed: 3, CorrectHits: 1, MissedHits: 1, Date: "2024-01-02"},
		},
	}
	svc := NewStatsService(store)

	children := []models.User{
		{ID: 2, Role: models.RoleChild},
		{ID: 1, Role: models.RoleChild},
		{ID: 3, Role: models.RoleChild}, // no games
	}

	perChild, err := svc.ChildrenDailyStats(children)
	if err != nil {
		t.Fatalf("ChildrenDailyStats() error = %v", err)
	}

	if len(perChild) != len(children) {
		t.Fatalf("got %d entries, want one per input child (%d)", len(perChild), len(children))
	}

	// Entries follow input order, not id order
	if len(perChild[0]) != 1 || perChild[0][0].UserID != 2 {
		t.Errorf("first entry should hold child 2's single day, got %+v", perChild[0])
	}
	if len(perChild[1]) != 2 || perChild[1][0].UserID != 1 {
		t.Errorf("second entry should hold child 1's two days, got %+v", perChild[1])
	}

	// Date order within a child survives the partition
	if perChild[1][0].Date != "2024-01-01" || perChild[1][1].Date != "2024-01-02" {
		t.Errorf("child 1 days out of order: %+v", perChild[1])
	}

	// A child with no games maps to an empty slice, not a missing entry
	if perChild[2] == nil || len(perChild[2]) != 0 {
		t.Errorf("gameless child should map to empty slice, got %+v", perChild[2])
	}

	// Row total matches the distinct (user, date) groups
	total := 0
	for _, days := range perChild {
		total += len(days)
	}
	if total != len(store.combined) {
		t.Errorf("total rows = %d, want %d", total, len(store.combined))
	}

	// Accuracy attached per row
	if perChild[0][0].Accuracy != 0.5 {
		t.Errorf("child 2 accuracy = %v, want 0.5", perChild[0][0].Accuracy)
	}

	// Exactly one batched query covering every child
	if len(store.batchedCalls) != 1 {
		t.Fatalf("store queried %d times, want 1", len(store.batchedCalls))
	}
	if got := store.batchedCalls[0]; len(got) != 3 || got[0] != 2 || got[1] != 1 || got[2] != 3 {
		t.Errorf("batched ids = %v, want [2 1 3]", got)
	}
}

func TestChildrenDailyStatsEmptyInput(t *testing.T) {
	store := &stubGameStore{}
	svc := NewStatsService(store)

	perChild, err := svc.ChildrenDailyStats(nil)
	if err != nil {
		t.Fatalf("ChildrenDailyStats() error = %v", err)
	}
	if len(perChild) != 0 {
		t.Errorf("got %d entries, want 0", len(perChild))
	}
	if len(store.batchedCalls) != 0 {
		t.Error("no query should be issued for an empty child set")
	}
}

func TestChildrenDailyStatsPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewStatsService(&stubGameStore{err: storeErr})

	_, err := svc.ChildrenDailyStats([]models.User{{ID: 1}})
	if !errors.Is(err, storeErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

func TestGamesBetween(t *testing.T) {
	svc := NewStatsService(&stubGameStore{})

	if _, err := svc.GamesBetween(nil, time.Now(), time.Now()); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("GamesBetween(nil, …) error = %v, want ErrNotAuthorized", err)
	}

	games, err := svc.GamesBetween(&models.User{ID: 7}, time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("GamesBetween() error = %v", err)
	}
	if games == nil {
		t.Error("GamesBetween() returned nil, want empty slice")
	}
}

func TestRecordGame(t *testing.T) {
	store := &stubGameStore{}
	svc := NewStatsService(store)

	if _, err := svc.RecordGame(nil, 1, 1, 0, 0, 30); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("RecordGame(nil, …) error = %v, want ErrNotAuthorized", err)
	}

	if _, err := svc.RecordGame(&models.User{ID: 7}, 1, -1, 0, 0, 30); err == nil {
		t.Error("negative metrics should be rejected")
	}

	game, err := svc.RecordGame(&models.User{ID: 7}, 3, 10, 2, 1, 45)
	if err != nil {
		t.Fatalf("RecordGame() error = %v", err)
	}
	if game.UserID != 7 || game.Level != 3 || game.CorrectHits != 10 {
		t.Errorf("recorded game = %+v", game)
	}
}
