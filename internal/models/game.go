package models

import "time"

// Game represents one completed play session. Rows are immutable once written
// and owned by exactly one user.
type Game struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Level         int       `json:"level"`
	CorrectHits   int       `json:"correctHits"`
	IncorrectHits int       `json:"incorrectHits"`
	MissedHits    int       `json:"missedHits"`
	TimePlayed    int       `json:"timePlayed"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DailyStats is a derived per-calendar-day summary of a user's games. It is
// recomputed on every query and never stored. Hit counts are means over the
// day's games, TimePlayed is a sum, Date is a YYYY-MM-DD calendar date.
type DailyStats struct {
	UserID        int64   `json:"userId,omitempty"`
	GamesPlayed   int     `json:"gamesPlayed"`
	Level         float64 `json:"level"`
	CorrectHits   float64 `json:"correctHits"`
	IncorrectHits float64 `json:"incorrectHits"`
	MissedHits    float64 `json:"missedHits"`
	TimePlayed    int     `json:"timePlayed"`
	Date          string  `json:"date"`
	Accuracy      float64 `json:"accuracy"`
}
