package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"focustrainer/internal/repository"
	"focustrainer/internal/service"
)

// ChildHandler handles the game page and the child-facing API
type ChildHandler struct {
	statsService *service.StatsService
	userRepo     *repository.UserRepository
	templates    *template.Template
	csrfToken    func(sessionID string) (string, error)
}

// NewChildHandler creates a new child handler
func NewChildHandler(statsService *service.StatsService, userRepo *repository.UserRepository, templates *template.Template, csrfToken func(sessionID string) (string, error)) *ChildHandler {
	return &ChildHandler{
		statsService: statsService,
		userRepo:     userRepo,
		templates:    templates,
		csrfToken:    csrfToken,
	}
}

// Play renders the game page
func (h *ChildHandler) Play(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	csrfToken := ""
	if cookie, err := r.Cookie("session_id"); err == nil {
		if token, err := h.csrfToken(cookie.Value); err == nil {
			csrfToken = token
		}
	}

	data := map[string]interface{}{
		"Title":        "Play - FocusTrainer",
		"User":         user,
		"CSRFToken":    csrfToken,
		"ShowTutorial": !user.HasFinishedTutorial,
	}

	if err := h.templates.ExecuteTemplate(w, "play.tmpl", data); err != nil {
		log.Printf("Error rendering play template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// CreateGame records a finished round for the logged-in child
func (h *ChildHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var payload struct {
		Level         int `json:"level"`
		CorrectHits   int `json:"correctHits"`
		IncorrectHits int `json:"incorrectHits"`
		MissedHits    int `json:"missedHits"`
		TimePlayed    int `json:"timePlayed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	game, err := h.statsService.RecordGame(user, payload.Level, payload.CorrectHits, payload.IncorrectHits, payload.MissedHits, payload.TimePlayed)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to record game", "Error recording game", err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

// Stats returns the logged-in child's per-day aggregates as JSON
func (h *ChildHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	stats, err := h.statsService.UserDailyStats(user)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Games returns the child's raw game records in a date range, newest first.
// Both bounds are inclusive; an end date covers the whole day.
func (h *ChildHandler) Games(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	start, err := parseDateParam(r.URL.Query().Get("start"), false)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid start date", "", err)
		return
	}
	end, err := parseDateParam(r.URL.Query().Get("end"), true)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid end date", "", err)
		return
	}
	if end.Before(start) {
		respondWithError(w, http.StatusBadRequest, "End date before start date", "", nil)
		return
	}

	games, err := h.statsService.GamesBetween(user, start, end)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading games", err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// FinishTutorial marks the tutorial as completed for the logged-in child
func (h *ChildHandler) FinishTutorial(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.userRepo.SetTutorialFinished(user.ID, true); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error updating tutorial flag", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"hasFinishedTutorial": true})
}

// parseDateParam accepts RFC 3339 timestamps or plain dates. A plain end
// date is expanded to the last instant of that day so the bound stays
// inclusive.
func parseDateParam(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing date parameter")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
