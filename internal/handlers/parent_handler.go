package handlers

import (
	"html/template"
	"log"
	"net/http"

	"focustrainer/internal/models"
	"focustrainer/internal/repository"
	"focustrainer/internal/service"
)

// ParentHandler handles the parent dashboard and its chart data
type ParentHandler struct {
	statsService *service.StatsService
	userRepo     *repository.UserRepository
	templates    *template.Template
}

// NewParentHandler creates a new parent handler
func NewParentHandler(statsService *service.StatsService, userRepo *repository.UserRepository, templates *template.Template) *ParentHandler {
	return &ParentHandler{
		statsService: statsService,
		userRepo:     userRepo,
		templates:    templates,
	}
}

// childStatsView pairs a child account with their per-day aggregates
type childStatsView struct {
	ChildID  int64               `json:"childId"`
	Username string              `json:"username"`
	FullName string              `json:"fullName"`
	Days     []models.DailyStats `json:"days"`
}

// resolveParent picks which family to show. Parents always see their own;
// admins may select any parent with the parent query parameter.
func (h *ParentHandler) resolveParent(r *http.Request, user *models.User) string {
	if user.IsAdmin() {
		if parent := r.URL.Query().Get("parent"); parent != "" {
			return parent
		}
	}
	return user.Username
}

// Dashboard renders the parent dashboard page
func (h *ParentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	parentUsername := h.resolveParent(r, user)

	children, err := h.userRepo.GetChildrenOfParent(parentUsername)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading children", err)
		return
	}

	data := map[string]interface{}{
		"Title":    "Dashboard - FocusTrainer",
		"User":     user,
		"Children": children,
	}

	if err := h.templates.ExecuteTemplate(w, "parent_dashboard.tmpl", data); err != nil {
		log.Printf("Error rendering parent dashboard template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ChildrenStats returns per-day aggregates for every child of the family as
// JSON for the dashboard charts. All children are fetched in one query even
// when the family has several.
func (h *ParentHandler) ChildrenStats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	parentUsername := h.resolveParent(r, user)

	children, err := h.userRepo.GetChildrenOfParent(parentUsername)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading children", err)
		return
	}

	perChild, err := h.statsService.ChildrenDailyStats(children)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Error loading children stats", err)
		return
	}

	views := make([]childStatsView, len(children))
	for i, child := range children {
		views[i] = childStatsView{
			ChildID:  child.ID,
			Username: child.Username,
			FullName: child.FullName,
			Days:     perChild[i],
		}
	}

	writeJSON(w, http.StatusOK, views)
}
