package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strings"

	"focustrainer/internal/models"
	"focustrainer/internal/repository"
	"focustrainer/internal/service"
)

// AdminHandler handles administrator pages and account provisioning
type AdminHandler struct {
	accountService *service.AccountService
	userRepo       *repository.UserRepository
	templates      *template.Template
	csrfToken      func(sessionID string) (string, error)
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(accountService *service.AccountService, userRepo *repository.UserRepository, templates *template.Template, csrfToken func(sessionID string) (string, error)) *AdminHandler {
	return &AdminHandler{
		accountService: accountService,
		userRepo:       userRepo,
		templates:      templates,
		csrfToken:      csrfToken,
	}
}

// Dashboard renders the admin landing page with the account creation form
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, service.SignUpResult{}, service.SignUpData{})
}

// SignUp handles the account creation form. JSON clients get the result
// object back; browser form posts get the dashboard re-rendered with the
// outcome message.
func (h *AdminHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())

	var data service.SignUpData
	wantsJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	if wantsJSON {
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		data = service.SignUpData{
			Role:           r.FormValue("role"),
			Email:          r.FormValue("email"),
			ParentUsername: r.FormValue("parent_username"),
			FullName:       r.FormValue("full_name"),
			Username:       r.FormValue("username"),
			Password:       r.FormValue("password"),
		}
	}

	result := h.accountService.SignUp(r.Context(), actor, data)

	if wantsJSON {
		status := http.StatusOK
		if result.Error != "" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, result)
		return
	}

	// Clear the form on success so the admin can create the next account
	if result.Success != "" {
		data = service.SignUpData{}
	}
	data.Password = ""
	h.renderDashboard(w, r, result, data)
}

func (h *AdminHandler) renderDashboard(w http.ResponseWriter, r *http.Request, result service.SignUpResult, form service.SignUpData) {
	user := GetUserFromContext(r.Context())

	csrfToken := ""
	if cookie, err := r.Cookie("session_id"); err == nil {
		if token, err := h.csrfToken(cookie.Value); err == nil {
			csrfToken = token
		}
	}

	parents, err := h.userRepo.GetUsersByRole(models.RoleParent)
	if err != nil {
		log.Printf("Error loading parents for admin dashboard: %v", err)
	}

	data := map[string]interface{}{
		"Title":     "Admin - FocusTrainer",
		"User":      user,
		"CSRFToken": csrfToken,
		"Parents":   parents,
		"Form":      form,
		"Success":   result.Success,
		"Error":     result.Error,
	}

	if err := h.templates.ExecuteTemplate(w, "admin_dashboard.tmpl", data); err != nil {
		log.Printf("Error rendering admin dashboard template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
