package handlers

import (
	"html/template"
	"log"
	"net/http"

	"focustrainer/internal/models"
	"focustrainer/internal/security"
	"focustrainer/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	templates            *template.Template
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, templates *template.Template, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		templates:            templates,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

// homeFor maps a user's role to their landing page
func homeFor(user *models.User) string {
	switch user.Role {
	case models.RoleChild:
		return "/child/play"
	case models.RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/parent/dashboard"
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	// Already logged in users go straight to their landing page
	if cookie, err := r.Cookie("session_id"); err == nil {
		if user, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, homeFor(user), http.StatusSeeOther)
			return
		}
	}

	data := map[string]interface{}{
		"Title":          "Login - FocusTrainer",
		"OAuthProviders": h.oauthProviderViews(),
	}

	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		log.Printf("Error rendering login template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	session, user, err := h.authService.Login(username, password)
	if err != nil {
		// Re-render login with error
		data := map[string]interface{}{
			"Title":          "Login - FocusTrainer",
			"Error":          "Invalid username or password",
			"Username":       username,
			"OAuthProviders": h.oauthProviderViews(),
		}
		if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
			log.Printf("Error rendering login template: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	http.Redirect(w, r, homeFor(user), http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Home renders the home page
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if cookie, err := r.Cookie("session_id"); err == nil {
		if user, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, homeFor(user), http.StatusSeeOther)
			return
		}
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
