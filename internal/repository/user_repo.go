package repository

import (
	"database/sql"
	"fmt"
	"time"

	"focustrainer/internal/database"
	"focustrainer/internal/models"
)

// userColumns is the column list every user query selects, in scanUser order
const userColumns = `id, role, username, full_name, email, parent_username, password_hash,
       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), has_finished_tutorial,
       created_at, updated_at`

// UserRepository handles database operations for users and sessions
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUserParams carries the normalized fields for a new account. Email and
// ParentUsername are nil unless the role makes them meaningful.
type CreateUserParams struct {
	Role           models.Role
	Username       string
	FullName       string
	Email          *string
	ParentUsername *string
	PasswordHash   string
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(params CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (role, username, full_name, email, parent_username, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		string(params.Role),
		params.Username,
		params.FullName,
		params.Email,
		params.ParentUsername,
		params.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return r.GetUserByID(id)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.getUser(query, id)
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	return r.getUser(query, username)
}

// GetUserByOAuth retrieves a user by linked OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return r.getUser(query, provider, subject)
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return r.getUser(query, email)
}

func (r *UserRepository) getUser(query string, args ...interface{}) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetChildrenOfParent retrieves all child accounts linked to a parent's
// username, ordered by display name
func (r *UserRepository) GetChildrenOfParent(parentUsername string) ([]models.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		WHERE role = 'child' AND parent_username = ?
		ORDER BY full_name ASC`

	rows, err := r.db.Query(query, parentUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}
	defer rows.Close()

	var children []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, *user)
	}

	return children, rows.Err()
}

// GetUsersByRole retrieves all accounts with the given role, ordered by
// username
func (r *UserRepository) GetUsersByRole(role models.Role) ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE role = ? ORDER BY username ASC"

	rows, err := r.db.Query(query, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to get users by role: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

// LinkOAuthProvider associates an OAuth identity with an existing user
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := "UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.Exec(query, provider, subject, time.Now(), userID)
	return err
}

// SetTutorialFinished updates the tutorial-completion flag, the only mutable
// field on a user after creation
func (r *UserRepository) SetTutorialFinished(userID int64, finished bool) error {
	query := "UPDATE users SET has_finished_tutorial = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.Exec(query, finished, time.Now(), userID)
	return err
}

// scanner abstracts sql.Row and sql.Rows for scanUser
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var role string
	var email, parentUsername sql.NullString

	err := row.Scan(
		&user.ID,
		&role,
		&user.Username,
		&user.FullName,
		&email,
		&parentUsername,
		&user.PasswordHash,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.HasFinishedTutorial,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role)
	if email.Valid {
		user.Email = &email.String
	}
	if parentUsername.Valid {
		user.ParentUsername = &parentUsername.String
	}

	return user, nil
}

// CreateSession creates a new session for a user
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(query, sessionID, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return r.GetSession(sessionID)
}

// GetSession retrieves a session by ID
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(sessionID string) error {
	query := "DELETE FROM sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry
func (r *UserRepository) DeleteExpiredSessions() error {
	query := "DELETE FROM sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	return err
}
