package repository

import (
	"testing"
	"time"

	"focustrainer/internal/models"
)

func TestCreateUserRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	email := "jane@example.com"
	parent, err := repo.CreateUser(CreateUserParams{
		Role:         models.RoleParent,
		Username:     "jane",
		FullName:     "Jane Doe",
		Email:        &email,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if parent.ID == 0 {
		t.Error("expected assigned user ID")
	}
	if parent.Role != models.RoleParent {
		t.Errorf("expected parent role, got %s", parent.Role)
	}
	if parent.Email == nil || *parent.Email != email {
		t.Errorf("expected email %q, got %v", email, parent.Email)
	}
	if parent.ParentUsername != nil {
		t.Errorf("expected nil parent username for parent, got %v", *parent.ParentUsername)
	}
	if parent.HasFinishedTutorial {
		t.Error("expected tutorial unfinished on creation")
	}

	fetched, err := repo.GetUserByUsername("jane")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if fetched == nil || fetched.ID != parent.ID {
		t.Fatalf("expected to fetch created user, got %+v", fetched)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createTestChild(t, db, "dup")
	_, err := repo.CreateUser(CreateUserParams{
		Role:         models.RoleChild,
		Username:     "dup",
		FullName:     "Other Child",
		PasswordHash: "hash",
	})
	if err == nil {
		t.Fatal("expected error for duplicate username")
	}
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetUserByUsername("nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing user, got %+v", user)
	}
}

func TestGetChildrenOfParentOrdersByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	parentName := "family_parent"
	for _, child := range []struct{ username, fullName string }{
		{"kid_z", "Zoe"},
		{"kid_a", "Adam"},
		{"kid_m", "Mia"},
	} {
		if _, err := repo.CreateUser(CreateUserParams{
			Role:           models.RoleChild,
			Username:       child.username,
			FullName:       child.fullName,
			ParentUsername: &parentName,
			PasswordHash:   "hash",
		}); err != nil {
			t.Fatalf("failed to create child: %v", err)
		}
	}
	// A child of a different family must not appear.
	createTestChild(t, db, "other_kid")

	children, err := repo.GetChildrenOfParent(parentName)
	if err != nil {
		t.Fatalf("GetChildrenOfParent failed: %v", err)
	}

	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	wantOrder := []string{"Adam", "Mia", "Zoe"}
	for i, child := range children {
		if child.FullName != wantOrder[i] {
			t.Errorf("child %d: expected %s, got %s", i, wantOrder[i], child.FullName)
		}
	}
}

func TestSetTutorialFinished(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	child := createTestChild(t, db, "tutorial_kid")

	if err := repo.SetTutorialFinished(child.ID, true); err != nil {
		t.Fatalf("SetTutorialFinished failed: %v", err)
	}

	updated, err := repo.GetUserByID(child.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if !updated.HasFinishedTutorial {
		t.Error("expected tutorial flag to be set")
	}
}

func TestLinkOAuthProvider(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	email := "oauth@example.com"
	parent, err := repo.CreateUser(CreateUserParams{
		Role:         models.RoleParent,
		Username:     "oauth_parent",
		FullName:     "OAuth Parent",
		Email:        &email,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.LinkOAuthProvider(parent.ID, "google", "subject-123"); err != nil {
		t.Fatalf("LinkOAuthProvider failed: %v", err)
	}

	linked, err := repo.GetUserByOAuth("google", "subject-123")
	if err != nil {
		t.Fatalf("GetUserByOAuth failed: %v", err)
	}
	if linked == nil || linked.ID != parent.ID {
		t.Fatalf("expected linked user, got %+v", linked)
	}

	if other, _ := repo.GetUserByOAuth("apple", "subject-123"); other != nil {
		t.Errorf("expected no match for different provider, got %+v", other)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	child := createTestChild(t, db, "session_kid")

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	session, err := repo.CreateSession("session-abc", child.ID, expires)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.UserID != child.ID {
		t.Errorf("expected session user %d, got %d", child.ID, session.UserID)
	}

	fetched, err := repo.GetSession("session-abc")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if fetched == nil || fetched.ID != "session-abc" {
		t.Fatalf("expected session, got %+v", fetched)
	}

	if err := repo.DeleteSession("session-abc"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if gone, _ := repo.GetSession("session-abc"); gone != nil {
		t.Errorf("expected session deleted, got %+v", gone)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	child := createTestChild(t, db, "expiry_kid")

	if _, err := repo.CreateSession("live", child.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := repo.CreateSession("dead", child.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := repo.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}

	if live, _ := repo.GetSession("live"); live == nil {
		t.Error("expected unexpired session to survive")
	}
	if dead, _ := repo.GetSession("dead"); dead != nil {
		t.Error("expected expired session to be removed")
	}
}
