package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

func TestUserRepoUpsertOnLogin_RepeatLoginKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, newTestLogger(t))
	ctx := context.Background()

	first := &types.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice",
		Role:         types.RoleAdmin,
		IsPremium:    true,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
		LastLoggedIn: time.Now().UTC().Add(-time.Hour),
	}
	if err := repo.UpsertOnLogin(ctx, nil, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	later := time.Now().UTC()
	second := &types.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice Updated",
		Role:         types.RoleUser,
		IsPremium:    false,
		CreatedAt:    later,
		LastLoggedIn: later,
	}
	if err := repo.UpsertOnLogin(ctx, nil, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}

	stored, err := repo.GetByEmail(ctx, nil, "alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if stored.ID != first.ID {
		t.Fatalf("expected original id %s, got %s", first.ID, stored.ID)
	}
	if stored.Role != types.RoleAdmin {
		t.Fatalf("role must survive repeat login, got %q", stored.Role)
	}
	if !stored.IsPremium {
		t.Fatalf("premium flag must survive repeat login")
	}
	if stored.Name != "Alice Updated" {
		t.Fatalf("name should refresh on login, got %q", stored.Name)
	}
	if !stored.LastLoggedIn.After(stored.CreatedAt) {
		t.Fatalf("last_logged_in should move forward, got %v <= %v", stored.LastLoggedIn, stored.CreatedAt)
	}
}

func TestUserRepoUpdateRoleByID_ReportsZeroRowsForMissingUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, newTestLogger(t))

	rows, err := repo.UpdateRoleByID(context.Background(), nil, uuid.New(), types.RoleAdmin)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows affected, got %d", rows)
	}
}

func TestUserRepoSetPremiumByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, newTestLogger(t))
	ctx := context.Background()

	now := time.Now().UTC()
	user := &types.User{ID: uuid.New(), Email: "bob@example.com", Role: types.RoleUser, CreatedAt: now, LastLoggedIn: now}
	if err := repo.UpsertOnLogin(ctx, nil, user); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rows, err := repo.SetPremiumByEmail(ctx, nil, "bob@example.com", true)
	if err != nil {
		t.Fatalf("set premium: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	stored, err := repo.GetByEmail(ctx, nil, "bob@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if !stored.IsPremium {
		t.Fatalf("expected isPremium=true")
	}
}
