package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/soundfield/attune-backend/internal/data/repos/testutil"
	types "github.com/soundfield/attune-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{
		ID:        uuid.New(),
		Email:     "userrepo@example.com",
		Password:  "hash",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if _, err := repo.Create(ctx, tx, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByEmails(ctx, tx, []string{u.Email}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}

	if exists, err := repo.EmailExists(ctx, tx, u.Email); err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}
	if exists, err := repo.EmailExists(ctx, tx, "nobody@example.com"); err != nil || exists {
		t.Fatalf("EmailExists for unknown email: err=%v exists=%v", err, exists)
	}

	if err := repo.UpdateName(ctx, tx, u.ID, "Grace", "Hopper"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if err := repo.UpdatePassword(ctx, tx, u.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if err := repo.UpdateAvatarFields(ctx, tx, u.ID, "avatars/x.png", "http://localhost/media/avatars/x.png"); err != nil {
		t.Fatalf("UpdateAvatarFields: %v", err)
	}

	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("reload: err=%v len=%d", err, len(rows))
	}
	got := rows[0]
	if got.FirstName != "Grace" || got.LastName != "Hopper" {
		t.Errorf("name = %s %s, want Grace Hopper", got.FirstName, got.LastName)
	}
	if got.Password != "new-hash" {
		t.Errorf("password = %q, want new-hash", got.Password)
	}
	if got.AvatarMediaKey != "avatars/x.png" {
		t.Errorf("avatar media key = %q", got.AvatarMediaKey)
	}
}
