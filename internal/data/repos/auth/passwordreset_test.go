package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/soundfield/attune-backend/internal/data/repos/testutil"
	types "github.com/soundfield/attune-backend/internal/domain"
)

func TestPasswordResetTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewPasswordResetTokenRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "resetrepo@example.com")

	makeToken := func(value string, ttl time.Duration) *types.PasswordResetToken {
		return &types.PasswordResetToken{
			ID:        uuid.New(),
			UserID:    u.ID,
			Token:     value,
			ExpiresAt: time.Now().Add(ttl),
		}
	}

	t1 := makeToken("reset-1", time.Hour)
	if _, err := repo.Create(ctx, tx, []*types.PasswordResetToken{t1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.GetByTokens(ctx, tx, []string{"reset-1"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByTokens: err=%v len=%d", err, len(rows))
	}
	if rows[0].UsedAt != nil {
		t.Fatal("fresh token should be unused")
	}

	if err := repo.MarkUsed(ctx, tx, t1.ID, time.Now()); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	rows, err = repo.GetByTokens(ctx, tx, []string{"reset-1"})
	if err != nil || len(rows) != 1 || rows[0].UsedAt == nil {
		t.Fatalf("token should be marked used: err=%v", err)
	}

	// A new request invalidates every active token for the user.
	t2 := makeToken("reset-2", time.Hour)
	t3 := makeToken("reset-3", time.Hour)
	if _, err := repo.Create(ctx, tx, []*types.PasswordResetToken{t2, t3}); err != nil {
		t.Fatalf("seed tokens: %v", err)
	}
	if err := repo.InvalidateActiveForUser(ctx, tx, u.ID, time.Now()); err != nil {
		t.Fatalf("InvalidateActiveForUser: %v", err)
	}
	rows, err = repo.GetByTokens(ctx, tx, []string{"reset-2", "reset-3"})
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByTokens: err=%v len=%d", err, len(rows))
	}
	for _, r := range rows {
		if r.UsedAt == nil {
			t.Errorf("token %s still active after invalidation", r.Token)
		}
	}

	expired := makeToken("reset-4", -time.Hour)
	if _, err := repo.Create(ctx, tx, []*types.PasswordResetToken{expired}); err != nil {
		t.Fatalf("seed expired token: %v", err)
	}
	n, err := repo.FullDeleteExpired(ctx, tx, time.Now())
	if err != nil || n != 1 {
		t.Fatalf("FullDeleteExpired: err=%v n=%d", err, n)
	}
}
