package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/soundfield/attune-backend/internal/data/repos/testutil"
	types "github.com/soundfield/attune-backend/internal/domain"
)

func TestTuningSessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewTuningSessionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "sessionrepo@example.com")
	base := time.Now().UTC().Truncate(time.Second)

	row := &types.TuningSessionRow{
		ID:              uuid.New(),
		UserID:          testutil.PtrUUID(u.ID),
		SelectedDomains: datatypes.JSON([]byte(`["body"]`)),
		Answers:         datatypes.JSON([]byte(`[]`)),
		CreatedAt:       base,
		UpdatedAt:       base,
	}
	if _, err := repo.Upsert(ctx, tx, []*types.TuningSessionRow{row}); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	// Re-upserting the same id updates in place instead of duplicating.
	row.Answers = datatypes.JSON([]byte(`[{"question_id":"S1","option_id":"S1-a"}]`))
	row.Completed = true
	row.CompletedAt = testutil.PtrTime(base.Add(time.Minute))
	if _, err := repo.Upsert(ctx, tx, []*types.TuningSessionRow{row}); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{row.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	if !got[0].Completed || got[0].CompletedAt == nil {
		t.Fatalf("upserted row not updated: %+v", got[0])
	}

	// Older and newer sessions for ordering.
	older := testutil.SeedSessionRow(t, ctx, tx, testutil.PtrUUID(u.ID), base.Add(-time.Hour))
	newer := testutil.SeedSessionRow(t, ctx, tx, testutil.PtrUUID(u.ID), base.Add(time.Hour))

	listed, err := repo.ListByUserID(ctx, tx, u.ID, 0)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed %d rows, want 3", len(listed))
	}
	if listed[0].ID != newer.ID || listed[2].ID != older.ID {
		t.Error("ListByUserID is not newest-first")
	}

	limited, err := repo.ListByUserID(ctx, tx, u.ID, 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("ListByUserID limit: err=%v len=%d", err, len(limited))
	}

	if n, err := repo.CountByUserID(ctx, tx, u.ID); err != nil || n != 3 {
		t.Fatalf("CountByUserID: err=%v n=%d", err, n)
	}

	// Deleting with the wrong owner touches nothing.
	other := testutil.SeedUser(t, ctx, tx, "sessionrepo-other@example.com")
	if n, err := repo.SoftDeleteByIDForUser(ctx, tx, row.ID, other.ID); err != nil || n != 0 {
		t.Fatalf("SoftDeleteByIDForUser wrong owner: err=%v n=%d", err, n)
	}
	if n, err := repo.SoftDeleteByIDForUser(ctx, tx, row.ID, u.ID); err != nil || n != 1 {
		t.Fatalf("SoftDeleteByIDForUser: err=%v n=%d", err, n)
	}
	if got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{row.ID}); err != nil || len(got) != 0 {
		t.Fatalf("after delete GetByIDs: err=%v len=%d", err, len(got))
	}
}

func TestTuningSessionRepoAnonymous(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewTuningSessionRepo(db, testutil.Logger(t))

	// Sessions without a user persist fine but never show up in any
	// user's listing.
	row := testutil.SeedSessionRow(t, ctx, tx, nil, time.Now().UTC())
	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{row.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	if got[0].UserID != nil {
		t.Errorf("anonymous row has user id %v", got[0].UserID)
	}
}
