package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/soundfield/attune-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSessionRow(tb testing.TB, ctx context.Context, tx *gorm.DB, userID *uuid.UUID, createdAt time.Time) *types.TuningSessionRow {
	tb.Helper()
	domains, _ := json.Marshal([]types.Domain{types.DomainBody})
	row := &types.TuningSessionRow{
		ID:              uuid.New(),
		UserID:          userID,
		SelectedDomains: datatypes.JSON(domains),
		Answers:         datatypes.JSON([]byte("[]")),
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed session row: %v", err)
	}
	return row
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
