package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	types "github.com/soundfield/attune-backend/internal/domain"

	"github.com/soundfield/attune-backend/internal/data/repos"
	"github.com/soundfield/attune-backend/internal/data/repos/testutil"
	"github.com/soundfield/attune-backend/internal/platform/apierr"
)

// disabledAvatarService stands in for an avatar service without a font;
// registration tolerates avatar failures.
type disabledAvatarService struct{}

func (disabledAvatarService) CreateUserAvatar(context.Context, *types.User) error {
	return fmt.Errorf("avatar font not configured")
}
func (disabledAvatarService) GenerateUserAvatar(*types.User) (bytes.Buffer, error) {
	return bytes.Buffer{}, fmt.Errorf("avatar font not configured")
}

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)

	return NewAuthService(
		tx, log,
		repos.NewUserRepo(tx, log),
		repos.NewUserTokenRepo(tx, log),
		repos.NewPasswordResetTokenRepo(tx, log),
		disabledAvatarService{},
		"test-secret",
		time.Hour,
		24*time.Hour,
		30*time.Minute,
	)
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want error with code %q, got nil", code)
	}
	var appErr *apierr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("want apierr with code %q, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %q, want %q", appErr.Code, code)
	}
}

func register(t *testing.T, svc AuthService, email, password string) *types.User {
	t.Helper()
	user := &types.User{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Quinn",
		Password:  password,
	}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	register(t, svc, "ada@example.com", "open sesame 123")

	access, refresh, err := svc.LoginUser(ctx, "Ada@Example.COM ", "open sesame 123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("login returned empty tokens")
	}

	_, _, err = svc.LoginUser(ctx, "ada@example.com", "wrong password")
	wantCode(t, err, "invalid_credentials")

	_, _, err = svc.LoginUser(ctx, "nobody@example.com", "open sesame 123")
	wantCode(t, err, "invalid_credentials")
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	err := svc.RegisterUser(ctx, &types.User{Email: "not-an-email", Password: "long enough pw"})
	wantCode(t, err, "invalid_email")

	err = svc.RegisterUser(ctx, &types.User{Email: "ok@example.com", Password: "short"})
	wantCode(t, err, "weak_password")

	register(t, svc, "taken@example.com", "open sesame 123")
	err = svc.RegisterUser(ctx, &types.User{Email: "taken@example.com", Password: "another pass 123"})
	wantCode(t, err, "email_taken")
}

func TestRefreshRotation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	register(t, svc, "rotate@example.com", "open sesame 123")

	access, refresh, err := svc.LoginUser(ctx, "rotate@example.com", "open sesame 123")
	if err != nil {
		t.Fatal(err)
	}

	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}

	newAccess, newRefresh, err := svc.RefreshUser(authed)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newAccess == access || newRefresh == refresh {
		t.Error("refresh did not rotate tokens")
	}

	// The replaced pair is gone.
	if _, err := svc.SetContextFromToken(ctx, access); err == nil {
		t.Error("old access token still accepted after rotation")
	}
	reusedCtx, err := svc.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("verify rotated access token: %v", err)
	}
	if _, _, err := svc.RefreshUser(reusedCtx); err != nil {
		t.Fatalf("refresh with rotated pair: %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	register(t, svc, "logout@example.com", "open sesame 123")

	access, _, err := svc.LoginUser(ctx, "logout@example.com", "open sesame 123")
	if err != nil {
		t.Fatal(err)
	}
	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.LogoutUser(authed); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, access); err == nil {
		t.Error("access token still accepted after logout")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	register(t, svc, "reset@example.com", "old password 123")

	access, _, err := svc.LoginUser(ctx, "reset@example.com", "old password 123")
	if err != nil {
		t.Fatal(err)
	}

	// Unknown emails come back empty with no error.
	token, err := svc.RequestPasswordReset(ctx, "ghost@example.com")
	if err != nil || token != "" {
		t.Fatalf("unknown email reset = %q, %v", token, err)
	}

	token, err = svc.RequestPasswordReset(ctx, "reset@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("no reset token returned")
	}

	if err := svc.UpdatePassword(ctx, token, "new password 456"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	if _, _, err := svc.LoginUser(ctx, "reset@example.com", "old password 123"); err == nil {
		t.Error("old password still accepted")
	}
	if _, _, err := svc.LoginUser(ctx, "reset@example.com", "new password 456"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	// Password change ends live logins and burns the token.
	if _, err := svc.SetContextFromToken(ctx, access); err == nil {
		t.Error("pre-reset access token still accepted")
	}
	err = svc.UpdatePassword(ctx, token, "another pass 789")
	wantCode(t, err, "invalid_reset_token")
}
