package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/soundfield/attune-backend/internal/data/repos"
	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/normalization"
	"github.com/soundfield/attune-backend/internal/platform/apierr"
	"github.com/soundfield/attune-backend/internal/platform/logger"
	"github.com/soundfield/attune-backend/internal/requestdata"
)

const minPasswordLen = 8

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	UpdatePassword(ctx context.Context, resetToken, newPassword string) error
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	resetRepo     repos.PasswordResetTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	resetRepo repos.PasswordResetTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	resetTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		resetRepo:     resetRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		resetTTL:      resetTTL,
	}
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return apierr.New(http.StatusBadRequest, "invalid_email", fmt.Errorf("invalid email address"))
	}
	if len(password) < minPasswordLen {
		return apierr.New(http.StatusBadRequest, "weak_password",
			fmt.Errorf("password must be at least %d characters", minPasswordLen))
	}
	return nil
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	user.Email = normalization.NormalizeEmail(user.Email)
	user.FirstName = normalization.ParseInputString(user.FirstName)
	user.LastName = normalization.ParseInputString(user.LastName)

	if err := validateCredentials(user.Email, user.Password); err != nil {
		return err
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return apierr.New(http.StatusConflict, "email_taken", fmt.Errorf("email already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if err := as.avatarService.CreateUserAvatar(ctx, user); err != nil {
			// Accounts work without an avatar; log and move on.
			as.log.Warn("Failed to create user avatar", "error", err)
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = normalization.NormalizeEmail(email)
	password = normalization.ParseInputString(password)

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("load user by email: %w", err)
	}
	if len(users) == 0 {
		return "", "", apierr.New(http.StatusUnauthorized, "invalid_credentials", fmt.Errorf("invalid email or password"))
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apierr.New(http.StatusUnauthorized, "invalid_credentials", fmt.Errorf("invalid email or password"))
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clear out expired tokens so logins don't accrete rows.
		if _, err := as.userTokenRepo.FullDeleteExpired(ctx, tx, time.Now()); err != nil {
			return fmt.Errorf("sweep expired tokens: %w", err)
		}

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()

		userToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
			return fmt.Errorf("create user token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no refresh token in request"))
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if err != nil {
			return fmt.Errorf("load refresh token: %w", err)
		}
		if len(found) == 0 {
			return apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("unknown refresh token"))
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
				return fmt.Errorf("delete expired refresh token: %w", err)
			}
			return apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("refresh token expired"))
		}

		users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if err != nil {
			return fmt.Errorf("load user for refresh: %w", err)
		}
		if len(users) == 0 {
			return apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no user for refresh token"))
		}
		user := users[0]

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()

		rotated := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{rotated}); err != nil {
			return fmt.Errorf("create rotated token: %w", err)
		}
		if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("delete replaced token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no access token in request"))
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if err != nil {
			return fmt.Errorf("load access token: %w", err)
		}
		if len(found) == 0 {
			return nil
		}
		if err := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID}); err != nil {
			return fmt.Errorf("delete user token: %w", err)
		}
		return nil
	})
}

// RequestPasswordReset mints a single-use reset token for the account,
// invalidating any earlier outstanding token. The token value is returned
// for delivery; unknown emails return empty without error so the endpoint
// cannot be used to probe for accounts.
func (as *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalization.NormalizeEmail(email)

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", fmt.Errorf("load user by email: %w", err)
	}
	if len(users) == 0 {
		as.log.Info("Password reset requested for unknown email", "email", email)
		return "", nil
	}
	user := users[0]

	tokenValue := uuid.New().String()
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.resetRepo.InvalidateActiveForUser(ctx, tx, user.ID, time.Now()); err != nil {
			return fmt.Errorf("invalidate prior reset tokens: %w", err)
		}
		reset := &types.PasswordResetToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     tokenValue,
			ExpiresAt: time.Now().Add(as.resetTTL),
		}
		if _, err := as.resetRepo.Create(ctx, tx, []*types.PasswordResetToken{reset}); err != nil {
			return fmt.Errorf("create reset token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return tokenValue, nil
}

func (as *authService) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	newPassword = normalization.ParseInputString(newPassword)
	if len(newPassword) < minPasswordLen {
		return apierr.New(http.StatusBadRequest, "weak_password",
			fmt.Errorf("password must be at least %d characters", minPasswordLen))
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.resetRepo.GetByTokens(ctx, tx, []string{resetToken})
		if err != nil {
			return fmt.Errorf("load reset token: %w", err)
		}
		if len(found) == 0 {
			return apierr.New(http.StatusUnauthorized, "invalid_reset_token", fmt.Errorf("unknown reset token"))
		}
		reset := found[0]
		if reset.UsedAt != nil || reset.ExpiresAt.Before(time.Now()) {
			return apierr.New(http.StatusUnauthorized, "invalid_reset_token", fmt.Errorf("reset token expired or used"))
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := as.userRepo.UpdatePassword(ctx, tx, reset.UserID, string(hashed)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if err := as.resetRepo.MarkUsed(ctx, tx, reset.ID, time.Now()); err != nil {
			return fmt.Errorf("mark reset token used: %w", err)
		}
		// Changing the password ends every live login.
		if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{reset.UserID}); err != nil {
			return fmt.Errorf("revoke user tokens: %w", err)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken verifies an access token and attaches the caller's
// identity to the context. An empty token leaves the context untouched.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("invalid token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("invalid subject: %w", err))
	}

	// The stored token row carries the paired refresh token; a revoked
	// access token no longer has one and is rejected even if unexpired.
	found, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if err != nil {
		return ctx, fmt.Errorf("load token row: %w", err)
	}
	if len(found) == 0 {
		return ctx, apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("token revoked"))
	}

	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		rd = &requestdata.RequestData{}
	}
	rd.TokenString = tokenString
	rd.RefreshToken = found[0].RefreshToken
	rd.UserID = userID
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
