package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundfield/attune-backend/internal/data/repos"
	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/normalization"
	"github.com/soundfield/attune-backend/internal/platform/apierr"
	"github.com/soundfield/attune-backend/internal/platform/logger"
	"github.com/soundfield/attune-backend/internal/requestdata"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) currentUserID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no authenticated user in context"))
	}
	return rd.UserID, nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	userID, err := us.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("user not found"))
	}
	return users[0], nil
}

// UpdateName renames the account and regenerates the initials avatar to
// match.
func (us *userService) UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error) {
	userID, err := us.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	firstName = normalization.ParseInputString(firstName)
	lastName = normalization.ParseInputString(lastName)
	if firstName == "" || lastName == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed", fmt.Errorf("first and last name required"))
	}

	var updated *types.User
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if len(users) == 0 {
			return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("user not found"))
		}
		user := users[0]
		user.FirstName = firstName
		user.LastName = lastName

		if err := us.userRepo.UpdateName(ctx, tx, userID, firstName, lastName); err != nil {
			return fmt.Errorf("update name: %w", err)
		}
		if err := us.avatarService.CreateUserAvatar(ctx, user); err != nil {
			us.log.Warn("Failed to refresh avatar after rename", "error", err)
		} else {
			if err := us.userRepo.UpdateAvatarFields(ctx, tx, userID, user.AvatarMediaKey, user.AvatarURL); err != nil {
				return fmt.Errorf("update avatar fields: %w", err)
			}
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
