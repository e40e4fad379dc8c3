package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

type SaveUserInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type UserService interface {
	SaveOnLogin(ctx context.Context, in SaveUserInput) (*types.User, error)
	GetAll(ctx context.Context) ([]*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	GetRole(ctx context.Context, email string) (string, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) error
	Count(ctx context.Context) (int64, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

// SaveOnLogin runs on every login. New emails get a fresh row with the
// default role and premium flag; known emails only get last_loggedIn
// (and name/photo) refreshed. The upsert is a single ON CONFLICT
// statement, so concurrent logins for the same email cannot produce
// duplicate rows.
func (us *userService) SaveOnLogin(ctx context.Context, in SaveUserInput) (*types.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Photo:        strings.TrimSpace(in.Photo),
		Role:         types.RoleUser,
		IsPremium:    false,
		CreatedAt:    now,
		LastLoggedIn: now,
	}
	if err := us.userRepo.UpsertOnLogin(ctx, nil, user); err != nil {
		us.log.Error("SaveOnLogin upsert failed", "error", err, "email", email)
		return nil, fmt.Errorf("error saving user: %w", err)
	}

	// Reload so repeat logins return the original row, not the
	// candidate insert.
	stored, err := us.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("error reloading user: %w", err)
	}
	return stored, nil
}

func (us *userService) GetAll(ctx context.Context) ([]*types.User, error) {
	users, err := us.userRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	return users, nil
}

func (us *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	user, err := us.userRepo.GetByEmail(ctx, nil, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

func (us *userService) GetRole(ctx context.Context, email string) (string, error) {
	user, err := us.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (us *userService) UpdateRole(ctx context.Context, userID uuid.UUID, role string) error {
	role = strings.TrimSpace(strings.ToLower(role))
	if role != types.RoleUser && role != types.RoleAdmin {
		return fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, types.RoleUser, types.RoleAdmin)
	}

	rows, err := us.userRepo.UpdateRoleByID(ctx, nil, userID, role)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return nil
}

func (us *userService) Count(ctx context.Context) (int64, error) {
	count, err := us.userRepo.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
