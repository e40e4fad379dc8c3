package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

const mostSavedLimit = 6

type AddFavoriteInput struct {
	UserEmail string    `json:"userEmail"`
	LessonID  uuid.UUID `json:"lessonId"`
}

type FavoriteService interface {
	Add(ctx context.Context, in AddFavoriteInput) (*types.Favorite, error)
	ListByUser(ctx context.Context, email string) ([]*types.FavoriteWithLesson, error)
	Remove(ctx context.Context, favoriteID uuid.UUID) error
	MostSaved(ctx context.Context) ([]*types.SavedLessonCount, error)
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
}

func NewFavoriteService(db *gorm.DB, log *logger.Logger, favoriteRepo repos.FavoriteRepo) FavoriteService {
	serviceLog := log.With("service", "FavoriteService")
	return &favoriteService{db: db, log: serviceLog, favoriteRepo: favoriteRepo}
}

func (fs *favoriteService) Add(ctx context.Context, in AddFavoriteInput) (*types.Favorite, error) {
	email := strings.TrimSpace(strings.ToLower(in.UserEmail))
	if email == "" {
		return nil, fmt.Errorf("%w: userEmail is required", ErrInvalidInput)
	}
	if in.LessonID == uuid.Nil {
		return nil, fmt.Errorf("%w: lessonId is required", ErrInvalidInput)
	}

	favorite := &types.Favorite{
		ID:        uuid.New(),
		UserEmail: email,
		LessonID:  in.LessonID,
		SavedAt:   time.Now().UTC(),
	}
	inserted, err := fs.favoriteRepo.Create(ctx, nil, favorite)
	if err != nil {
		fs.log.Error("Add favorite failed", "error", err, "email", email)
		return nil, fmt.Errorf("error saving favorite: %w", err)
	}
	if !inserted {
		return nil, ErrAlreadySaved
	}
	return favorite, nil
}

func (fs *favoriteService) ListByUser(ctx context.Context, email string) ([]*types.FavoriteWithLesson, error) {
	favorites, err := fs.favoriteRepo.GetByUserWithLessons(ctx, nil, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, fmt.Errorf("error fetching favorites: %w", err)
	}
	return favorites, nil
}

func (fs *favoriteService) Remove(ctx context.Context, favoriteID uuid.UUID) error {
	rows, err := fs.favoriteRepo.DeleteByID(ctx, nil, favoriteID)
	if err != nil {
		return fmt.Errorf("error deleting favorite: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: favorite %s", ErrNotFound, favoriteID)
	}
	return nil
}

func (fs *favoriteService) MostSaved(ctx context.Context) ([]*types.SavedLessonCount, error) {
	counts, err := fs.favoriteRepo.MostSaved(ctx, nil, mostSavedLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching most saved lessons: %w", err)
	}
	return counts, nil
}
