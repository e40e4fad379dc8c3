package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

type LessonRepo interface {
  Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error
  GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.Lesson, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
  GetPublic(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
  GetByCreator(ctx context.Context, tx *gorm.DB, email string) ([]*types.Lesson, error)
  GetPublicByCreator(ctx context.Context, tx *gorm.DB, email string) ([]*types.Lesson, error)
  GetRecentByCreator(ctx context.Context, tx *gorm.DB, email string, limit int) ([]*types.Lesson, error)
  CountByCreator(ctx context.Context, tx *gorm.DB, email string) (int64, error)
  GetFeatured(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
  GetRecommended(ctx context.Context, tx *gorm.DB, source *types.Lesson, limit int) ([]*types.Lesson, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, fields map[string]interface{}) (int64, error)
  DeleteByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (int64, error)
  CountCreatedSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error)
  CountByPrivacy(ctx context.Context, tx *gorm.DB, privacy string) (int64, error)
  CountDistinctCreators(ctx context.Context, tx *gorm.DB) (int64, error)
  TopContributors(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ContributorCount, error)
}

type lessonRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
  repoLog := baseLog.With("repo", "LessonRepo")
  return &lessonRepo{db: db, log: repoLog}
}

func (lr *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if lesson == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Create(lesson).Error; err != nil {
    return err
  }
  return nil
}

func (lr *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var result types.Lesson
  if err := transaction.WithContext(ctx).
    Where("id = ?", lessonID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (lr *lessonRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Lesson
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *lessonRepo) GetPublic(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Lesson
  if err := transaction.WithContext(ctx).
    Where("privacy = ?", types.PrivacyPublic).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *lessonRepo) GetByCreator(ctx context.Context, tx *gorm.DB, email string) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Lesson
  if email == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("creator_email = ?", email).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *lessonRepo) GetPublicByCreator(ctx context.Context, tx *gorm.DB, email string) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Lesson
  if email == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("creator_email = ? AND privacy = ?", email, types.PrivacyPublic).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *lessonRepo) GetRecentByCreator(ctx context.Context, tx *gorm.DB, email string, limit int) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Lesson
  if email == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("creator_email = ?", email).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *lessonRepo) CountByCreator(ctx context.Context, tx *gorm.DB, email string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Lesson{}).
    Where("creator_email = ?", email).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (lr *lessonRepo) GetFeatured(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Lesson
  if err := transaction.WithContext(ctx).
    Where("is_featured = ? AND privacy = ?", true, types.PrivacyPublic).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetRecommended returns public lessons sharing the source lesson's
// category or emotional tone, never the source itself.
func (lr *lessonRepo) GetRecommended(ctx context.Context, tx *gorm.DB, source *types.Lesson, limit int) ([]*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Lesson
  if source == nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("privacy = ?", types.PrivacyPublic).
    Where("id <> ?", source.ID).
    Where("category = ? OR emotional_tone = ?", source.Category, source.EmotionalTone).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *lessonRepo) UpdateFields(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, fields map[string]interface{}) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(fields) == 0 {
    return 0, nil
  }

  res := transaction.WithContext(ctx).
    Model(&types.Lesson{}).
    Where("id = ?", lessonID).
    Updates(fields)
  if res.Error != nil {
    return 0, res.Error
  }
  return res.RowsAffected, nil
}

func (lr *lessonRepo) DeleteByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  res := transaction.WithContext(ctx).
    Where("id = ?", lessonID).
    Delete(&types.Lesson{})
  if res.Error != nil {
    return 0, res.Error
  }
  return res.RowsAffected, nil
}

func (lr *lessonRepo) CountCreatedSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Lesson{}).
    Where("created_at >= ?", since).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (lr *lessonRepo) CountByPrivacy(ctx context.Context, tx *gorm.DB, privacy string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Lesson{}).
    Where("privacy = ?", privacy).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (lr *lessonRepo) CountDistinctCreators(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Lesson{}).
    Distinct("creator_email").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (lr *lessonRepo) TopContributors(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ContributorCount, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.ContributorCount
  if err := transaction.WithContext(ctx).
    Model(&types.Lesson{}).
    Select("creator_email, MAX(creator_name) AS creator_name, COUNT(*) AS lesson_count").
    Group("creator_email").
    Order("lesson_count DESC").
    Limit(limit).
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
