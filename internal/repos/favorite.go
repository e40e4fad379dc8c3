package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

type FavoriteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, favorite *types.Favorite) (bool, error)
  GetByUserWithLessons(ctx context.Context, tx *gorm.DB, email string) ([]*types.FavoriteWithLesson, error)
  DeleteByID(ctx context.Context, tx *gorm.DB, favoriteID uuid.UUID) (int64, error)
  MostSaved(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SavedLessonCount, error)
}

type favoriteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
  repoLog := baseLog.With("repo", "FavoriteRepo")
  return &favoriteRepo{db: db, log: repoLog}
}

// Create inserts the favorite unless the (user_email, lesson_id) pair
// already exists. Returns false when the insert was a duplicate.
func (fr *favoriteRepo) Create(ctx context.Context, tx *gorm.DB, favorite *types.Favorite) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }

  if favorite == nil {
    return false, nil
  }

  res := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_email"}, {Name: "lesson_id"}},
      DoNothing: true,
    }).
    Create(favorite)
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (fr *favoriteRepo) GetByUserWithLessons(ctx context.Context, tx *gorm.DB, email string) ([]*types.FavoriteWithLesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }

  var favorites []*types.Favorite
  if email == "" {
    return []*types.FavoriteWithLesson{}, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_email = ?", email).
    Order("saved_at DESC").
    Find(&favorites).Error; err != nil {
    return nil, err
  }

  lessonIDs := make([]uuid.UUID, 0, len(favorites))
  for _, f := range favorites {
    lessonIDs = append(lessonIDs, f.LessonID)
  }

  lessonsByID := map[uuid.UUID]*types.Lesson{}
  if len(lessonIDs) > 0 {
    var lessons []*types.Lesson
    if err := transaction.WithContext(ctx).
      Where("id IN ?", lessonIDs).
      Find(&lessons).Error; err != nil {
      return nil, err
    }
    for _, l := range lessons {
      lessonsByID[l.ID] = l
    }
  }

  results := make([]*types.FavoriteWithLesson, 0, len(favorites))
  for _, f := range favorites {
    results = append(results, &types.FavoriteWithLesson{
      Favorite: *f,
      Lesson:   lessonsByID[f.LessonID],
    })
  }
  return results, nil
}

func (fr *favoriteRepo) DeleteByID(ctx context.Context, tx *gorm.DB, favoriteID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }

  res := transaction.WithContext(ctx).
    Where("id = ?", favoriteID).
    Delete(&types.Favorite{})
  if res.Error != nil {
    return 0, res.Error
  }
  return res.RowsAffected, nil
}

// MostSaved groups favorites per lesson and attaches the lesson rows
// to the top counts.
func (fr *favoriteRepo) MostSaved(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SavedLessonCount, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }

  var counts []*types.SavedLessonCount
  if err := transaction.WithContext(ctx).
    Model(&types.Favorite{}).
    Select("lesson_id, COUNT(*) AS save_count").
    Group("lesson_id").
    Order("save_count DESC").
    Limit(limit).
    Scan(&counts).Error; err != nil {
    return nil, err
  }

  if len(counts) == 0 {
    return counts, nil
  }

  lessonIDs := make([]uuid.UUID, 0, len(counts))
  for _, c := range counts {
    lessonIDs = append(lessonIDs, c.LessonID)
  }

  var lessons []*types.Lesson
  if err := transaction.WithContext(ctx).
    Where("id IN ?", lessonIDs).
    Find(&lessons).Error; err != nil {
    return nil, err
  }
  lessonsByID := map[uuid.UUID]*types.Lesson{}
  for _, l := range lessons {
    lessonsByID[l.ID] = l
  }
  for _, c := range counts {
    c.Lesson = lessonsByID[c.LessonID]
  }
  return counts, nil
}
