package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

type UserRepo interface {
  UpsertOnLogin(ctx context.Context, tx *gorm.DB, user *types.User) error
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
  UpdateRoleByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) (int64, error)
  SetPremiumByEmail(ctx context.Context, tx *gorm.DB, email string, premium bool) (int64, error)
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{db: db, log: repoLog}
}

// UpsertOnLogin inserts a new user row or, when the email already
// exists, refreshes only last_logged_in, name and photo. Role and
// premium flags survive repeat logins. The conflict clause keeps
// concurrent logins from racing past each other.
func (ur *userRepo) UpsertOnLogin(ctx context.Context, tx *gorm.DB, user *types.User) error {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  if user == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "email"}},
      DoUpdates: clause.Assignments(map[string]interface{}{
        "last_logged_in": user.LastLoggedIn,
        "name":           user.Name,
        "photo":          user.Photo,
      }),
    }).
    Create(user).Error; err != nil {
    return err
  }
  return nil
}

func (ur *userRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var results []*types.User
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var result types.User
  if err := transaction.WithContext(ctx).
    Where("email = ?", email).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ur *userRepo) UpdateRoleByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("id = ?", userID).
    Update("role", role)
  if res.Error != nil {
    return 0, res.Error
  }
  return res.RowsAffected, nil
}

func (ur *userRepo) SetPremiumByEmail(ctx context.Context, tx *gorm.DB, email string, premium bool) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("email = ?", email).
    Update("is_premium", premium)
  if res.Error != nil {
    return 0, res.Error
  }
  return res.RowsAffected, nil
}

func (ur *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.User{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
