package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

type ReportRepo interface {
  Create(ctx context.Context, tx *gorm.DB, report *types.Report) error
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Report, error)
  CountsPerLesson(ctx context.Context, tx *gorm.DB) ([]*types.ReportCount, error)
}

type reportRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
  repoLog := baseLog.With("repo", "ReportRepo")
  return &reportRepo{db: db, log: repoLog}
}

func (rr *reportRepo) Create(ctx context.Context, tx *gorm.DB, report *types.Report) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if report == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Create(report).Error; err != nil {
    return err
  }
  return nil
}

func (rr *reportRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Report
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *reportRepo) CountsPerLesson(ctx context.Context, tx *gorm.DB) ([]*types.ReportCount, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.ReportCount
  if err := transaction.WithContext(ctx).
    Model(&types.Report{}).
    Select("lesson_id, COUNT(*) AS report_count").
    Group("lesson_id").
    Order("report_count DESC").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
