package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"digimun_backend/internal/models"
	"digimun_backend/internal/storage"
)

type DelegateRepository interface {
	// Upsert 新增代表；userID 已存在時只更新國家與角色，分數保持不變
	Upsert(ctx context.Context, delegate *models.Delegate) error
	FindByUserID(ctx context.Context, userID string) (*models.Delegate, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]models.Delegate, error)
	AdjustScore(ctx context.Context, userID string, delta int) error
}

type delegateRepository struct {
	db *storage.Database
}

func NewDelegateRepository(db *storage.Database) DelegateRepository {
	return &delegateRepository{db: db}
}

func (r *delegateRepository) Upsert(ctx context.Context, delegate *models.Delegate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"country", "role", "updated_at"}),
	}).Create(delegate).Error
}

func (r *delegateRepository) FindByUserID(ctx context.Context, userID string) (*models.Delegate, error) {
	var delegate models.Delegate
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&delegate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrDelegateNotFound
		}
		return nil, err
	}
	return &delegate, nil
}

func (r *delegateRepository) FindBySessionID(ctx context.Context, sessionID uint) ([]models.Delegate, error) {
	var delegates []models.Delegate
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at asc").Find(&delegates).Error
	return delegates, err
}

// AdjustScore 以單一 UPDATE 累加分數，不需要先讀取
func (r *delegateRepository) AdjustScore(ctx context.Context, userID string, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Delegate{}).
		Where("user_id = ?", userID).
		UpdateColumn("score", gorm.Expr("score + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrDelegateNotFound
	}
	return nil
}
