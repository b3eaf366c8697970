package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"digimun_backend/internal/models"
	"digimun_backend/internal/storage"
)

type SessionRepository interface {
	// GetOrCreate 取得唯一的會議紀錄，不存在時以 defaults 建立
	GetOrCreate(ctx context.Context, defaults *models.Session) (*models.Session, error)
	// LockForUpdate 與 GetOrCreate 相同，但在交易中鎖住該列直到提交
	LockForUpdate(ctx context.Context, defaults *models.Session) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
}

type sessionRepository struct {
	db *storage.Database
}

func NewSessionRepository(db *storage.Database) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetOrCreate(ctx context.Context, defaults *models.Session) (*models.Session, error) {
	return r.load(ctx, defaults, false)
}

func (r *sessionRepository) LockForUpdate(ctx context.Context, defaults *models.Session) (*models.Session, error) {
	return r.load(ctx, defaults, true)
}

func (r *sessionRepository) load(ctx context.Context, defaults *models.Session, forUpdate bool) (*models.Session, error) {
	session, err := r.find(ctx, forUpdate)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 固定主鍵 + ON CONFLICT DO NOTHING：同時首次存取也只會產生一筆
	defaults.ID = models.SessionID
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(defaults).Error; err != nil {
		return nil, err
	}

	return r.find(ctx, forUpdate)
}

func (r *sessionRepository) find(ctx context.Context, forUpdate bool) (*models.Session, error) {
	tx := r.db.WithContext(ctx)
	if forUpdate && r.db.SupportsRowLocks() {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var session models.Session
	if err := tx.First(&session, models.SessionID).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(session).Error
}
