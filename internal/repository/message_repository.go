package repository

import (
	"context"

	"digimun_backend/internal/models"
	"digimun_backend/internal/storage"
)

type ChatRepository interface {
	Create(ctx context.Context, entry *models.ChatEntry) error
	FindBySessionID(ctx context.Context, sessionID uint) ([]models.ChatEntry, error)
}

type chatRepository struct {
	db *storage.Database
}

func NewChatRepository(db *storage.Database) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, entry *models.ChatEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *chatRepository) FindBySessionID(ctx context.Context, sessionID uint) ([]models.ChatEntry, error) {
	var entries []models.ChatEntry
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id asc").Find(&entries).Error
	return entries, err
}

type ChitRepository interface {
	Create(ctx context.Context, chit *models.Chit) error
	FindBySessionID(ctx context.Context, sessionID uint) ([]models.Chit, error)
}

type chitRepository struct {
	db *storage.Database
}

func NewChitRepository(db *storage.Database) ChitRepository {
	return &chitRepository{db: db}
}

func (r *chitRepository) Create(ctx context.Context, chit *models.Chit) error {
	return r.db.WithContext(ctx).Create(chit).Error
}

func (r *chitRepository) FindBySessionID(ctx context.Context, sessionID uint) ([]models.Chit, error) {
	var chits []models.Chit
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id asc").Find(&chits).Error
	return chits, err
}
