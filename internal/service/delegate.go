package service

import (
	"context"
	"log/slog"

	"digimun_backend/internal/models"
	"digimun_backend/internal/repository"
)

type DelegateService struct {
	repos    *repository.Repositories
	sessions *SessionService
	logger   *slog.Logger
}

func NewDelegateService(repos *repository.Repositories, sessions *SessionService, opts Options) *DelegateService {
	return &DelegateService{
		repos:    repos,
		sessions: sessions,
		logger:   opts.Logger,
	}
}

// Join 加入或重新加入會議。以主席身分加入時直接成為會議主席，後加入者為準。
func (s *DelegateService) Join(ctx context.Context, userID, country string, role models.DelegateRole) error {
	return s.sessions.mutate(ctx, func(tx *repository.Repositories, session *models.Session) error {
		delegate := &models.Delegate{
			UserID:    userID,
			SessionID: session.ID,
			Country:   country,
			Role:      role,
		}
		if err := tx.Delegate.Upsert(ctx, delegate); err != nil {
			return err
		}
		if role == models.RoleChair {
			chair := userID
			session.ChairUserID = &chair
		}
		s.logger.Info("delegate joined", "user_id", userID, "country", country, "role", role)
		return nil
	})
}

// AdjustScore 以 delta 調整分數，可為負數
func (s *DelegateService) AdjustScore(ctx context.Context, userID string, delta int) error {
	return s.repos.Delegate.AdjustScore(ctx, userID, delta)
}

func (s *DelegateService) GetDelegate(ctx context.Context, userID string) (*models.Delegate, error) {
	return s.repos.Delegate.FindByUserID(ctx, userID)
}
