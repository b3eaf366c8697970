package service

import (
	"context"
	"log/slog"

	"digimun_backend/internal/models"
	"digimun_backend/internal/repository"
)

// VoteService 管理內嵌在會議中的投票：開始、投票、結束
type VoteService struct {
	sessions      *SessionService
	allowUnlisted bool
	logger        *slog.Logger
}

func NewVoteService(sessions *SessionService, opts Options) *VoteService {
	return &VoteService{
		sessions:      sessions,
		allowUnlisted: opts.AllowUnlistedChoices,
		logger:        opts.Logger,
	}
}

// StartVote 以新的投票取代目前的投票（即使仍在進行中），並把會議切換到 voting
func (s *VoteService) StartVote(ctx context.Context, topic string, kind models.VoteKind, options []string) error {
	return s.sessions.mutate(ctx, func(_ *repository.Repositories, session *models.Session) error {
		if session.Vote.Active {
			s.logger.Warn("replacing vote in progress",
				"previous_topic", session.Vote.Topic,
				"previous_total", session.Vote.TotalVotes,
			)
		}
		session.Vote = models.NewVote(topic, kind, options)
		session.State = models.SessionStateVoting
		s.logger.Info("vote started", "topic", topic, "type", kind, "options", len(options))
		return nil
	})
}

// CastVote 在鎖住的會議列上記錄一張選票
func (s *VoteService) CastVote(ctx context.Context, userID, choice string) error {
	return s.sessions.mutate(ctx, func(_ *repository.Repositories, session *models.Session) error {
		if err := session.Vote.Cast(userID, choice, s.allowUnlisted); err != nil {
			return err
		}
		s.logger.Debug("ballot recorded", "user_id", userID, "total", session.Vote.TotalVotes)
		return nil
	})
}

// EndVote 關閉投票並回到 idle，計票結果保留；沒有進行中的投票時等同無操作
func (s *VoteService) EndVote(ctx context.Context) error {
	return s.sessions.mutate(ctx, func(_ *repository.Repositories, session *models.Session) error {
		session.Vote.Close()
		session.State = models.SessionStateIdle
		s.logger.Info("vote ended", "topic", session.Vote.Topic, "total", session.Vote.TotalVotes)
		return nil
	})
}
