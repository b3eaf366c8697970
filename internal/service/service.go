package service

import (
	"log/slog"
	"time"

	"digimun_backend/internal/models"
	"digimun_backend/internal/repository"
)

type Services struct {
	Session  *SessionService
	Vote     *VoteService
	Delegate *DelegateService
}

// Options 是服務層的可調整項目，零值皆有合理預設
type Options struct {
	DefaultConfig        models.SessionConfig
	AllowUnlistedChoices bool
	Logger               *slog.Logger
	Now                  func() time.Time
}

func NewServices(repos *repository.Repositories, opts Options) *Services {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultConfig == nil {
		opts.DefaultConfig = models.SessionConfig{"gslTime": 90, "modTime": 45}
	}

	sessionService := NewSessionService(repos, opts)
	return &Services{
		Session:  sessionService,
		Vote:     NewVoteService(sessionService, opts),
		Delegate: NewDelegateService(repos, sessionService, opts),
	}
}
