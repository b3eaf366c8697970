package service

import (
	"context"
	"log/slog"
	"time"

	"digimun_backend/internal/models"
	"digimun_backend/internal/repository"
)

// SpeechAction 是更新發言名單時附帶的計時動作
type SpeechAction string

const (
	SpeechStart SpeechAction = "start"
	SpeechEnd   SpeechAction = "end"
	SpeechPause SpeechAction = "pause"
)

// SessionPatch 中為 nil 的欄位不會被修改。
// 主席例外：SetChair 為 true 時以 ChairUserID 覆寫，ChairUserID 為 nil 代表清除主席。
type SessionPatch struct {
	State       *models.SessionState
	SetChair    bool
	ChairUserID *string
	Config      models.SessionConfig
}

// Snapshot 是前端輪詢取得的完整狀態
type Snapshot struct {
	State              models.SessionState        `json:"state"`
	ChairUserID        *string                    `json:"chairUserId"`
	CurrentSpeechStart *time.Time                 `json:"currentSpeechStart"`
	Config             models.SessionConfig       `json:"sessionConfig"`
	SpeakerQueue       models.SpeakerQueue        `json:"speakersList"`
	Vote               models.Vote                `json:"voteData"`
	Delegates          map[string]models.Delegate `json:"delegates"`
	ChatLog            []models.ChatEntry         `json:"chatLog"`
	Chits              []models.Chit              `json:"chits"`
}

type SessionService struct {
	repos         *repository.Repositories
	defaultConfig models.SessionConfig
	logger        *slog.Logger
	now           func() time.Time
}

func NewSessionService(repos *repository.Repositories, opts Options) *SessionService {
	return &SessionService{
		repos:         repos,
		defaultConfig: opts.DefaultConfig,
		logger:        opts.Logger,
		now:           opts.Now,
	}
}

func (s *SessionService) newSession() *models.Session {
	return models.NewSession(s.defaultConfig)
}

// mutate 鎖住會議列後執行 fn 並寫回，整個過程在同一個交易內。
// fn 回傳錯誤時不會留下任何修改。
func (s *SessionService) mutate(ctx context.Context, fn func(tx *repository.Repositories, session *models.Session) error) error {
	return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		session, err := tx.Session.LockForUpdate(ctx, s.newSession())
		if err != nil {
			return err
		}
		if err := fn(tx, session); err != nil {
			return err
		}
		return tx.Session.Save(ctx, session)
	})
}

// GetOrCreate 回傳唯一的會議，第一次存取時建立
func (s *SessionService) GetOrCreate(ctx context.Context) (*models.Session, error) {
	return s.repos.Session.GetOrCreate(ctx, s.newSession())
}

// ApplyPatch 覆寫有提供的欄位，不檢查狀態轉換是否合理
func (s *SessionService) ApplyPatch(ctx context.Context, patch SessionPatch) error {
	return s.mutate(ctx, func(_ *repository.Repositories, session *models.Session) error {
		if patch.State != nil {
			session.State = *patch.State
		}
		if patch.SetChair {
			if patch.ChairUserID == nil {
				session.ChairUserID = nil
			} else {
				chair := *patch.ChairUserID
				session.ChairUserID = &chair
			}
		}
		if patch.Config != nil {
			session.Config = patch.Config
		}
		s.logger.Info("session updated", "state", session.State)
		return nil
	})
}

// ReplaceSpeakerQueue 整份取代發言名單，並依 action 設定或清除發言開始時間
func (s *SessionService) ReplaceSpeakerQueue(ctx context.Context, queue models.SpeakerQueue, action SpeechAction) error {
	if queue == nil {
		queue = models.SpeakerQueue{}
	}
	return s.mutate(ctx, func(_ *repository.Repositories, session *models.Session) error {
		session.SpeakerQueue = queue
		switch action {
		case SpeechStart:
			now := s.now()
			session.CurrentSpeechStart = &now
		case SpeechEnd, SpeechPause:
			session.CurrentSpeechStart = nil
		}
		return nil
	})
}

// PostChat 新增一則聊天訊息，msgType 空白時視為一般聊天
func (s *SessionService) PostChat(ctx context.Context, userID, country, message, msgType string) error {
	session, err := s.GetOrCreate(ctx)
	if err != nil {
		return err
	}
	if msgType == "" {
		msgType = models.ChatTypeChat
	}

	return s.repos.Chat.Create(ctx, &models.ChatEntry{
		SessionID: session.ID,
		UserID:    userID,
		Country:   country,
		Message:   message,
		Type:      msgType,
		Timestamp: s.now(),
	})
}

// PostChit 新增一張紙條，tag 空白時為 General
func (s *SessionService) PostChit(ctx context.Context, chit models.Chit) error {
	session, err := s.GetOrCreate(ctx)
	if err != nil {
		return err
	}
	if chit.Tag == "" {
		chit.Tag = models.ChitTagGeneral
	}
	chit.ID = 0
	chit.SessionID = session.ID
	chit.IsRead = false
	chit.Timestamp = s.now()

	return s.repos.Chit.Create(ctx, &chit)
}

// Snapshot 讀取完整的會議狀態，四個查詢在同一個讀取交易內
func (s *SessionService) Snapshot(ctx context.Context) (*Snapshot, error) {
	// 先在交易外確保會議存在，交易內只做讀取
	if _, err := s.GetOrCreate(ctx); err != nil {
		return nil, err
	}

	var snap *Snapshot
	err := s.repos.ReadTransaction(ctx, func(tx *repository.Repositories) error {
		session, err := tx.Session.GetOrCreate(ctx, s.newSession())
		if err != nil {
			return err
		}
		delegates, err := tx.Delegate.FindBySessionID(ctx, session.ID)
		if err != nil {
			return err
		}
		chats, err := tx.Chat.FindBySessionID(ctx, session.ID)
		if err != nil {
			return err
		}
		chits, err := tx.Chit.FindBySessionID(ctx, session.ID)
		if err != nil {
			return err
		}

		snap = convertModelToSnapshot(session, delegates, chats, chits)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func convertModelToSnapshot(session *models.Session, delegates []models.Delegate, chats []models.ChatEntry, chits []models.Chit) *Snapshot {
	snap := &Snapshot{
		State:              session.State,
		ChairUserID:        session.ChairUserID,
		CurrentSpeechStart: session.CurrentSpeechStart,
		Config:             session.Config,
		SpeakerQueue:       session.SpeakerQueue,
		Vote:               session.Vote,
		Delegates:          make(map[string]models.Delegate, len(delegates)),
		ChatLog:            chats,
		Chits:              chits,
	}
	for _, d := range delegates {
		snap.Delegates[d.UserID] = d
	}

	// 前端預期空集合是 [] / {} 而不是 null
	if snap.Config == nil {
		snap.Config = models.SessionConfig{}
	}
	if snap.SpeakerQueue == nil {
		snap.SpeakerQueue = models.SpeakerQueue{}
	}
	if snap.Vote.Options == nil {
		snap.Vote.Options = []string{}
	}
	if snap.Vote.Results == nil {
		snap.Vote.Results = map[string]int{}
	}
	if snap.Vote.Voters == nil {
		snap.Vote.Voters = []string{}
	}
	if snap.ChatLog == nil {
		snap.ChatLog = []models.ChatEntry{}
	}
	if snap.Chits == nil {
		snap.Chits = []models.Chit{}
	}
	return snap
}
