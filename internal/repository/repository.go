package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"digimun_backend/internal/storage"
)

type Repositories struct {
	db       *storage.Database
	Session  SessionRepository
	Delegate DelegateRepository
	Chat     ChatRepository
	Chit     ChitRepository
}

func NewRepositories(db *storage.Database) *Repositories {
	return &Repositories{
		db:       db,
		Session:  NewSessionRepository(db),
		Delegate: NewDelegateRepository(db),
		Chat:     NewChatRepository(db),
		Chit:     NewChitRepository(db),
	}
}

// Transaction 在同一個資料庫交易中執行 fn。
// fn 收到的 repositories 綁定該交易；fn 回傳錯誤時整個交易回滾。
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(&storage.Database{DB: tx}))
	})
}

// ReadTransaction 在同一個交易中執行多個讀取，讓結果對應同一個時間點。
// PostgreSQL 以 REPEATABLE READ 取得整個交易共用的快照；
// SQLite 只有一條連線，交易期間其他寫入會等待。
func (r *Repositories) ReadTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(&storage.Database{DB: tx}))
	}, readTxOptions(r.db)...)
}

func readTxOptions(db *storage.Database) []*sql.TxOptions {
	if db.SupportsRowLocks() {
		return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead}}
	}
	return nil
}
